package cmd

import (
	"fmt"

	"solosolver-be/internal/dto"
	"solosolver-be/internal/service"

	"github.com/spf13/cobra"
)

var (
	searchUser     string
	searchCategory string
	searchDays     int
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search transaction history",
	Long: `Search transaction history with the same filters as the REST endpoint.

Examples:
  complaintctl search --user u-42 "broken"
  complaintctl search --user u-42 --category Sizing --days 90
  complaintctl search --json --limit 5 "late"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchUser, "user", "u", "", "restrict to one user id")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "complaint driver, or \"all\"")
	searchCmd.Flags().IntVarP(&searchDays, "days", "d", 0, "only reviews from the last N days")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func buildSearchRequest(args []string) *dto.SearchTransactionsRequest {
	req := &dto.SearchTransactionsRequest{
		UserId:   searchUser,
		Category: searchCategory,
	}
	if len(args) == 1 {
		req.SearchQuery = args[0]
	}
	if searchDays > 0 {
		days := dto.FlexInt(searchDays)
		req.TimeRange = &days
	}
	limit := dto.FlexInt(searchLimit)
	req.Limit = &limit
	return req
}

func runSearch(cmd *cobra.Command, args []string) error {
	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	res, err := container.SearchService.Search(cmd.Context(), buildSearchRequest(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		return writeJSON(out, res)
	}
	if len(res.Transactions) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	renderTransactions(out, res.Transactions)
	fmt.Fprintln(out)
	okColor.Fprintln(out, service.FormatInsights(res.Insights))
	return nil
}
