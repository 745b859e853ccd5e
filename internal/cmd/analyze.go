package cmd

import (
	"fmt"
	"strings"

	"solosolver-be/internal/dto"

	"github.com/spf13/cobra"
)

var (
	analyzeUser    string
	analyzeSession string
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <complaint text>",
	Short: "Run the full pipeline and record the interaction",
	Long: `Classify, ground, answer and record one complaint, exactly as the
POST /api/complaint/v1/analyze endpoint does.

Examples:
  complaintctl analyze --user u-42 "my headphones stopped working after a week"
  complaintctl analyze --user u-42 --session s-1 --json "still no refund"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "customer user id (required)")
	analyzeCmd.Flags().StringVarP(&analyzeSession, "session", "s", "", "chat session id for the transcript")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the full response as JSON")
	_ = analyzeCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.ConsumerService.Consume(cmd.Context()); err != nil {
		return fmt.Errorf("start interaction consumer: %w", err)
	}

	res, err := container.ComplaintService.Analyze(cmd.Context(), &dto.AnalyzeComplaintRequest{
		UserId:        analyzeUser,
		ComplaintText: strings.Join(args, " "),
		SessionId:     analyzeSession,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		return writeJSON(out, res)
	}

	renderClassification(out, res.Classifications)
	fmt.Fprintln(out)
	field(out, "profile", res.UserProfile.Summary)
	if len(res.SearchResults) > 0 {
		labelColor.Fprintln(out, "matched transactions")
		renderTransactions(out, res.SearchResults)
	}
	fmt.Fprintln(out)
	statusColor(res.Status).Fprintf(out, "[%s] ", res.Status)
	fmt.Fprintln(out, res.Response)
	field(out, "interaction", res.InteractionId)
	return nil
}
