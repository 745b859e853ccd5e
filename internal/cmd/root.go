package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "complaintctl",
	Short: "Operate the complaint analysis pipeline from a terminal",
	Long: `complaintctl - complaint analysis from the command line
  - classify text offline with the keyword heuristic
  - search a customer's transaction history
  - run the full pipeline against the configured database
  - watch COMPLAINT_ANALYZED events on NATS`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline internals to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
