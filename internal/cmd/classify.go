package cmd

import (
	"fmt"
	"strings"

	"solosolver-be/internal/bootstrap"
	"solosolver-be/internal/config"

	"github.com/spf13/cobra"
)

var (
	classifyJSON    bool
	classifyLexicon string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <complaint text>",
	Short: "Classify a complaint with the offline keyword heuristic",
	Long: `Classify a complaint without calling any remote model.

Examples:
  complaintctl classify "my lamp arrived broken"
  complaintctl classify --json "where is my order, it's been two weeks"
  complaintctl classify --lexicon ./classifier.yaml "the shoes are too small"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the classification as JSON")
	classifyCmd.Flags().StringVar(&classifyLexicon, "lexicon", "", "lexicon YAML overriding CLASSIFIER_LEXICON_PATH")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("complaint text is empty")
	}

	cfg := &config.Config{}
	cfg.Classifier.LexiconPath = classifyLexicon
	if classifyLexicon == "" {
		cfg = config.Load()
	}

	heuristic, err := bootstrap.NewHeuristic(cfg)
	if err != nil {
		return err
	}

	c := heuristic.Classify(text)
	if classifyJSON {
		return writeJSON(cmd.OutOrStdout(), c)
	}
	renderClassification(cmd.OutOrStdout(), c)
	return nil
}
