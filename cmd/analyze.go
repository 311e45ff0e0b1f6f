package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/emolit-backend/internal/app"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
)

var analyzeRulesOnly bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Run the emotion analyzer on a piece of text and print the result",
	Long: `Runs the crisis gate, classifier and risk scoring exactly as the API does.
The classifier backend comes from CLASSIFIER_BACKEND unless --rules is set.

Examples:
  emolit analyze "I feel calm and grateful today"
  emolit analyze --rules "everything is too much"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(log)
		var backend emotion.Classifier
		if !analyzeRulesOnly {
			backend, err = app.NewClassifier(log, cfg)
			if err != nil {
				return err
			}
		}
		analyzer := app.NewAnalyzer(log, cfg, backend, nil)

		out := analyzer.Analyze(cmd.Context(), strings.Join(args, " "), nil)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRulesOnly, "rules", false, "skip the configured backend and use keyword rules")
}
