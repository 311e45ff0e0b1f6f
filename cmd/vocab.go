package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/emolit-backend/internal/app"
	"github.com/yungbote/emolit-backend/internal/data/repos"
	"github.com/yungbote/emolit-backend/internal/modules/quiz"
	"github.com/yungbote/emolit-backend/internal/services"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the quiz vocabulary corpus",
}

var vocabImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Load vocabulary words from a YAML file into the database",
	Long: `Reads a YAML list of words and upserts them into the vocabulary table.
Pass "-" to read from stdin. Running servers pick up the new corpus on restart.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		in := os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open vocabulary: %w", err)
			}
			defer f.Close()
			in = f
		}
		words, err := quiz.LoadWords(in)
		if err != nil {
			return err
		}

		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(log)
		dbService, err := app.Open(log, cfg)
		if err != nil {
			return err
		}
		defer dbService.Close()

		n, err := services.ImportWords(ctx, repos.NewVocabularyRepo(dbService.DB(), log), words)
		if err != nil {
			return fmt.Errorf("import vocabulary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d words\n", n)
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabImportCmd)
}
