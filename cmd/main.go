// Package main is the emolit backend binary: the HTTP API plus a few operator commands.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "emolit",
	Short: "Emotion journaling and progression backend",
	Long: `emolit serves the journaling API and carries operator commands for
loading the vocabulary corpus, trying the emotion classifier and minting
local tokens.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tokenCmd)
}
