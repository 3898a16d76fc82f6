package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Vocabulary trainer for the terminal",
	Long:  "Wordiz helps you learn words one lesson at a time: flashcards, quizzes, notes and a daily streak.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/wordiz/config.yaml)")
	pf.String(config.KeyDB, "", "Path to SQLite database file (overrides WORDIZ_DB env var)")
	pf.String(config.KeyBackend, "", "Storage backend: sqlite, redis or memory")
	pf.String(config.KeyContent, "", "Path to a YAML course catalog replacing the built-in one")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
