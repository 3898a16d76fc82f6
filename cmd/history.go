package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		results, err := e.backend.EventRepo().RecentQuizResults(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-20s  %-20s  %7s  %5s  %s\n",
			"ID", "Timestamp", "Course", "Lesson", "Score", "Rate", "Saved")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, r := range results {
			saved := "✓"
			if !r.Committed {
				saved = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-20s  %-20s  %3d/%-3d  %4d%%  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Course, 20),
				truncate(r.Lesson, 20),
				r.Correct, r.Correct+r.Wrong,
				r.SuccessRate,
				saved,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
}
