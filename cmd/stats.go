package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		user, signedIn, err := e.auth.Current(ctx)
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		sum, err := e.profile.Summary(ctx, user, signedIn)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if sum.SignedIn {
			fmt.Fprintf(out, "%s <%s>\n", sum.Profile.Name, sum.Profile.Email)
		} else {
			fmt.Fprintln(out, "Not signed in")
		}
		fmt.Fprintln(out, strings.Repeat("─", 40))

		st := sum.Stats
		fmt.Fprintf(out, "%-18s %d\n", "Total words", st.TotalWords)
		fmt.Fprintf(out, "%-18s %d\n", "Learned words", st.LearnedWords)
		fmt.Fprintf(out, "%-18s %d\n", "Correct answers", st.CorrectAnswers)
		fmt.Fprintf(out, "%-18s %d\n", "Day streak", sum.CurrentStreak)
		last := st.LastStudyDate
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(out, "%-18s %s\n", "Last study day", last)
		if len(sum.Recent) > 0 {
			fmt.Fprintf(out, "%-18s %d%% over %d quizzes\n", "Recent average", sum.AverageSuccessRate, len(sum.Recent))
		}
		return nil
	},
}
