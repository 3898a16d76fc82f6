package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Clears the learning statistics. With --all the profile and session token are removed as well.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if all {
			if err := e.auth.Logout(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Statistics, profile and session cleared.")
			return nil
		}
		if err := e.stats.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Statistics cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also remove the profile and session token")
}
