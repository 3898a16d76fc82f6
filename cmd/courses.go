package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/content"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses and lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := content.Load(cfg.Content)
		if err != nil {
			return fmt.Errorf("load courses: %w", err)
		}

		out := cmd.OutOrStdout()
		for i, c := range catalog.Courses {
			if i > 0 {
				fmt.Fprintln(out)
			}
			title := c.Title
			if c.Level != "" {
				title += " (" + c.Level + ")"
			}
			fmt.Fprintf(out, "%s  [%s]\n", title, c.ID)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, l := range c.Lessons {
				quiz := "generated"
				if len(l.Quiz) > 0 {
					quiz = fmt.Sprintf("%d questions", len(l.Quiz))
				}
				fmt.Fprintf(out, "  %-28s %3d words  %s\n", l.Title, len(l.Words), quiz)
			}
		}
		return nil
	},
}
