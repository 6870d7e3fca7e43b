package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

func newWeeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show this week's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.WeeklyQuests(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconWeek, "Week of "+res.WeekKey))
			printQuests(out, res.Quests)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Weekly XP", res.XP))
			return nil
		},
	}

	return cmd
}
