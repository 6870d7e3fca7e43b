package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

func newRerollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reroll <quest-id>",
		Short: "Swap one of today's quests (once per day)",
		Long:  "Replaces the named quest with another eligible one. Only works once per day, never on the journal quest, and never on a quest you already made progress on.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Make sure today's assignment exists before targeting it.
			if _, err := svc.DailyQuests(ctx); err != nil {
				return err
			}

			ok, err := svc.Reroll(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, ui.Warn.Render("Reroll not available for "+args[0]+"."))
				return nil
			}

			fmt.Fprintln(out, ui.Good.Render(ui.IconReroll+" Rerolled "+args[0]+"."))
			res, err := svc.DailyQuests(ctx)
			if err != nil {
				return err
			}
			printQuests(out, res.Quests)
			return nil
		},
	}

	return cmd
}
