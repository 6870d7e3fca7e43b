package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lento/internal/engine"
	"lento/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's quest assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.DailyQuests(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests for "+res.DayKey))
			printQuests(out, res.Quests)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Earned today", fmt.Sprintf("%d XP (%d quests done)", res.EarnedXP, res.CompletedCount)))
			if res.RerollAvailable {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconReroll+" reroll available — lento reroll <quest-id>"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconLock+" reroll used for today"))
			}
			return nil
		},
	}

	return cmd
}

func printQuests(out io.Writer, quests []engine.QuestView) {
	for _, q := range quests {
		mark := "  "
		if q.Completed {
			mark = ui.IconDone + " "
		}
		fmt.Fprintf(out, "%s%s %s  %s  %s  %s\n",
			mark,
			ui.CategoryIcon(string(q.Category)),
			q.Title,
			ui.ProgressText(q.Progress.Current, q.Progress.Target, q.Completed),
			ui.Muted.Render(fmt.Sprintf("+%d XP", q.XP)),
			ui.Muted.Render("["+q.ID+"]"),
		)
	}
}
