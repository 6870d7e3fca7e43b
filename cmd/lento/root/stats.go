package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show XP totals and activity summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			today, err := svc.XPForDay(ctx, snap.DayKey)
			if err != nil {
				return err
			}
			weeklyXP, err := svc.WeeklyXP(ctx)
			if err != nil {
				return err
			}
			achievements, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			unlocked := 0
			for _, a := range achievements {
				if a.Unlocked {
					unlocked++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Lento Stats"))
			fmt.Fprintln(out, ui.LabelValue("All-time XP", snap.AllTimeXP))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d XP from %d quests", today.Earned, today.Quests)))
			fmt.Fprintln(out, ui.LabelValue("Weekly quest XP", weeklyXP))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", unlocked, len(achievements))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Activity"))
			fmt.Fprintf(out, "- %s habits active, %d done today\n", ui.Key.Render(fmt.Sprintf("%d", snap.ActiveHabits)), snap.HabitsDoneToday)
			fmt.Fprintf(out, "- journal entries: %d (%d this week)\n", snap.JournalCount, snap.JournalThisWeek)
			fmt.Fprintf(out, "- focus minutes: %d today, %d this week, %d total\n", snap.FocusMinutesToday, snap.FocusMinutesWeek, snap.FocusMinutesTotal)
			fmt.Fprintf(out, "- books finished: %d\n", snap.BooksFinished)
			fmt.Fprintf(out, "- longest habit streak: %d days\n", snap.LongestHabitStreak)
			return nil
		},
	}

	return cmd
}
