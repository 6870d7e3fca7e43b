package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Check for and list achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			newly, err := svc.CheckAchievements(ctx)
			if err != nil {
				return err
			}
			for _, a := range newly {
				fmt.Fprintf(out, "%s %s %s — %s\n", a.Icon, ui.BadgeUnlocked, ui.Gold.Render(a.Name), a.Description)
			}
			if len(newly) > 0 {
				fmt.Fprintln(out, "")
			}

			all, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, a := range all {
				if a.Unlocked {
					fmt.Fprintf(out, "%s %s — %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "%s %s — %s\n", ui.IconLock, ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
