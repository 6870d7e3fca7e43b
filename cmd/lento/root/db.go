package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "db",
		Short:  "Inspect the engine state store",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			installID, err := svc.InstallID(ctx)
			if err != nil {
				return err
			}
			keys, err := svc.StoreKeys(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Install id", installID))
			fmt.Fprintln(out, ui.LabelValue("Stored keys", len(keys)))
			for _, k := range keys {
				fmt.Fprintf(out, "- %s\n", ui.Muted.Render(k))
			}
			return nil
		},
	}

	return cmd
}
