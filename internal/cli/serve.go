package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/GlebRadaev/billsplit/internal/app"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local view API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a := app.New(rt.cfg, rt.approver())
			if err := a.Start(ctx); err != nil {
				return err
			}
			return a.Wait(ctx, cancel)
		},
	}
}
