// Package cli is the billsplit command line. Every command wires the client from the same configuration
// the local view API uses.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GlebRadaev/billsplit/internal/app"
	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/logger"
)

type runtime struct {
	cfg *config.Config
	in  io.Reader
	out io.Writer

	yes    bool
	dryRun bool

	wire func(cfg *config.Config, approver wallet.Approver) (*app.Components, error)
}

// New builds the root command. Flags override the environment and .env.
func New(in io.Reader, out io.Writer) *cobra.Command {
	rt := &runtime{
		cfg:  config.New(),
		in:   in,
		out:  out,
		wire: app.Wire,
	}

	root := &cobra.Command{
		Use:           "billsplit",
		Short:         "Split a bill in TON with a shared link",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt.cfg.Normalize()
			if err := logger.InitLogger(rt.cfg); err != nil {
				return fmt.Errorf("can't init logger: %w", err)
			}
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	rt.cfg.BindFlags(flags)
	flags.BoolVarP(&rt.yes, "yes", "y", false, "approve transfers without asking")
	flags.BoolVar(&rt.dryRun, "dry-run", false, "print transfers instead of signing them")

	root.AddCommand(
		newServeCmd(rt),
		newCreateCmd(rt),
		newWatchCmd(rt),
		newContributeCmd(rt),
		newRefundCmd(rt),
		newCancelCmd(rt),
		newHistoryCmd(rt),
		newShareCmd(rt),
		newBalanceCmd(rt),
	)
	return root
}

func (rt *runtime) approver() wallet.Approver {
	switch {
	case rt.dryRun:
		return dryRun(rt.out)
	case rt.yes:
		return wallet.AutoApprove
	}
	return prompt(rt.in, rt.out)
}

// open wires the client for one command. The caller closes it.
func (rt *runtime) open() (*app.Components, error) {
	return rt.wire(rt.cfg, rt.approver())
}
