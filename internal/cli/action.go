package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GlebRadaev/billsplit/internal/clock"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

func newContributeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <bill-id> <amount-ton>",
		Short: "Send TON to a bill and record it in the ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := validate.ParseTON(args[1])
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
			}

			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			snap, err := bills.Get(cmd.Context(), args[0], bills.Viewer())
			if err != nil {
				return err
			}
			err = parts.Services.ContributeService.Contribute(cmd.Context(), snap.Bill, domain.Nano(amount))
			if err = rt.actionResult(err); err != nil {
				return err
			}
			if !rt.dryRun {
				fmt.Fprintf(rt.out, "Contributed %s TON to %s\n", domain.Nano(amount), args[0])
			}
			return nil
		},
	}
}

func newRefundCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refund <bill-id>",
		Short: "Return the funds of a timed-out bill you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			snap, err := bills.Get(cmd.Context(), args[0], bills.Viewer())
			if err != nil {
				return err
			}
			err = parts.Services.RefundService.Refund(cmd.Context(), snap.Bill)
			if err = rt.actionResult(err); err != nil {
				return err
			}
			if !rt.dryRun {
				fmt.Fprintf(rt.out, "Refund of %s TON requested for %s\n", snap.Bill.Collected, args[0])
			}
			return nil
		},
	}
}

// actionResult turns the declined dry-run transfer into success and explains unrecorded transfers.
func (rt *runtime) actionResult(err error) error {
	if err == nil {
		return nil
	}
	if rt.dryRun && errors.Is(err, domain.ErrWalletRejected) && !errors.Is(err, wallet.ErrWatchOnly) {
		return nil
	}
	var unrecorded *domain.UnrecordedError
	if errors.As(err, &unrecorded) {
		fmt.Fprintf(rt.out, "The transfer of %s TON went out on-chain but the ledger did not record it. Do not resend.\n", unrecorded.Amount)
	}
	return err
}

func snapshotView(snap *lifecycle.Snapshot, viewer string) lifecycle.View {
	return lifecycle.NewView(snap, viewer, clock.Remaining(snap.Bill.CreatedAt, time.Now()))
}
