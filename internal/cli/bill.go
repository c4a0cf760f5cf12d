package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/service/billservice"
	"github.com/GlebRadaev/billsplit/internal/watcher"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

func newCreateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "create <goal-ton> <destination>",
		Short: "Create a bill owned by the connected wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := validate.ParseTON(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
			}

			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			snap, err := bills.Create(cmd.Context(), domain.Nano(goal), args[1])
			if err != nil {
				return err
			}
			printView(rt.out, snapshotView(snap, bills.Viewer()))

			link, err := bills.ShareLink(snap.Bill.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Share: %s\n", link)
			return nil
		},
	}
}

func newWatchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [bill-id]",
		Short: "Follow a bill live until it closes. Without an id the last open bill is resumed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			viewer := bills.Viewer()

			var snap *lifecycle.Snapshot
			if len(args) == 1 {
				snap, err = bills.Get(cmd.Context(), args[0], viewer)
			} else {
				var ok bool
				snap, ok, err = bills.Resume(cmd.Context(), viewer)
				if err == nil && !ok {
					fmt.Fprintln(rt.out, "No open bill to resume.")
					return nil
				}
			}
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			session := watcher.NewSession(rt.cfg, parts.Ledger, parts.Services.Store, snap, viewer, changes(func(v lifecycle.View) {
				printView(rt.out, v)
				if v.Closed {
					cancel()
				}
			}))
			return session.Run(ctx)
		},
	}
}

// changes drops views that only differ in the countdown, except for whole minutes.
func changes(render func(lifecycle.View)) func(lifecycle.View) {
	var last *lifecycle.View
	return func(v lifecycle.View) {
		if last != nil && same(*last, v) && v.SecondsRemaining%60 != 0 {
			return
		}
		last = &v
		render(v)
	}
}

func same(a, b lifecycle.View) bool {
	return a.Bill.Status == b.Bill.Status &&
		a.Bill.Collected == b.Bill.Collected &&
		a.Closed == b.Closed &&
		a.Stale == b.Stale
}

func newCancelCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <bill-id>",
		Short: "Cancel an active bill you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			snap, err := bills.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printView(rt.out, snapshotView(snap, bills.Viewer()))
			return nil
		},
	}
}

func newHistoryCmd(rt *runtime) *cobra.Command {
	var page domain.Page
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your bills, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			rows, err := bills.History(cmd.Context(), bills.Viewer(), page)
			if err != nil {
				return err
			}
			printHistory(rt.out, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", billservice.DefaultHistoryLimit, "page size")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "page offset")
	return cmd
}

func newShareCmd(rt *runtime) *cobra.Command {
	var qrPath string
	var size int
	cmd := &cobra.Command{
		Use:   "share <bill-id>",
		Short: "Print the share link of a bill, optionally as a QR code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			bills := parts.Services.BillService
			link, err := bills.ShareLink(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(rt.out, link)

			if qrPath == "" {
				return nil
			}
			png, err := bills.ShareQR(args[0], size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(qrPath, png, 0o644); err != nil {
				return fmt.Errorf("write qr code: %w", err)
			}
			fmt.Fprintf(rt.out, "QR code written to %s\n", qrPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "write a PNG QR code to this file")
	cmd.Flags().IntVar(&size, "qr-size", billservice.DefaultQRSize, "QR code size in pixels")
	return cmd
}

func newBalanceCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of the connected wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := rt.open()
			if err != nil {
				return err
			}
			defer parts.Close()

			balance, err := parts.Services.BillService.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "%s: %s TON\n", parts.Wallet.Address(), balance)
			return nil
		},
	}
}
