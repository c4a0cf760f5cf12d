package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/service/billservice"
)

func printView(out io.Writer, v lifecycle.View) {
	b := v.Bill
	fmt.Fprintf(out, "Bill %s [%s]\n", b.ID, b.Status)
	fmt.Fprintf(out, "  collected %s of %s TON (%.1f%%), %s left\n", b.Collected, b.Goal, b.Percent(), b.Left())
	fmt.Fprintf(out, "  destination %s\n", b.DestinationAddress)
	if b.ProxyWalletAddress != "" {
		fmt.Fprintf(out, "  proxy wallet %s\n", b.ProxyWalletAddress)
	}
	switch {
	case v.Closed:
		fmt.Fprintln(out, "  closed")
	default:
		fmt.Fprintf(out, "  %s remaining\n", countdown(v.SecondsRemaining))
	}
	if v.ShowRefundAction {
		fmt.Fprintf(out, "  refund available: billsplit refund %s\n", b.ID)
	}
	if v.Stale {
		fmt.Fprintln(out, "  (cached, ledger unreachable)")
	}
}

func printHistory(out io.Writer, rows []billservice.HistoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No bills yet.")
		return
	}
	for _, row := range rows {
		status, collected := row.Item.Status, "?"
		if row.Bill != nil {
			status, collected = row.Bill.Status, row.Bill.Collected.String()
		}
		fmt.Fprintf(out, "%s  %-9s %s/%s TON  %s\n",
			row.Item.CreatedAt.Local().Format("2006-01-02 15:04"), status, collected, row.Item.Goal, row.Item.ID)
	}
}

// countdown renders whole seconds as mm:ss.
func countdown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
