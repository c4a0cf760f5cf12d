package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/payload"
)

// prompt asks on out and reads y/yes from in. Anything else declines.
func prompt(in io.Reader, out io.Writer) wallet.Approver {
	reader := bufio.NewReader(in)
	return wallet.ApproverFunc(func(ctx context.Context, t wallet.Transfer) (bool, error) {
		describe(out, t)
		fmt.Fprint(out, "Sign and send? [y/N]: ")

		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

// dryRun prints the transfer with its decoded body and declines it.
func dryRun(out io.Writer) wallet.Approver {
	return wallet.ApproverFunc(func(ctx context.Context, t wallet.Transfer) (bool, error) {
		describe(out, t)
		fmt.Fprintln(out, "Dry run, nothing sent.")
		return false, nil
	})
}

func describe(out io.Writer, t wallet.Transfer) {
	fmt.Fprintf(out, "Transfer valid until %s\n", t.ValidUntil.Format(time.RFC3339))
	for i, m := range t.Messages {
		fmt.Fprintf(out, "  #%d to %s amount %s TON\n", i+1, m.Address, m.Amount)
		if m.Payload != "" {
			op, queryID, hasQueryID, err := payload.Decode(m.Payload)
			switch {
			case err != nil:
				fmt.Fprintf(out, "     body: undecodable (%v)\n", err)
			case hasQueryID:
				fmt.Fprintf(out, "     body: %s query_id=%d\n", op, queryID)
			default:
				fmt.Fprintf(out, "     body: %s\n", op)
			}
		}
		if m.StateInit != "" {
			fmt.Fprintln(out, "     deploys proxy wallet")
		}
	}
}
