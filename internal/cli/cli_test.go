package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/ledger/ledgertest"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/payload"
)

type env struct {
	srv   *ledgertest.Server
	state string
}

func newEnv(t *testing.T) *env {
	srv := ledgertest.New()
	t.Cleanup(srv.Close)
	return &env{srv: srv, state: filepath.Join(t.TempDir(), "state.db")}
}

func (e *env) run(t *testing.T, viewer string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New(strings.NewReader(""), &out)
	cmd.SetArgs(append([]string{
		"--ledger", e.srv.URL,
		"--state", e.state,
		"--wallet", viewer,
		"--log-level", "error",
	}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_AgainstLedger(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, ledgertest.Creator, "create", "10", ledgertest.Destination)
	require.NoError(t, err)
	assert.Contains(t, out, "Bill bill-1 [ACTIVE]")
	assert.Contains(t, out, "collected 0 of 10 TON")
	assert.Contains(t, out, "Share: https://t.me/CryptoSplitBot?startapp=")

	out, err = e.run(t, ledgertest.Creator, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "bill-1")
	assert.Contains(t, out, "0/10 TON")

	out, err = e.run(t, ledgertest.Contributor, "cancel", "bill-1")
	assert.ErrorIs(t, err, domain.ErrCancelNotAllowed)
	assert.Empty(t, out)

	out, err = e.run(t, ledgertest.Creator, "cancel", "bill-1")
	require.NoError(t, err)
	assert.Contains(t, out, "[CANCELLED]")
	assert.Contains(t, out, "closed")
}

func TestCommands_InvalidInput(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, ledgertest.Creator, "create", "ten", ledgertest.Destination)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = e.run(t, ledgertest.Creator, "create", "1", "nowhere")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = e.run(t, "", "create", "1", ledgertest.Destination)
	assert.ErrorIs(t, err, domain.ErrWalletNotConnected)

	_, err = e.run(t, ledgertest.Creator, "contribute", "bill-1")
	assert.Error(t, err, "amount is required")
	assert.Zero(t, e.srv.CallsTo("POST", "/bills"))
}

func TestContribute_WatchOnlyDryRun(t *testing.T) {
	e := newEnv(t)
	e.srv.Put(ledgertest.ActiveBill("b1", 10*ledgertest.TON, 0, time.Now()))

	_, err := e.run(t, ledgertest.Contributor, "--dry-run", "contribute", "b1", "1")
	assert.ErrorIs(t, err, wallet.ErrWatchOnly)
	assert.Zero(t, e.srv.CallsTo("POST", "/bills/b1/transactions"))
}

func TestShare(t *testing.T) {
	e := newEnv(t)
	qr := filepath.Join(t.TempDir(), "b1.png")

	out, err := e.run(t, "", "share", "b1", "--qr", qr, "--qr-size", "128")
	require.NoError(t, err)
	assert.Contains(t, out, "https://t.me/CryptoSplitBot?startapp=eyJpZCI6ImIxIn0\n")
	assert.Contains(t, out, "QR code written to "+qr)

	png, err := os.ReadFile(qr)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestWatch_NothingToResume(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, ledgertest.Contributor, "watch")
	require.NoError(t, err)
	assert.Equal(t, "No open bill to resume.\n", out)
}

func TestWatch_ExitsWhenClosed(t *testing.T) {
	e := newEnv(t)
	b := ledgertest.ActiveBill("b1", 10*ledgertest.TON, 4*ledgertest.TON, time.Now().Add(-time.Hour))
	b.Status = domain.StatusTimeout
	e.srv.Put(b)

	out, err := e.run(t, ledgertest.Creator, "watch", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bill b1 [TIMEOUT]")
	assert.Contains(t, out, "refund available: billsplit refund b1")
}

func transfer(t *testing.T) wallet.Transfer {
	body, err := payload.New(true).Contribute()
	require.NoError(t, err)
	return wallet.Transfer{
		ValidUntil: time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC),
		Messages: []wallet.Message{{
			Address:   ledgertest.ProxyAddress,
			Amount:    4 * ledgertest.TON,
			Payload:   body,
			StateInit: ledgertest.StateInit,
		}},
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			ok, err := prompt(strings.NewReader(tt.input), &out).Approve(context.Background(), transfer(t))

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "#1 to "+ledgertest.ProxyAddress+" amount 4 TON")
			assert.Contains(t, out.String(), "body: CONTRIBUTE query_id=")
			assert.Contains(t, out.String(), "deploys proxy wallet")
			assert.Contains(t, out.String(), "Sign and send? [y/N]: ")
		})
	}
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	ok, err := dryRun(&out).Approve(context.Background(), transfer(t))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Transfer valid until 2024-05-01T12:05:00Z")
	assert.Contains(t, out.String(), "Dry run, nothing sent.")
}

func TestChanges(t *testing.T) {
	var got []int64
	render := changes(func(v lifecycle.View) { got = append(got, v.SecondsRemaining) })

	bill := &domain.Bill{ID: "b1", Goal: 10, Status: domain.StatusActive}
	for _, left := range []int64{125, 124, 121, 120, 119} {
		render(lifecycle.View{Bill: bill, SecondsRemaining: left})
	}
	funded := &domain.Bill{ID: "b1", Goal: 10, Collected: 4, Status: domain.StatusActive}
	render(lifecycle.View{Bill: funded, SecondsRemaining: 118})

	assert.Equal(t, []int64{125, 120, 118}, got)
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "10:00", countdown(600))
	assert.Equal(t, "01:05", countdown(65))
	assert.Equal(t, "00:00", countdown(-3))
}
