package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/ledger/ledgertest"
)

type recordingBroadcaster struct {
	messages []*wallet.Message
	wait     []bool
	err      error
}

func (b *recordingBroadcaster) SendMany(_ context.Context, messages []*wallet.Message, waitConfirmation ...bool) error {
	b.messages = messages
	b.wait = waitConfirmation
	return b.err
}

func TestTonSigner_SendDoesNotWaitForConfirmation(t *testing.T) {
	b := &recordingBroadcaster{}
	s := &TonSigner{address: ledgertest.Contributor, w: b, connected: true}

	err := s.Send(context.Background(), []Message{{Address: ledgertest.ProxyAddress, Amount: 4 * ledgertest.TON, StateInit: ledgertest.StateInit}})
	require.NoError(t, err)
	require.Len(t, b.messages, 1)
	assert.Equal(t, ledgertest.ProxyAddress, b.messages[0].InternalMessage.DstAddr.String())
	assert.NotContains(t, b.wait, true)
}

func TestTonSigner_SendErrors(t *testing.T) {
	b := &recordingBroadcaster{err: errors.New("failed to send message: lite server timeout")}
	s := &TonSigner{address: ledgertest.Contributor, w: b, connected: true}

	err := s.Send(context.Background(), []Message{{Address: ledgertest.ProxyAddress, Amount: 1}})
	assert.EqualError(t, err, "failed to send message: lite server timeout")

	b.err = nil
	err = s.Send(context.Background(), []Message{{Address: "nope", Amount: 1}})
	assert.Error(t, err)
	assert.Nil(t, b.messages, "nothing is broadcast when a message does not build")
}

// A broadcast transfer is reported as sent even when its deadline is close, so it gets recorded.
func TestWallet_SendTransactionWithTonSigner(t *testing.T) {
	b := &recordingBroadcaster{}
	signer := &TonSigner{address: ledgertest.Contributor, w: b, connected: true}

	w, err := New(signer, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ledgertest.Contributor, w.Address())

	err = w.SendTransaction(context.Background(), transfer(50*time.Millisecond))
	require.NoError(t, err)
	assert.Len(t, b.messages, 1)

	err = w.SendTransaction(context.Background(), transfer(-time.Second))
	assert.ErrorIs(t, err, domain.ErrTransferExpired)
}
