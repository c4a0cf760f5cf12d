// Package wallet is the client's TON wallet: it signs transfers from a seed phrase, or only watches an address.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

//go:generate mockgen -source=wallet.go -destination=mock_wallet.go -package=wallet

// Message is one outgoing internal message, in the shape TON Connect uses.
// Payload and StateInit are base64 BOCs.
type Message struct {
	Address   string
	Amount    domain.Nano
	Payload   string
	StateInit string
}

type Transfer struct {
	ValidUntil time.Time
	Messages   []Message
}

type Signer interface {
	Address() string
	Send(ctx context.Context, msgs []Message) error
}

type BalanceSource interface {
	Balance(ctx context.Context, address string) (domain.Nano, error)
}

// Approver is asked to confirm every transfer before it is signed.
type Approver interface {
	Approve(ctx context.Context, t Transfer) (bool, error)
}

type ApproverFunc func(ctx context.Context, t Transfer) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, t Transfer) (bool, error) {
	return f(ctx, t)
}

var AutoApprove = ApproverFunc(func(context.Context, Transfer) (bool, error) { return true, nil })

var ErrWatchOnly = fmt.Errorf("%w: watch-only wallet cannot sign", domain.ErrWalletRejected)

type Wallet struct {
	address  string
	signer   Signer
	approver Approver
	balance  BalanceSource
	nowFn    func() time.Time
}

// New builds a signing wallet when signer is set, a watch-only one when only address is set,
// and a disconnected one otherwise.
func New(signer Signer, address string, balance BalanceSource, approver Approver) (*Wallet, error) {
	if signer != nil {
		address = signer.Address()
	}
	if address != "" {
		if _, err := validate.ParseAddress(address); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAddress, err)
		}
	}
	if approver == nil {
		approver = AutoApprove
	}
	return &Wallet{
		address:  address,
		signer:   signer,
		approver: approver,
		balance:  balance,
		nowFn:    time.Now,
	}, nil
}

func (w *Wallet) Address() string {
	return w.address
}

func (w *Wallet) Connected() bool {
	return w.address != ""
}

func (w *Wallet) CanSign() bool {
	return w.signer != nil
}

// SendTransaction asks for approval and signs the transfer. Nothing is sent once ValidUntil has passed.
func (w *Wallet) SendTransaction(ctx context.Context, t Transfer) error {
	switch {
	case !w.Connected():
		return domain.ErrWalletNotConnected
	case w.signer == nil:
		return ErrWatchOnly
	case len(t.Messages) == 0:
		return fmt.Errorf("%w: transfer without messages", domain.ErrInvalidInput)
	case !w.nowFn().Before(t.ValidUntil):
		return domain.ErrTransferExpired
	}

	ctx, cancel := context.WithDeadline(ctx, t.ValidUntil)
	defer cancel()

	ok, err := w.approver.Approve(ctx, t)
	if err != nil {
		if expired(ctx, err) {
			return domain.ErrTransferExpired
		}
		return fmt.Errorf("%w: %w", domain.ErrWalletRejected, err)
	}
	if !ok {
		return domain.ErrWalletRejected
	}

	if err := w.signer.Send(ctx, t.Messages); err != nil {
		if expired(ctx, err) {
			return domain.ErrTransferExpired
		}
		return fmt.Errorf("wallet send: %w", err)
	}

	zap.L().Info("Transfer sent",
		zap.String("from", w.address),
		zap.String("to", t.Messages[0].Address),
		zap.Stringer("amount", t.Messages[0].Amount),
	)
	return nil
}

func (w *Wallet) Balance(ctx context.Context) (domain.Nano, error) {
	if !w.Connected() {
		return 0, domain.ErrWalletNotConnected
	}
	if w.balance == nil {
		return 0, errors.New("no balance source configured")
	}
	return w.balance.Balance(ctx, w.address)
}

func expired(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded)
}
