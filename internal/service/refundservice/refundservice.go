package refundservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/metrics"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

//go:generate mockgen -source=refundservice.go -destination=mock_refundservice.go -package=refundservice

type Wallet interface {
	Address() string
	SendTransaction(ctx context.Context, t wallet.Transfer) error
}

type Ledger interface {
	MarkRefunded(ctx context.Context, billID, sender, idempotencyKey string) error
}

type Store interface {
	Invalidate(billID string)
}

type Encoder interface {
	Refund() (string, error)
}

// DefaultFee pays for the proxy contract's refund processing; the unspent part comes back with the refund.
const DefaultFee domain.Nano = 50_000_000

const (
	action        = "refund"
	recordTimeout = 15 * time.Second
)

type Service struct {
	wallet  Wallet
	ledger  Ledger
	store   Store
	encoder Encoder
	ttl     time.Duration
	fee     domain.Nano

	nowFn    func() time.Time
	newKey   func() string
	inFlight sync.Map
}

func New(cfg *config.Config, wallet Wallet, ledger Ledger, store Store, encoder Encoder) *Service {
	fee := domain.Nano(cfg.RefundFee)
	if fee == 0 {
		fee = DefaultFee
	}
	return &Service{
		wallet:  wallet,
		ledger:  ledger,
		store:   store,
		encoder: encoder,
		ttl:     cfg.TransferTTL,
		fee:     fee,
		nowFn:   time.Now,
		newKey:  uuid.NewString,
	}
}

// Refund asks the proxy wallet to return a timed-out bill's funds to its contributors.
// Only the creator may do this, and only while something was collected.
func (s *Service) Refund(ctx context.Context, bill *domain.Bill) error {
	viewer := s.wallet.Address()
	if err := s.validate(bill, viewer); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeInvalid).Inc()
		return err
	}

	guard := bill.ID + "|" + viewer
	if _, loaded := s.inFlight.LoadOrStore(guard, struct{}{}); loaded {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeInFlight).Inc()
		return domain.ErrActionInFlight
	}
	defer s.inFlight.Delete(guard)

	body, err := s.encoder.Refund()
	if err != nil {
		return fmt.Errorf("encode refund: %w", err)
	}

	transfer := wallet.Transfer{
		ValidUntil: s.nowFn().Add(s.ttl),
		Messages: []wallet.Message{{
			Address:   bill.ProxyWalletAddress,
			Amount:    s.fee,
			Payload:   body,
			StateInit: bill.StateInitHash,
		}},
	}
	if err := s.wallet.SendTransaction(ctx, transfer); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeWallet).Inc()
		zap.L().Info("Refund not sent", zap.String("billID", bill.ID), zap.Error(err))
		return err
	}
	defer s.store.Invalidate(bill.ID)

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	key := s.newKey()
	if err := s.ledger.MarkRefunded(recordCtx, bill.ID, viewer, key); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeUnrecorded).Inc()
		metrics.Unrecorded.WithLabelValues(action).Inc()
		zap.L().Error("Refund sent on-chain but not recorded",
			zap.String("billID", bill.ID),
			zap.String("sender", viewer),
			zap.Uint64("fee", uint64(s.fee)),
			zap.String("idempotencyKey", key),
			zap.Error(err),
		)
		return &domain.UnrecordedError{
			BillID:         bill.ID,
			Op:             domain.OpRefund,
			Amount:         s.fee,
			IdempotencyKey: key,
			Err:            err,
		}
	}

	metrics.Actions.WithLabelValues(action, metrics.OutcomeOK).Inc()
	zap.L().Info("Refund recorded", zap.String("billID", bill.ID))
	return nil
}

func (s *Service) validate(bill *domain.Bill, viewer string) error {
	if viewer == "" {
		return domain.ErrWalletNotConnected
	}
	if bill == nil || bill.ID == "" || bill.ProxyWalletAddress == "" {
		return domain.ErrBillNotReady
	}
	if _, err := validate.ParseAddress(bill.ProxyWalletAddress); err != nil {
		return fmt.Errorf("%w: proxy wallet: %w", domain.ErrInvalidAddress, err)
	}
	if !bill.ShowRefundAction(viewer) {
		return domain.ErrRefundNotAllowed
	}
	return nil
}
