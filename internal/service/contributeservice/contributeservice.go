package contributeservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/clock"
	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/metrics"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

//go:generate mockgen -source=contributeservice.go -destination=mock_contributeservice.go -package=contributeservice

type Wallet interface {
	Address() string
	SendTransaction(ctx context.Context, t wallet.Transfer) error
}

type Ledger interface {
	RecordTransaction(ctx context.Context, billID, sender string, req domain.TransactionRequest) error
}

type Store interface {
	Invalidate(billID string)
}

type Encoder interface {
	Contribute() (string, error)
}

const (
	action        = "contribute"
	recordTimeout = 15 * time.Second
)

type Service struct {
	wallet  Wallet
	ledger  Ledger
	store   Store
	encoder Encoder
	ttl     time.Duration

	nowFn    func() time.Time
	newKey   func() string
	inFlight sync.Map
}

func New(cfg *config.Config, wallet Wallet, ledger Ledger, store Store, encoder Encoder) *Service {
	return &Service{
		wallet:  wallet,
		ledger:  ledger,
		store:   store,
		encoder: encoder,
		ttl:     cfg.TransferTTL,
		nowFn:   time.Now,
		newKey:  uuid.NewString,
	}
}

// Contribute sends amount to the bill's proxy wallet and then records it with the ledger.
// The bill snapshot is never touched here; the next snapshot from the ledger carries the new total.
func (s *Service) Contribute(ctx context.Context, bill *domain.Bill, amount domain.Nano) error {
	sender := s.wallet.Address()
	if err := s.validate(bill, sender, amount); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeInvalid).Inc()
		return err
	}

	guard := bill.ID + "|" + sender
	if _, loaded := s.inFlight.LoadOrStore(guard, struct{}{}); loaded {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeInFlight).Inc()
		return domain.ErrActionInFlight
	}
	defer s.inFlight.Delete(guard)

	body, err := s.encoder.Contribute()
	if err != nil {
		return fmt.Errorf("encode contribution: %w", err)
	}

	transfer := wallet.Transfer{
		ValidUntil: s.nowFn().Add(s.ttl),
		Messages: []wallet.Message{{
			Address:   bill.ProxyWalletAddress,
			Amount:    amount,
			Payload:   body,
			StateInit: bill.StateInitHash,
		}},
	}
	if err := s.wallet.SendTransaction(ctx, transfer); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeWallet).Inc()
		zap.L().Info("Contribution not sent", zap.String("billID", bill.ID), zap.Error(err))
		return err
	}
	defer s.store.Invalidate(bill.ID)

	// the money has moved; recording must not be cut short by the caller going away
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	req := domain.TransactionRequest{Amount: amount, OpType: domain.OpContribute, IdempotencyKey: s.newKey()}
	if err := s.ledger.RecordTransaction(recordCtx, bill.ID, sender, req); err != nil {
		metrics.Actions.WithLabelValues(action, metrics.OutcomeUnrecorded).Inc()
		metrics.Unrecorded.WithLabelValues(action).Inc()
		zap.L().Error("Contribution sent on-chain but not recorded",
			zap.String("billID", bill.ID),
			zap.String("sender", sender),
			zap.Uint64("amount", uint64(amount)),
			zap.String("idempotencyKey", req.IdempotencyKey),
			zap.Error(err),
		)
		return &domain.UnrecordedError{
			BillID:         bill.ID,
			Op:             domain.OpContribute,
			Amount:         amount,
			IdempotencyKey: req.IdempotencyKey,
			Err:            err,
		}
	}

	metrics.Actions.WithLabelValues(action, metrics.OutcomeOK).Inc()
	zap.L().Info("Contribution recorded", zap.String("billID", bill.ID), zap.Stringer("amount", amount))
	return nil
}

func (s *Service) validate(bill *domain.Bill, sender string, amount domain.Nano) error {
	if sender == "" {
		return domain.ErrWalletNotConnected
	}
	if bill == nil || bill.ID == "" || bill.ProxyWalletAddress == "" {
		return domain.ErrBillNotReady
	}
	if _, err := validate.ParseAddress(bill.ProxyWalletAddress); err != nil {
		return fmt.Errorf("%w: proxy wallet: %w", domain.ErrInvalidAddress, err)
	}
	if amount < 1 {
		return domain.ErrInvalidAmount
	}
	if bill.Closed(clock.Remaining(bill.CreatedAt, s.nowFn())) {
		return domain.ErrBillClosed
	}
	return nil
}
