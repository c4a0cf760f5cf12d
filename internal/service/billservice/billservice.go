package billservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/pkg/deeplink"
	"github.com/GlebRadaev/billsplit/pkg/validate"
	"github.com/GlebRadaev/billsplit/pkg/workerpool"
)

//go:generate mockgen -source=billservice.go -destination=mock_billservice.go -package=billservice

type Wallet interface {
	Address() string
	Balance(ctx context.Context) (domain.Nano, error)
}

type Ledger interface {
	CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error)
	GetBill(ctx context.Context, id, viewer string) (*domain.Bill, error)
	History(ctx context.Context, viewer string, page domain.Page) ([]domain.HistoryItem, error)
	Cancel(ctx context.Context, billID, sender string) error
}

type Store interface {
	Get(ctx context.Context, billID, viewer string) (*lifecycle.Snapshot, error)
	Refresh(ctx context.Context, billID, viewer string) (*lifecycle.Snapshot, error)
	Put(ctx context.Context, bill *domain.Bill, viewer string) *lifecycle.Snapshot
	Invalidate(billID string)
}

type ResumeRepo interface {
	Load(ctx context.Context) (domain.OpenBillRef, bool, error)
	ClearIf(ctx context.Context, id string) error
}

const (
	DefaultHistoryLimit = 20
	DefaultQRSize       = 256
	enrichWorkers       = 4
)

// HistoryRow is one history item plus the full bill when it could be fetched.
type HistoryRow struct {
	Item domain.HistoryItem
	Bill *domain.Bill
}

type Service struct {
	wallet Wallet
	ledger Ledger
	store  Store
	resume ResumeRepo
	pool   workerpool.WorkerPoolI
	bot    string
	app    string
}

func New(cfg *config.Config, wallet Wallet, ledger Ledger, store Store, resume ResumeRepo) *Service {
	return &Service{
		wallet: wallet,
		ledger: ledger,
		store:  store,
		resume: resume,
		pool:   workerpool.NewWorkerPool(enrichWorkers),
		bot:    cfg.BotUsername,
		app:    cfg.BotAppName,
	}
}

func (s *Service) Viewer() string {
	return s.wallet.Address()
}

// Create opens a new bill owned by the connected wallet.
func (s *Service) Create(ctx context.Context, goal domain.Nano, destination string) (*lifecycle.Snapshot, error) {
	sender := s.wallet.Address()
	if sender == "" {
		return nil, domain.ErrWalletNotConnected
	}
	if goal == 0 {
		return nil, fmt.Errorf("%w: goal must be positive", domain.ErrInvalidAmount)
	}
	if _, err := validate.ParseAddress(destination); err != nil {
		return nil, fmt.Errorf("%w: destination: %w", domain.ErrInvalidAddress, err)
	}

	bill, err := s.ledger.CreateBill(ctx, domain.CreateBillRequest{
		Goal:               goal,
		DestinationAddress: destination,
		Sender:             sender,
	})
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	zap.L().Info("Bill created", zap.String("billID", bill.ID), zap.Uint64("goal", uint64(goal)))
	return s.store.Put(ctx, bill, sender), nil
}

func (s *Service) Get(ctx context.Context, id, viewer string) (*lifecycle.Snapshot, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty bill id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id, viewer)
}

// Cancel closes an active bill. Only its creator may do it.
func (s *Service) Cancel(ctx context.Context, id string) (*lifecycle.Snapshot, error) {
	viewer := s.wallet.Address()
	if viewer == "" {
		return nil, domain.ErrWalletNotConnected
	}
	snap, err := s.Get(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if !snap.Bill.IsCreator(viewer) || snap.Bill.Status != domain.StatusActive {
		return nil, domain.ErrCancelNotAllowed
	}

	if err := s.ledger.Cancel(ctx, id, viewer); err != nil {
		return nil, fmt.Errorf("cancel bill: %w", err)
	}
	s.store.Invalidate(id)
	zap.L().Info("Bill cancelled", zap.String("billID", id))
	return s.store.Refresh(ctx, id, viewer)
}

// History lists the viewer's bills, newest first. Each row is completed with the current bill
// through a bounded pool; a row whose bill cannot be fetched keeps the bare item.
func (s *Service) History(ctx context.Context, viewer string, page domain.Page) ([]HistoryRow, error) {
	if viewer == "" {
		return nil, domain.ErrWalletNotConnected
	}
	if page.Limit <= 0 {
		page.Limit = DefaultHistoryLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	items, err := s.ledger.History(ctx, viewer, page)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	rows := make([]HistoryRow, len(items))
	var g errgroup.Group
	var wg sync.WaitGroup
	for i, item := range items {
		rows[i].Item = item

		wg.Add(1)
		g.Go(func() error {
			err := s.pool.AddTask(ctx, func() error {
				defer wg.Done()
				bill, err := s.ledger.GetBill(ctx, item.ID, viewer)
				if err != nil {
					zap.L().Debug("History row left bare", zap.String("billID", item.ID), zap.Error(err))
					return nil
				}
				rows[i].Bill = bill
				return nil
			})
			if err != nil {
				wg.Done()
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Warn("History enrichment incomplete", zap.Error(err))
	}
	wg.Wait()
	return rows, nil
}

// Resume reopens the bill recorded locally, if any. A bill the ledger no longer knows is dropped from the record.
func (s *Service) Resume(ctx context.Context, viewer string) (*lifecycle.Snapshot, bool, error) {
	ref, ok, err := s.resume.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load open bill: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	snap, err := s.store.Get(ctx, ref.ID, viewer)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if err := s.resume.ClearIf(ctx, ref.ID); err != nil {
				zap.L().Error("Failed to clear open bill record", zap.String("billID", ref.ID), zap.Error(err))
			}
			return nil, false, nil
		}
		return nil, false, err
	}
	return snap, true, nil
}

func (s *Service) Balance(ctx context.Context) (domain.Nano, error) {
	return s.wallet.Balance(ctx)
}

func (s *Service) ShareLink(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty bill id", domain.ErrInvalidInput)
	}
	return deeplink.Build(s.bot, s.app, deeplink.StartParams{ID: id})
}

// ShareQR renders the share link as a PNG.
func (s *Service) ShareQR(id string, size int) ([]byte, error) {
	link, err := s.ShareLink(id)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}

// Close waits for running enrichments.
func (s *Service) Close() {
	s.pool.Close()
}
