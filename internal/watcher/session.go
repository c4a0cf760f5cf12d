// Package watcher keeps one opened bill live: pushed snapshots, fallback polling and the synced countdown.
package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/billsplit/internal/clock"
	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/ledger"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
)

//go:generate mockgen -source=session.go -destination=mock_session.go -package=watcher

type Ledger interface {
	Subscribe(billID string, delay time.Duration, onBill func(*domain.Bill), onState func(ledger.State)) (*ledger.Subscription, error)
	ServerTime(ctx context.Context) (time.Time, error)
}

type Store interface {
	Get(ctx context.Context, billID, viewer string) (*lifecycle.Snapshot, error)
	Refresh(ctx context.Context, billID, viewer string) (*lifecycle.Snapshot, error)
	Apply(ctx context.Context, bill *domain.Bill)
	Watch(billID string) (<-chan *lifecycle.Snapshot, func())
}

const DefaultPollInterval = 10 * time.Second

type Session struct {
	billID         string
	ledger         Ledger
	store          Store
	viewer         string
	pollInterval   time.Duration
	reconnectDelay time.Duration
	resyncInterval time.Duration
	render         func(lifecycle.View)

	mu    sync.RWMutex
	snap  *lifecycle.Snapshot
	left  int64
	state ledger.State
}

// NewSession scopes the live view of the bill in snap. render is called from a single goroutine.
func NewSession(cfg *config.Config, gateway Ledger, store Store, snap *lifecycle.Snapshot, viewer string, render func(lifecycle.View)) *Session {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if render == nil {
		render = func(lifecycle.View) {}
	}
	return &Session{
		billID:         snap.Bill.ID,
		ledger:         gateway,
		store:          store,
		viewer:         viewer,
		pollInterval:   poll,
		reconnectDelay: cfg.ReconnectDelay,
		resyncInterval: cfg.ResyncInterval,
		render:         render,
		snap:           snap,
		left:           clock.Remaining(snap.Bill.CreatedAt, time.Now()),
		state:          ledger.StateClosed,
	}
}

func (s *Session) BillID() string {
	return s.billID
}

func (s *Session) Viewer() string {
	return s.viewer
}

// View is the latest rendered state.
func (s *Session) View() lifecycle.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lifecycle.NewView(s.snap, s.viewer, s.left)
}

func (s *Session) State() ledger.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Run blocks until ctx is done. Every goroutine, timer and socket it started is gone when it returns.
func (s *Session) Run(ctx context.Context) error {
	updates, stop := s.store.Watch(s.billID)
	defer stop()

	sub, err := s.ledger.Subscribe(s.billID, s.reconnectDelay, func(b *domain.Bill) {
		s.store.Apply(ctx, b)
	}, s.setState)
	if err != nil {
		return err
	}
	countdown := clock.NewCountdown(s.View().Bill.CreatedAt, s.resyncInterval)
	ticks := make(chan int64, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.Run(gctx)
	})
	g.Go(func() error {
		s.poll(gctx)
		return nil
	})
	g.Go(func() error {
		return countdown.Run(gctx, s.ledger.ServerTime, func(left int64) {
			latest(ticks, left)
		})
	})
	g.Go(func() error {
		s.renderLoop(gctx, updates, ticks)
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// renderLoop is the only caller of render.
func (s *Session) renderLoop(ctx context.Context, updates <-chan *lifecycle.Snapshot, ticks <-chan int64) {
	s.emit()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			s.mu.Lock()
			s.snap = snap
			s.mu.Unlock()
		case left := <-ticks:
			s.mu.Lock()
			changed := left != s.left
			s.left = left
			s.mu.Unlock()
			if !changed {
				continue
			}
		}
		s.emit()
	}
}

func (s *Session) emit() {
	s.render(s.View())
}

// poll refetches while the live subscription is down.
func (s *Session) poll(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.State() == ledger.StateOpen {
				continue
			}
			if _, err := s.store.Refresh(ctx, s.billID, s.viewer); err != nil && ctx.Err() == nil {
				zap.L().Debug("Fallback poll failed", zap.String("billID", s.billID), zap.Error(err))
			}
		}
	}
}

func (s *Session) setState(st ledger.State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// latest replaces an undelivered value so the reader always gets the newest one.
func latest(ch chan int64, v int64) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
