package watcher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
)

type mounted struct {
	session *Session
	cancel  context.CancelFunc
	done    chan struct{}
}

// Manager holds the one bill that is currently open. Mounting another bill tears the previous one down.
type Manager struct {
	cfg    *config.Config
	ledger Ledger
	store  Store
	render func(lifecycle.View)

	mu      sync.Mutex
	base    context.Context
	current *mounted
}

func NewManager(cfg *config.Config, gateway Ledger, store Store, render func(lifecycle.View)) *Manager {
	return &Manager{
		cfg:    cfg,
		ledger: gateway,
		store:  store,
		render: render,
		base:   context.Background(),
	}
}

// Start binds mounted sessions to ctx and unmounts the current one when ctx is done.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.base = ctx
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.Unmount()
	}()
}

// Mount opens the bill for viewer. The first snapshot is fetched with ctx so a missing bill is reported
// to the caller; the live scope itself outlives ctx.
func (m *Manager) Mount(ctx context.Context, billID, viewer string) (*Session, error) {
	m.mu.Lock()
	if cur := m.current; cur != nil && cur.session.BillID() == billID && cur.session.Viewer() == viewer {
		m.mu.Unlock()
		return cur.session, nil
	}
	m.mu.Unlock()

	snap, err := m.store.Get(ctx, billID, viewer)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	session := NewSession(m.cfg, m.ledger, m.store, snap, viewer, m.render)
	sctx, cancel := context.WithCancel(m.base)
	mt := &mounted{session: session, cancel: cancel, done: make(chan struct{})}
	m.current = mt

	go func() {
		defer close(mt.done)
		if err := session.Run(sctx); err != nil {
			zap.L().Error("Bill session stopped", zap.String("billID", billID), zap.Error(err))
		}
	}()
	zap.L().Info("Bill mounted", zap.String("billID", billID), zap.String("viewer", viewer))
	return session, nil
}

func (m *Manager) Current() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, false
	}
	return m.current.session, true
}

// Unmount stops the current session and waits for it to release its resources.
func (m *Manager) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.current == nil {
		return
	}
	m.current.cancel()
	<-m.current.done
	zap.L().Info("Bill unmounted", zap.String("billID", m.current.session.BillID()))
	m.current = nil
}
