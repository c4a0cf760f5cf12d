// Package lifecycle caches bill snapshots per (bill, viewer) and keeps the local resumption record in step with them.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/metrics"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=lifecycle

type Fetcher interface {
	GetBill(ctx context.Context, id, viewer string) (*domain.Bill, error)
}

type ResumeRepo interface {
	Save(ctx context.Context, id string) error
	Load(ctx context.Context) (domain.OpenBillRef, bool, error)
	Clear(ctx context.Context) error
	ClearIf(ctx context.Context, id string) error
}

const (
	DefaultStaleAfter = 5 * time.Second
	fetchTimeout      = 15 * time.Second
)

type Source string

const (
	SourceFetch  Source = "fetch"
	SourceLive   Source = "live"
	SourceCreate Source = "create"
)

// Snapshot is never modified after it is stored; updates swap the pointer.
type Snapshot struct {
	Bill       *domain.Bill
	ReceivedAt time.Time
	Stale      bool
	Source     Source
}

type key struct {
	billID string
	viewer string
}

func (k key) String() string {
	return k.billID + "|" + k.viewer
}

// flight is the context of one shared request. It is cancelled once no caller waits for it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type Store struct {
	fetcher    Fetcher
	resume     ResumeRepo
	owner      func() string
	staleAfter time.Duration
	nowFn      func() time.Time

	group    singleflight.Group
	flightMu sync.Mutex
	flights  map[string]*flight

	mu        sync.RWMutex
	entries   map[key]*Snapshot
	watchers  map[string]map[int]chan *Snapshot
	nextWatch int
}

// New builds a store. owner reports the local wallet address: the resumption record follows only
// what that account sees. A nil owner stands for a disconnected wallet.
func New(fetcher Fetcher, resume ResumeRepo, owner func() string, staleAfter time.Duration) *Store {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if owner == nil {
		owner = func() string { return "" }
	}
	return &Store{
		fetcher:    fetcher,
		resume:     resume,
		owner:      owner,
		staleAfter: staleAfter,
		nowFn:      time.Now,
		flights:    make(map[string]*flight),
		entries:    make(map[key]*Snapshot),
		watchers:   make(map[string]map[int]chan *Snapshot),
	}
}

// Get serves the cached snapshot when it is fresh. A stale one is served as is while a refetch
// runs in the background for as long as ctx lives. Without any snapshot it fetches.
func (s *Store) Get(ctx context.Context, billID, viewer string) (*Snapshot, error) {
	k := key{billID: billID, viewer: viewer}
	snap := s.cached(k)
	if snap == nil {
		return s.Refresh(ctx, billID, viewer)
	}
	if snap.Stale || s.nowFn().Sub(snap.ReceivedAt) >= s.staleAfter {
		go func() {
			if _, err := s.Refresh(ctx, billID, viewer); err != nil && ctx.Err() == nil {
				zap.L().Debug("Background revalidation failed", zap.String("billID", billID), zap.Error(err))
			}
		}()
		if !snap.Stale {
			stale := *snap
			stale.Stale = true
			snap = &stale
		}
	}
	return snap, nil
}

// Refresh always goes to the ledger. Concurrent refreshes of one key share a single request,
// which is cancelled when the last of them gives up.
func (s *Store) Refresh(ctx context.Context, billID, viewer string) (*Snapshot, error) {
	k := key{billID: billID, viewer: viewer}
	name := k.String()
	f := s.join(name)
	defer s.leave(name, f)

	ch := s.group.DoChan(name, func() (any, error) {
		return s.fetch(f.ctx, k)
	})

	select {
	case <-ctx.Done():
		if snap := s.cached(k); snap != nil {
			return snap, nil
		}
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (s *Store) join(name string) *flight {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	f, ok := s.flights[name]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		f = &flight{ctx: ctx, cancel: cancel}
		s.flights[name] = f
	}
	f.waiters++
	return f
}

func (s *Store) leave(name string, f *flight) {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	delete(s.flights, name)
	// a later caller must start over instead of joining the cancelled request
	s.group.Forget(name)
	f.cancel()
}

func (s *Store) fetch(ctx context.Context, k key) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	bill, err := s.fetcher.GetBill(ctx, k.billID, k.viewer)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, err
		}
		if errors.Is(err, domain.ErrNotFound) {
			s.forget(ctx, k.billID)
			return nil, err
		}
		if snap := s.markStale(k); snap != nil {
			zap.L().Warn("Bill fetch failed, serving last snapshot",
				zap.String("billID", k.billID), zap.Error(err))
			return snap, nil
		}
		return nil, err
	}
	return s.accept(ctx, k, bill, SourceFetch), nil
}

// Put stores a snapshot the caller already holds, e.g. the answer to creating a bill.
func (s *Store) Put(ctx context.Context, bill *domain.Bill, viewer string) *Snapshot {
	return s.accept(ctx, key{billID: bill.ID, viewer: viewer}, bill, SourceCreate)
}

// Apply replaces the snapshot of every viewer that has the bill cached. Live pushes go through here.
// Only the owner's snapshot moves the resumption record, whatever order the viewers are visited in.
func (s *Store) Apply(ctx context.Context, bill *domain.Bill) {
	if bill == nil || bill.ID == "" {
		return
	}
	s.mu.RLock()
	var keys []key
	for k := range s.entries {
		if k.billID == bill.ID {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()

	if len(keys) == 0 {
		s.store(key{billID: bill.ID}, &Snapshot{Bill: bill, ReceivedAt: s.nowFn(), Source: SourceLive})
		metrics.Snapshots.WithLabelValues(string(SourceLive)).Inc()
		return
	}
	for _, k := range keys {
		s.accept(ctx, k, bill, SourceLive)
	}
}

// Invalidate marks every cached snapshot of the bill stale so the next Get refetches.
func (s *Store) Invalidate(billID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, snap := range s.entries {
		if k.billID == billID && !snap.Stale {
			stale := *snap
			stale.Stale = true
			s.entries[k] = &stale
		}
	}
}

// Watch delivers every snapshot accepted for the bill. Only the newest undelivered snapshot is kept
// for a slow reader. The returned func stops the watch and closes the channel.
func (s *Store) Watch(billID string) (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	if s.watchers[billID] == nil {
		s.watchers[billID] = make(map[int]chan *Snapshot)
	}
	s.watchers[billID][id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers[billID], id)
			if len(s.watchers[billID]) == 0 {
				delete(s.watchers, billID)
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) accept(ctx context.Context, k key, bill *domain.Bill, source Source) *Snapshot {
	snap := &Snapshot{Bill: bill, ReceivedAt: s.nowFn(), Source: source}
	s.store(k, snap)
	metrics.Snapshots.WithLabelValues(string(source)).Inc()
	if s.owns(k.viewer) {
		s.resumption(ctx, bill, k.viewer)
	}
	return snap
}

func (s *Store) owns(viewer string) bool {
	owner := s.owner()
	if owner == "" || viewer == "" {
		return owner == viewer
	}
	return validate.SameAccount(owner, viewer)
}

func (s *Store) store(k key, snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[k] = snap
	for _, ch := range s.watchers[k.billID] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// resumption keeps the open-bill record pointing at a bill only while the viewer can still act on it.
func (s *Store) resumption(ctx context.Context, bill *domain.Bill, viewer string) {
	if s.resume == nil {
		return
	}
	var err error
	if bill.Resumable(viewer) {
		err = s.resume.Save(ctx, bill.ID)
	} else {
		err = s.resume.ClearIf(ctx, bill.ID)
	}
	if err != nil {
		zap.L().Error("Failed to update open bill record", zap.String("billID", bill.ID), zap.Error(err))
	}
}

func (s *Store) forget(ctx context.Context, billID string) {
	s.mu.Lock()
	for k := range s.entries {
		if k.billID == billID {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
	if s.resume != nil {
		if err := s.resume.ClearIf(ctx, billID); err != nil {
			zap.L().Error("Failed to clear open bill record", zap.String("billID", billID), zap.Error(err))
		}
	}
}

func (s *Store) markStale(k key) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.entries[k]
	if !ok {
		return nil
	}
	if !snap.Stale {
		stale := *snap
		stale.Stale = true
		snap = &stale
		s.entries[k] = snap
	}
	return snap
}

func (s *Store) cached(k key) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[k]
}
