package clock

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/domain"
)

const (
	TickInterval          = time.Second
	DefaultResyncInterval = 120 * time.Second
)

// ServerTime reports the backend's current time.
type ServerTime func(ctx context.Context) (time.Time, error)

// Remaining returns whole seconds left before createdAt+BillWindow as seen at now,
// clamped to [0, BillWindow]. A zero createdAt yields 0.
func Remaining(createdAt, now time.Time) int64 {
	if createdAt.IsZero() {
		return 0
	}
	window := int64(domain.BillWindow / time.Second)
	left := createdAt.Unix() + window - now.Unix()
	if left < 0 {
		return 0
	}
	if left > window {
		return window
	}
	return left
}

// Countdown corrects the local clock with an offset sampled from the server.
// The offset only changes on Sample, never from ticking.
type Countdown struct {
	createdAt      time.Time
	resyncInterval time.Duration
	nowFn          func() time.Time

	mu     sync.Mutex
	offset time.Duration
	last   int64
}

func NewCountdown(createdAt time.Time, resyncInterval time.Duration) *Countdown {
	if resyncInterval <= 0 {
		resyncInterval = DefaultResyncInterval
	}
	return &Countdown{
		createdAt:      createdAt,
		resyncInterval: resyncInterval,
		nowFn:          time.Now,
		last:           -1,
	}
}

// Sample sets offset = serverNow - localNowAtSample.
func (c *Countdown) Sample(serverNow time.Time) {
	local := c.nowFn()
	c.mu.Lock()
	c.offset = serverNow.Sub(local)
	c.mu.Unlock()
}

func (c *Countdown) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

func (c *Countdown) CorrectedNow() time.Time {
	return c.nowFn().Add(c.Offset())
}

// SecondsRemaining never goes up between calls: if a resample moves the corrected clock
// backwards the previous value is held until real time catches up.
func (c *Countdown) SecondsRemaining() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := Remaining(c.createdAt, c.nowFn().Add(c.offset))
	if c.last >= 0 && left > c.last {
		left = c.last
	}
	c.last = left
	return left
}

// Run samples the server clock once, then ticks every second and resamples every resyncInterval
// until ctx is done. onTick gets the remaining seconds; a failed sample keeps the previous offset.
func (c *Countdown) Run(ctx context.Context, serverTime ServerTime, onTick func(left int64)) error {
	c.resync(ctx, serverTime)
	onTick(c.SecondsRemaining())

	if c.createdAt.IsZero() {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	resync := time.NewTicker(c.resyncInterval)
	defer resync.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			onTick(c.SecondsRemaining())
		case <-resync.C:
			c.resync(ctx, serverTime)
		}
	}
}

func (c *Countdown) resync(ctx context.Context, serverTime ServerTime) {
	if serverTime == nil {
		return
	}
	now, err := serverTime(ctx)
	if err != nil {
		if ctx.Err() == nil {
			zap.L().Debug("clock resync failed, keeping previous offset", zap.Error(err))
		}
		return
	}
	c.Sample(now)
	zap.L().Debug("clock resynced", zap.Duration("offset", c.Offset()))
}
