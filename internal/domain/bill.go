package domain

import (
	"time"

	"github.com/GlebRadaev/billsplit/pkg/validate"
)

// Normalize maps legacy status names onto the current vocabulary.
func (s Status) Normalize() Status {
	if s == statusCompletedLegacy {
		return StatusDone
	}
	return s
}

// Terminal reports statuses after which nothing can happen to the bill for any role.
// TIMEOUT is not terminal: the creator may still refund.
func (s Status) Terminal() bool {
	switch s.Normalize() {
	case StatusDone, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

func (b *Bill) Deadline() time.Time {
	if b.CreatedAt.IsZero() {
		return time.Time{}
	}
	return b.CreatedAt.Add(BillWindow)
}

func (b *Bill) Left() Nano {
	if b.Collected >= b.Goal {
		return 0
	}
	return b.Goal - b.Collected
}

func (b *Bill) Percent() float64 {
	if b.Goal == 0 {
		return 0
	}
	p := float64(b.Collected) / float64(b.Goal) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Closed is recomputed on every render and never stored. Status dominates the other inputs.
func (b *Bill) Closed(secondsRemaining int64) bool {
	return b.Status.Normalize() != StatusActive || b.Collected >= b.Goal || secondsRemaining <= 0
}

func (b *Bill) IsCreator(viewer string) bool {
	return validate.SameAccount(viewer, b.CreatorAddress)
}

func (b *Bill) ShowRefundAction(viewer string) bool {
	return b.Status.Normalize() == StatusTimeout && b.IsCreator(viewer) && b.Collected > 0
}

// Resumable tells whether the bill should stay in the local resumption record for this viewer.
// A creator keeps resuming into a funded timed-out bill so the refund stays reachable.
func (b *Bill) Resumable(viewer string) bool {
	switch b.Status.Normalize() {
	case StatusActive:
		return true
	case StatusTimeout:
		return b.IsCreator(viewer) && b.Collected > 0
	default:
		return false
	}
}
