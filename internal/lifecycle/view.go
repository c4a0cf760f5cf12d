package lifecycle

import (
	"github.com/GlebRadaev/billsplit/internal/domain"
)

// View is what gets rendered: one snapshot plus the flags derived from it for one viewer.
// It is rebuilt on every render and never stored.
type View struct {
	Bill             *domain.Bill
	Viewer           string
	SecondsRemaining int64
	Closed           bool
	IsCreator        bool
	ShowRefundAction bool
	Stale            bool
}

func NewView(snap *Snapshot, viewer string, secondsRemaining int64) View {
	b := snap.Bill
	return View{
		Bill:             b,
		Viewer:           viewer,
		SecondsRemaining: secondsRemaining,
		Closed:           b.Closed(secondsRemaining),
		IsCreator:        b.IsCreator(viewer),
		ShowRefundAction: b.ShowRefundAction(viewer),
		Stale:            snap.Stale,
	}
}
