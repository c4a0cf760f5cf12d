package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	creator  = "EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"
	stranger = "EQBvW8Z5huBkMJYdnfAEM5JqTNkuWX3diqYENkWsIL0XggGG"
)

func TestBill_ClosedStatusDominates(t *testing.T) {
	amounts := []struct{ goal, collected Nano }{
		{goal: 10, collected: 0},
		{goal: 10, collected: 9},
		{goal: 10, collected: 10},
		{goal: 0, collected: 0},
	}
	for _, status := range []Status{StatusDone, StatusTimeout, StatusRefunded, StatusCancelled, statusCompletedLegacy} {
		for _, a := range amounts {
			for _, left := range []int64{0, 1, 600} {
				b := &Bill{Status: status, Goal: a.goal, Collected: a.collected}
				assert.True(t, b.Closed(left), "status %s goal %d collected %d left %d", status, a.goal, a.collected, left)
			}
		}
	}
}

func TestBill_ClosedActive(t *testing.T) {
	tests := []struct {
		name string
		bill Bill
		left int64
		want bool
	}{
		{name: "open", bill: Bill{Status: StatusActive, Goal: 10, Collected: 3}, left: 100, want: false},
		{name: "goal reached", bill: Bill{Status: StatusActive, Goal: 10, Collected: 10}, left: 100, want: true},
		{name: "overfunded", bill: Bill{Status: StatusActive, Goal: 10, Collected: 12}, left: 100, want: true},
		{name: "countdown over", bill: Bill{Status: StatusActive, Goal: 10, Collected: 3}, left: 0, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bill.Closed(tt.left))
		})
	}
}

func TestBill_ShowRefundAction(t *testing.T) {
	tests := []struct {
		name   string
		bill   Bill
		viewer string
		want   bool
	}{
		{name: "creator timeout funded", bill: Bill{Status: StatusTimeout, CreatorAddress: creator, Collected: 4}, viewer: creator, want: true},
		{name: "creator lowercase", bill: Bill{Status: StatusTimeout, CreatorAddress: "eqabc", Collected: 4}, viewer: "EQABC", want: true},
		{name: "non creator", bill: Bill{Status: StatusTimeout, CreatorAddress: creator, Collected: 4}, viewer: stranger, want: false},
		{name: "nothing collected", bill: Bill{Status: StatusTimeout, CreatorAddress: creator}, viewer: creator, want: false},
		{name: "already refunded", bill: Bill{Status: StatusRefunded, CreatorAddress: creator, Collected: 4}, viewer: creator, want: false},
		{name: "active", bill: Bill{Status: StatusActive, CreatorAddress: creator, Collected: 4}, viewer: creator, want: false},
		{name: "done", bill: Bill{Status: StatusDone, CreatorAddress: creator, Collected: 4}, viewer: creator, want: false},
		{name: "no viewer", bill: Bill{Status: StatusTimeout, CreatorAddress: creator, Collected: 4}, viewer: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bill.ShowRefundAction(tt.viewer))
		})
	}
}

func TestBill_Resumable(t *testing.T) {
	tests := []struct {
		name   string
		bill   Bill
		viewer string
		want   bool
	}{
		{name: "active", bill: Bill{Status: StatusActive, CreatorAddress: creator}, viewer: stranger, want: true},
		{name: "done", bill: Bill{Status: StatusDone, CreatorAddress: creator, Collected: 4}, viewer: creator, want: false},
		{name: "refunded", bill: Bill{Status: StatusRefunded, CreatorAddress: creator, Collected: 4}, viewer: creator, want: false},
		{name: "cancelled", bill: Bill{Status: StatusCancelled, CreatorAddress: creator}, viewer: creator, want: false},
		{name: "timeout empty creator", bill: Bill{Status: StatusTimeout, CreatorAddress: creator}, viewer: creator, want: false},
		{name: "timeout funded contributor", bill: Bill{Status: StatusTimeout, CreatorAddress: creator, Collected: 4}, viewer: stranger, want: false},
		{name: "timeout funded creator", bill: Bill{Status: StatusTimeout, CreatorAddress: creator, Collected: 4}, viewer: creator, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bill.Resumable(tt.viewer))
		})
	}
}

func TestBill_LeftAndPercent(t *testing.T) {
	b := &Bill{Goal: 10_000_000_000, Collected: 4_000_000_000}
	assert.Equal(t, Nano(6_000_000_000), b.Left())
	assert.InDelta(t, 40.0, b.Percent(), 0.0001)

	b.Collected = 12_000_000_000
	assert.Equal(t, Nano(0), b.Left())
	assert.InDelta(t, 100.0, b.Percent(), 0.0001)
}

func TestBill_Deadline(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &Bill{CreatedAt: created}
	assert.Equal(t, created.Add(10*time.Minute), b.Deadline())
	assert.True(t, (&Bill{}).Deadline().IsZero())
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusTimeout.Terminal())
	assert.True(t, StatusDone.Terminal())
	assert.True(t, statusCompletedLegacy.Terminal())
	assert.True(t, StatusRefunded.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestNano_JSON(t *testing.T) {
	var v struct {
		A Nano `json:"a"`
		B Nano `json:"b"`
		C Nano `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 4000000000, "b": "10000000000", "c": null}`), &v))
	assert.Equal(t, Nano(4_000_000_000), v.A)
	assert.Equal(t, Nano(10_000_000_000), v.B)
	assert.Equal(t, Nano(0), v.C)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 4000000000, "b": 10000000000, "c": 0}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a": "abc"}`), &v))
}

func TestNano_FloatFallback(t *testing.T) {
	tests := []struct {
		in      string
		want    Nano
		wantErr bool
	}{
		{in: `4e+09`, want: 4_000_000_000},
		{in: `"2.5e9"`, want: 2_500_000_000},
		{in: `18446744073709551615`, want: Nano(^uint64(0))},
		{in: `1.5`, wantErr: true},
		{in: `-1`, wantErr: true},
		{in: `"NaN"`, wantErr: true},
		{in: `"+Inf"`, wantErr: true},
		{in: `1.8446744073709552e19`, wantErr: true},
		{in: `1e400`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n Nano
			err := n.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestUnrecordedError(t *testing.T) {
	cause := errors.New("ledger down")
	err := error(&UnrecordedError{BillID: "b1", Op: OpContribute, Amount: 1_000_000_000, Err: cause})

	assert.ErrorIs(t, err, ErrUnrecorded)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "b1")
	assert.ErrorIs(t, ErrWalletNotConnected, ErrInvalidInput)
}
