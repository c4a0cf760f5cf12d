package contributeservice

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/ledger"
	"github.com/GlebRadaev/billsplit/internal/ledger/ledgertest"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	resumerepo "github.com/GlebRadaev/billsplit/internal/repo/resume-repo"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/clients"
	"github.com/GlebRadaev/billsplit/pkg/payload"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockWallet, *MockLedger, *MockStore, *MockEncoder) {
	ctrl := gomock.NewController(t)
	w := NewMockWallet(ctrl)
	l := NewMockLedger(ctrl)
	st := NewMockStore(ctrl)
	enc := NewMockEncoder(ctrl)

	s := New(&config.Config{TransferTTL: 300 * time.Second}, w, l, st, enc)
	s.nowFn = func() time.Time { return now }
	s.newKey = func() string { return "key-1" }
	return s, w, l, st, enc
}

func activeBill() *domain.Bill {
	b := ledgertest.ActiveBill("b1", 10*ledgertest.TON, 0, now.Add(-time.Minute))
	return b.ToDomain()
}

func TestContribute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		sender  string
		bill    func() *domain.Bill
		amount  domain.Nano
		wantErr error
	}{
		{name: "wallet not connected", sender: "", bill: activeBill, amount: 1, wantErr: domain.ErrWalletNotConnected},
		{name: "no bill", sender: ledgertest.Contributor, bill: func() *domain.Bill { return nil }, amount: 1, wantErr: domain.ErrBillNotReady},
		{
			name:   "no proxy wallet",
			sender: ledgertest.Contributor,
			bill: func() *domain.Bill {
				b := activeBill()
				b.ProxyWalletAddress = ""
				return b
			},
			amount:  1,
			wantErr: domain.ErrBillNotReady,
		},
		{
			name:   "bad proxy wallet",
			sender: ledgertest.Contributor,
			bill: func() *domain.Bill {
				b := activeBill()
				b.ProxyWalletAddress = "EQnot-an-address"
				return b
			},
			amount:  1,
			wantErr: domain.ErrInvalidAddress,
		},
		{name: "zero amount", sender: ledgertest.Contributor, bill: activeBill, amount: 0, wantErr: domain.ErrInvalidAmount},
		{
			name:   "not active",
			sender: ledgertest.Contributor,
			bill: func() *domain.Bill {
				b := activeBill()
				b.Status = domain.StatusTimeout
				return b
			},
			amount:  1,
			wantErr: domain.ErrBillClosed,
		},
		{
			name:   "window over",
			sender: ledgertest.Contributor,
			bill: func() *domain.Bill {
				b := activeBill()
				b.CreatedAt = now.Add(-601 * time.Second)
				return b
			},
			amount:  1,
			wantErr: domain.ErrBillClosed,
		},
		{
			name:   "goal reached",
			sender: ledgertest.Contributor,
			bill: func() *domain.Bill {
				b := activeBill()
				b.Collected = b.Goal
				return b
			},
			amount:  1,
			wantErr: domain.ErrBillClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w, _, _, _ := NewMock(t)
			w.EXPECT().Address().Return(tt.sender)

			err := s.Contribute(context.Background(), tt.bill(), tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.ErrorIs(t, domain.ErrBillNotReady, domain.ErrInvalidInput)
}

func TestContribute_Success(t *testing.T) {
	s, w, l, st, enc := NewMock(t)
	bill := activeBill()

	w.EXPECT().Address().Return(ledgertest.Contributor)
	enc.EXPECT().Contribute().Return("te6payload", nil)
	gomock.InOrder(
		w.EXPECT().SendTransaction(gomock.Any(), wallet.Transfer{
			ValidUntil: now.Add(300 * time.Second),
			Messages: []wallet.Message{{
				Address:   ledgertest.ProxyAddress,
				Amount:    4 * ledgertest.TON,
				Payload:   "te6payload",
				StateInit: ledgertest.StateInit,
			}},
		}).Return(nil),
		l.EXPECT().RecordTransaction(gomock.Any(), "b1", ledgertest.Contributor, domain.TransactionRequest{
			Amount:         4 * ledgertest.TON,
			OpType:         domain.OpContribute,
			IdempotencyKey: "key-1",
		}).Return(nil),
		st.EXPECT().Invalidate("b1"),
	)

	require.NoError(t, s.Contribute(context.Background(), bill, 4*ledgertest.TON))
	assert.Equal(t, domain.Nano(0), bill.Collected, "local snapshot is never bumped")
}

func TestContribute_WalletFailureNeverRecords(t *testing.T) {
	for _, sendErr := range []error{domain.ErrWalletRejected, domain.ErrTransferExpired, errors.New("lite server down")} {
		t.Run(sendErr.Error(), func(t *testing.T) {
			s, w, _, _, enc := NewMock(t)

			w.EXPECT().Address().Return(ledgertest.Contributor)
			enc.EXPECT().Contribute().Return("te6payload", nil)
			w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(sendErr)
			// the ledger and store mocks have no expectations: any call fails the test

			err := s.Contribute(context.Background(), activeBill(), ledgertest.TON)
			assert.ErrorIs(t, err, sendErr)
		})
	}
}

func TestContribute_RecordFailureIsReportedNotRetried(t *testing.T) {
	s, w, l, st, enc := NewMock(t)
	cause := &ledger.StatusError{Code: 502}

	w.EXPECT().Address().Return(ledgertest.Contributor)
	enc.EXPECT().Contribute().Return("te6payload", nil)
	w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	l.EXPECT().RecordTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(cause).Times(1)
	st.EXPECT().Invalidate("b1")

	err := s.Contribute(context.Background(), activeBill(), 4*ledgertest.TON)
	require.ErrorIs(t, err, domain.ErrUnrecorded)
	assert.ErrorIs(t, err, cause)

	var unrecorded *domain.UnrecordedError
	require.ErrorAs(t, err, &unrecorded)
	assert.Equal(t, "b1", unrecorded.BillID)
	assert.Equal(t, 4*ledgertest.TON, unrecorded.Amount)
	assert.Equal(t, "key-1", unrecorded.IdempotencyKey)
}

func TestContribute_RecordSurvivesCallerCancel(t *testing.T) {
	s, w, l, st, enc := NewMock(t)
	ctx, cancel := context.WithCancel(context.Background())

	w.EXPECT().Address().Return(ledgertest.Contributor)
	enc.EXPECT().Contribute().Return("te6payload", nil)
	w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, wallet.Transfer) error {
		cancel()
		return nil
	})
	l.EXPECT().RecordTransaction(gomock.Any(), "b1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _ string, _ domain.TransactionRequest) error {
			return ctx.Err()
		})
	st.EXPECT().Invalidate("b1")

	assert.NoError(t, s.Contribute(ctx, activeBill(), ledgertest.TON))
}

func TestContribute_DuplicateInFlight(t *testing.T) {
	s, w, l, st, enc := NewMock(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	w.EXPECT().Address().Return(ledgertest.Contributor).Times(3)
	enc.EXPECT().Contribute().Return("te6payload", nil).Times(2)
	w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, wallet.Transfer) error {
		close(entered)
		<-release
		return nil
	})
	w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)
	l.EXPECT().RecordTransaction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	st.EXPECT().Invalidate("b1").Times(2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Contribute(context.Background(), activeBill(), ledgertest.TON))
	}()
	<-entered

	assert.ErrorIs(t, s.Contribute(context.Background(), activeBill(), ledgertest.TON), domain.ErrActionInFlight)

	close(release)
	wg.Wait()

	assert.NoError(t, s.Contribute(context.Background(), activeBill(), ledgertest.TON), "guard is released afterwards")
}

// A contributor pays 4 of 10 TON into an active bill; the next snapshot carries the new total.
func TestContribute_AgainstLedger(t *testing.T) {
	srv := ledgertest.New()
	defer srv.Close()
	srv.Put(ledgertest.ActiveBill("b1", 10*ledgertest.TON, 0, time.Now().Add(-time.Minute)))

	ctrl := gomock.NewController(t)
	w := NewMockWallet(ctrl)
	w.EXPECT().Address().Return(ledgertest.Contributor).AnyTimes()
	w.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tr wallet.Transfer) error {
		op, queryID, hasQueryID, err := payload.Decode(tr.Messages[0].Payload)
		require.NoError(t, err)
		assert.Equal(t, payload.OpContribute, op)
		assert.True(t, hasQueryID)
		assert.NotZero(t, queryID)
		return nil
	})

	repo, err := resumerepo.New(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer repo.Close()

	cfg := &config.Config{LedgerAddress: srv.URL, TransferTTL: 300 * time.Second}
	client := ledger.New(cfg, clients.NewHTTPClient())
	store := lifecycle.New(client, repo, w.Address, time.Hour)
	s := New(cfg, w, client, store, payload.New(true))
	ctx := context.Background()

	before, err := store.Get(ctx, "b1", ledgertest.Contributor)
	require.NoError(t, err)

	require.NoError(t, s.Contribute(ctx, before.Bill, 4*ledgertest.TON))
	assert.Equal(t, 1, srv.CallsTo("POST", "/bills/b1/transactions"))
	assert.NotEmpty(t, srv.Calls()[len(srv.Calls())-1].IdempotencyKey)

	after, err := store.Refresh(ctx, "b1", ledgertest.Contributor)
	require.NoError(t, err)
	assert.Equal(t, 4*ledgertest.TON, after.Bill.Collected)
	assert.Equal(t, domain.StatusActive, after.Bill.Status)
	assert.False(t, after.Bill.Closed(600))
}
