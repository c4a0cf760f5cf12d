package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/ledger"
	"github.com/GlebRadaev/billsplit/internal/ledger/ledgertest"
	"github.com/GlebRadaev/billsplit/internal/repo"
	"github.com/GlebRadaev/billsplit/internal/service"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/auth"
	"github.com/GlebRadaev/billsplit/pkg/clients"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{
		LedgerAddress: "http://localhost:1",
		StatePath:     filepath.Join(t.TempDir(), "state.db"),
	}
	repos, err := repo.New(cfg)
	require.NoError(t, err)
	defer repos.Close()

	w, err := wallet.New(nil, ledgertest.Creator, nil, nil)
	require.NoError(t, err)
	services := service.New(cfg, repos, ledger.New(cfg, clients.NewHTTPClient()), w)
	defer services.Close()

	h := New(services)
	assert.NotNil(t, h.BillHandler, "BillHandler should not be nil")
	assert.Equal(t, ledgertest.Creator, h.viewer())
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBillHandler := NewMockBillHandler(ctrl)
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Viewer", auth.Viewer(r.Context()))
		w.Header().Set("X-Bill", chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusOK)
	}
	mockBillHandler.EXPECT().Current(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().CloseCurrent(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().GetBill(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().Contribute(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().Refund(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().Cancel(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().Share(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().ShareQR(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().History(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockBillHandler.EXPECT().Balance(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	h := &Handlers{
		BillHandler: mockBillHandler,
		viewer:      func() string { return ledgertest.Creator },
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		sender string
		status int
		viewer string
		bill   string
	}{
		{"GET", "/api/bills/current", "", http.StatusOK, ledgertest.Creator, ""},
		{"DELETE", "/api/bills/current", "", http.StatusOK, ledgertest.Creator, ""},
		{"POST", "/api/bills", "", http.StatusOK, ledgertest.Creator, ""},
		{"GET", "/api/bills/b1", ledgertest.Contributor, http.StatusOK, ledgertest.Contributor, "b1"},
		{"POST", "/api/bills/b1/contribute", "", http.StatusOK, ledgertest.Creator, "b1"},
		{"POST", "/api/bills/b1/refund", "", http.StatusOK, ledgertest.Creator, "b1"},
		{"POST", "/api/bills/b1/cancel", "", http.StatusOK, ledgertest.Creator, "b1"},
		{"GET", "/api/bills/b1/share", "", http.StatusOK, ledgertest.Creator, "b1"},
		{"GET", "/api/bills/b1/share.png", "", http.StatusOK, ledgertest.Creator, "b1"},
		{"GET", "/api/history", "", http.StatusOK, ledgertest.Creator, ""},
		{"GET", "/api/balance", "", http.StatusOK, ledgertest.Creator, ""},
		{"GET", "/api/bills/b1", "not-an-address", http.StatusUnprocessableEntity, "", ""},
		{"PUT", "/api/bills/b1", "", http.StatusMethodNotAllowed, "", ""},
		{"GET", "/metrics", "", http.StatusOK, "", ""},
		{"GET", "/swagger/doc.json", "", http.StatusOK, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.sender != "" {
				req.Header.Set(auth.SenderHeader, tt.sender)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.viewer, rec.Header().Get("X-Viewer"))
			assert.Equal(t, tt.bill, rec.Header().Get("X-Bill"))
		})
	}
}
