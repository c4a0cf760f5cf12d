package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const wallet = "EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"

func TestViewerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		fallback   func() string
		wantCode   int
		wantViewer string
	}{
		{
			name:       "header wins",
			header:     "EQBvW8Z5huBkMJYdnfAEM5JqTNkuWX3diqYENkWsIL0XggGG",
			fallback:   func() string { return wallet },
			wantCode:   http.StatusOK,
			wantViewer: "EQBvW8Z5huBkMJYdnfAEM5JqTNkuWX3diqYENkWsIL0XggGG",
		},
		{
			name:       "falls back to wallet",
			fallback:   func() string { return wallet },
			wantCode:   http.StatusOK,
			wantViewer: wallet,
		},
		{
			name:       "anonymous",
			wantCode:   http.StatusOK,
			wantViewer: "",
		},
		{
			name:     "malformed header",
			header:   "garbage",
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := ViewerMiddleware(tt.fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = Viewer(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(SenderHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantViewer, got)
		})
	}
}
