package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHTTPClient_RealServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Sender", r.Header.Get("Sender-Address"))
		w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := NewHTTPClient()
	ctx := context.Background()

	headers := http.Header{}
	headers.Set("Sender-Address", "EQabc")
	status, body, respHeaders, err := c.Post(ctx, srv.URL, headers, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"a":1}`, string(body))
	assert.Equal(t, http.MethodPost, respHeaders.Get("X-Method"))
	assert.Equal(t, "EQabc", respHeaders.Get("X-Sender"))
	assert.Equal(t, "application/json", respHeaders.Get("X-Content-Type"))

	status, _, respHeaders, err = c.Get(ctx, srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, http.MethodGet, respHeaders.Get("X-Method"))

	status, respHeaders, err = c.Head(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, respHeaders.Get("Date"))
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Get(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Get(gomock.Any(), "http://ledger/bills/1", gomock.Any()).Return(0, nil, nil, errors.New("down"))

	c := NewHTTPClient()
	c.SetClient(mock)

	_, _, _, err := c.Get(context.Background(), "http://ledger/bills/1", nil)
	assert.EqualError(t, err, "down")
}
