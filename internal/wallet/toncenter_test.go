package wallet

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/pkg/clients"
)

func encodeCell(t *testing.T, c *cell.Cell) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(c.ToBOC())
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    domain.Nano
		wantErr bool
	}{
		{name: "result string", body: `{"ok":true,"result":"12500000000"}`, want: 12_500_000_000},
		{name: "result number", body: `{"ok":true,"result":12500000000}`, want: 12_500_000_000},
		{name: "balance field", body: `{"balance":"7"}`, want: 7},
		{name: "nested result", body: `{"result":{"balance":42}}`, want: 42},
		{name: "null result", body: `{"ok":false,"result":null}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBalance([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToncenter_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	tc := NewToncenter(&config.Config{ToncenterAddress: "https://testnet.toncenter.com", ToncenterAPIKey: "secret"}, client)

	client.EXPECT().
		Get(gomock.Any(), "https://testnet.toncenter.com/api/v2/getAddressBalance?address=EQabc%2B", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, h http.Header) (int, []byte, http.Header, error) {
			assert.Equal(t, "secret", h.Get("X-API-Key"))
			return http.StatusOK, []byte(`{"ok":true,"result":"1000000000"}`), nil, nil
		})

	got, err := tc.Balance(context.Background(), "EQabc+")
	require.NoError(t, err)
	assert.Equal(t, domain.Nano(1_000_000_000), got)

	client.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(http.StatusUnauthorized, []byte(`{}`), nil, nil)
	_, err = tc.Balance(context.Background(), "EQabc")
	assert.ErrorContains(t, err, "HTTP 401")
}
