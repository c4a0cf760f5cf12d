package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/pkg/clients"
)

var ErrUnexpectedBalance = errors.New("unexpected TON balance response")

// Toncenter reads account balances from the toncenter HTTP API.
type Toncenter struct {
	baseURL string
	apiKey  string
	client  clients.HTTPClientI
}

func NewToncenter(cfg *config.Config, client clients.HTTPClientI) *Toncenter {
	return &Toncenter{
		baseURL: cfg.ToncenterAddress,
		apiKey:  cfg.ToncenterAPIKey,
		client:  client,
	}
}

func (t *Toncenter) Balance(ctx context.Context, address string) (domain.Nano, error) {
	u := t.baseURL + "/api/v2/getAddressBalance?address=" + url.QueryEscape(address)
	var headers http.Header
	if t.apiKey != "" {
		headers = http.Header{}
		headers.Set("X-API-Key", t.apiKey)
	}

	statusCode, respBody, _, err := t.client.Get(ctx, u, headers)
	if err != nil {
		return 0, fmt.Errorf("toncenter balance: %w", err)
	}
	if statusCode != http.StatusOK {
		return 0, fmt.Errorf("toncenter balance: HTTP %d", statusCode)
	}
	return parseBalance(respBody)
}

// parseBalance accepts {"result": n}, {"balance": n} and {"result": {"balance": n}},
// with n either a number or a decimal string.
func parseBalance(body []byte) (domain.Nano, error) {
	var resp struct {
		Result  json.RawMessage `json:"result"`
		Balance json.RawMessage `json:"balance"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse response body: %w", err)
	}

	if scalar(resp.Result) {
		return nano(resp.Result)
	}
	if scalar(resp.Balance) {
		return nano(resp.Balance)
	}
	if len(resp.Result) > 0 && resp.Result[0] == '{' {
		var nested struct {
			Balance json.RawMessage `json:"balance"`
		}
		if err := json.Unmarshal(resp.Result, &nested); err == nil && scalar(nested.Balance) {
			return nano(nested.Balance)
		}
	}
	return 0, ErrUnexpectedBalance
}

func scalar(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return raw[0] == '"' || raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')
}

func nano(raw json.RawMessage) (domain.Nano, error) {
	var n domain.Nano
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnexpectedBalance, err)
	}
	return n, nil
}
