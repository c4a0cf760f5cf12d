// Package ledger talks to the bill ledger backend: REST calls and the live bill subscription.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/dto"
	"github.com/GlebRadaev/billsplit/pkg/clients"
)

const (
	HeaderSender         = "Sender-Address"
	HeaderIdempotencyKey = "Idempotency-Key"
)

type Client struct {
	baseURL string
	client  clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL: cfg.LedgerAddress,
		client:  client,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetBill(ctx context.Context, id, viewer string) (*domain.Bill, error) {
	var bill dto.BillDTO
	if err := c.get(ctx, "/bills/"+url.PathEscape(id), viewer, &bill); err != nil {
		return nil, fmt.Errorf("get bill %s: %w", id, err)
	}
	return bill.ToDomain(), nil
}

func (c *Client) History(ctx context.Context, viewer string, page domain.Page) ([]domain.HistoryItem, error) {
	q := url.Values{}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.Offset > 0 {
		q.Set("offset", strconv.Itoa(page.Offset))
	}
	path := "/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var rows []dto.HistoryItemDTO
	if err := c.get(ctx, path, viewer, &rows); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	items := make([]domain.HistoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items, nil
}

func (c *Client) CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error) {
	body := dto.CreateBillRequestDTO{
		Goal:               req.Goal,
		DestinationAddress: req.DestinationAddress,
		Sender:             req.Sender,
	}
	var bill dto.BillDTO
	if err := c.post(ctx, "/bills", req.Sender, "", body, &bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	if bill.ID == "" {
		return nil, errors.New("create bill: ledger returned a bill without id")
	}
	return bill.ToDomain(), nil
}

func (c *Client) RecordTransaction(ctx context.Context, billID, sender string, req domain.TransactionRequest) error {
	body := dto.TransactionRequestDTO{Amount: req.Amount, OpType: req.OpType}
	if err := c.post(ctx, "/bills/"+url.PathEscape(billID)+"/transactions", sender, req.IdempotencyKey, body, nil); err != nil {
		return fmt.Errorf("record %s for bill %s: %w", req.OpType, billID, err)
	}
	return nil
}

func (c *Client) MarkRefunded(ctx context.Context, billID, sender, idempotencyKey string) error {
	if err := c.post(ctx, "/bills/"+url.PathEscape(billID)+"/refund", sender, idempotencyKey, nil, nil); err != nil {
		return fmt.Errorf("mark bill %s refunded: %w", billID, err)
	}
	return nil
}

func (c *Client) Cancel(ctx context.Context, billID, sender string) error {
	if err := c.post(ctx, "/bills/"+url.PathEscape(billID)+"/cancel", sender, "", nil, nil); err != nil {
		return fmt.Errorf("cancel bill %s: %w", billID, err)
	}
	return nil
}

// ServerTime reads the ledger clock from the Date header. Any status is fine as long as the header is there.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	_, headers, err := c.client.Head(ctx, c.baseURL+"/history")
	if err != nil {
		return time.Time{}, fmt.Errorf("server time: %w", err)
	}
	date := headers.Get("Date")
	if date == "" {
		return time.Time{}, errors.New("server time: no Date header")
	}
	t, err := http.ParseTime(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("server time: %w", err)
	}
	return t, nil
}

func (c *Client) get(ctx context.Context, path, viewer string, out any) error {
	statusCode, respBody, _, err := c.client.Get(ctx, c.baseURL+path, headers(viewer, ""))
	if err != nil {
		return err
	}
	return decode(statusCode, respBody, out)
}

func (c *Client) post(ctx context.Context, path, sender, idempotencyKey string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return err
		}
	}
	statusCode, respBody, _, err := c.client.Post(ctx, c.baseURL+path, headers(sender, idempotencyKey), body)
	if err != nil {
		return err
	}
	return decode(statusCode, respBody, out)
}

func headers(sender, idempotencyKey string) http.Header {
	h := http.Header{}
	if sender != "" {
		h.Set(HeaderSender, sender)
	}
	if idempotencyKey != "" {
		h.Set(HeaderIdempotencyKey, idempotencyKey)
	}
	return h
}

func decode(statusCode int, body []byte, out any) error {
	switch {
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, statusError(statusCode, body))
	case statusCode < 200 || statusCode > 299:
		return statusError(statusCode, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}
