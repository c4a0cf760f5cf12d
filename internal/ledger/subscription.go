package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/dto"
	"github.com/GlebRadaev/billsplit/internal/metrics"
)

const (
	DefaultReconnectDelay = 2 * time.Second
	readLimit             = 1 << 20
)

type State int

const (
	StateConnecting State = iota
	StateOpen
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateError:
		return "ERROR"
	case StateClosed:
		return "CLOSED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Subscription pushes whole bill snapshots from the ledger's websocket.
// It reconnects after a fixed delay for as long as its context lives.
type Subscription struct {
	url     string
	billID  string
	delay   time.Duration
	onBill  func(*domain.Bill)
	onState func(State)
}

func (c *Client) Subscribe(billID string, delay time.Duration, onBill func(*domain.Bill), onState func(State)) (*Subscription, error) {
	u, err := wsURL(c.baseURL, billID)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	if onState == nil {
		onState = func(State) {}
	}
	return &Subscription{url: u, billID: billID, delay: delay, onBill: onBill, onState: onState}, nil
}

func (s *Subscription) URL() string {
	return s.url
}

// Run blocks until ctx is done. The socket and the reconnect timer are released before it returns.
func (s *Subscription) Run(ctx context.Context) error {
	for {
		s.setState(StateConnecting)
		err := s.session(ctx)
		if ctx.Err() != nil {
			s.setState(StateClosed)
			return nil
		}
		if err != nil {
			zap.L().Warn("Bill subscription failed", zap.String("billID", s.billID), zap.Error(err))
			s.setState(StateError)
		}
		s.setState(StateClosed)

		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (s *Subscription) session(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	s.setState(StateOpen)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return err
		}
		bill, err := parseSnapshot(data)
		if err != nil {
			metrics.DroppedMessages.Inc()
			zap.L().Debug("Dropping malformed bill message", zap.String("billID", s.billID), zap.Error(err))
			continue
		}
		if bill.ID != s.billID {
			metrics.DroppedMessages.Inc()
			zap.L().Debug("Dropping message for another bill", zap.String("billID", s.billID), zap.String("got", bill.ID))
			continue
		}
		s.onBill(bill)
	}
}

func (s *Subscription) setState(st State) {
	metrics.SubscriptionStates.WithLabelValues(st.String()).Inc()
	s.onState(st)
}

var errNoID = errors.New("snapshot without id")

func parseSnapshot(data []byte) (*domain.Bill, error) {
	var b dto.BillDTO
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, errNoID
	}
	return b.ToDomain(), nil
}

func wsURL(base, billID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("ledger address: %w", err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/bills/" + billID + "/ws"
	u.RawPath = ""
	return u.String(), nil
}
