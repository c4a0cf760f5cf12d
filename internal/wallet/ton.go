package wallet

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

// pay fees separately, ignore action phase errors
const sendMode uint8 = 3

type broadcaster interface {
	SendMany(ctx context.Context, messages []*wallet.Message, waitConfirmation ...bool) error
}

// TonSigner signs with a V4R2 wallet derived from a seed phrase and sends through lite servers.
// The lite server pool is connected on first use.
type TonSigner struct {
	configURL string
	pool      *liteclient.ConnectionPool
	address   string
	w         broadcaster

	mu        sync.Mutex
	connected bool
}

func NewTonSigner(cfg *config.Config) (*TonSigner, error) {
	words := strings.Fields(cfg.WalletSeed)
	if len(words) == 0 {
		return nil, errors.New("empty seed phrase")
	}

	pool := liteclient.NewConnectionPool()
	api := ton.NewAPIClient(pool).WithRetry()
	w, err := wallet.FromSeed(api, words, wallet.V4R2)
	if err != nil {
		return nil, fmt.Errorf("wallet from seed: %w", err)
	}

	return &TonSigner{
		configURL: cfg.LiteConfigURL,
		pool:      pool,
		address:   w.WalletAddress().String(),
		w:         w,
	}, nil
}

func (s *TonSigner) Address() string {
	return s.address
}

// Send returns once the external message is accepted by a lite server. It does not wait for the
// transaction to land: ctx carries the transfer deadline, and a broadcast message may confirm after it.
func (s *TonSigner) Send(ctx context.Context, msgs []Message) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	out, err := buildMessages(msgs)
	if err != nil {
		return err
	}
	return s.w.SendMany(ctx, out)
}

func (s *TonSigner) connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}
	if err := s.pool.AddConnectionsFromConfigUrl(ctx, s.configURL); err != nil {
		return fmt.Errorf("connect lite servers: %w", err)
	}
	s.connected = true
	return nil
}

func buildMessages(msgs []Message) ([]*wallet.Message, error) {
	out := make([]*wallet.Message, 0, len(msgs))
	for i, m := range msgs {
		dst, err := validate.ParseAddress(m.Address)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		body, err := decodeCell(m.Payload)
		if err != nil {
			return nil, fmt.Errorf("message %d payload: %w", i, err)
		}
		si, err := decodeStateInit(m.StateInit)
		if err != nil {
			return nil, fmt.Errorf("message %d state init: %w", i, err)
		}
		out = append(out, &wallet.Message{
			Mode: sendMode,
			InternalMessage: &tlb.InternalMessage{
				IHRDisabled: true,
				Bounce:      si == nil,
				DstAddr:     dst,
				Amount:      tlb.FromNanoTONU(uint64(m.Amount)),
				Body:        body,
				StateInit:   si,
			},
		})
	}
	return out, nil
}

func decodeCell(boc string) (*cell.Cell, error) {
	if boc == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(boc)
	if err != nil {
		if raw, err = base64.URLEncoding.DecodeString(boc); err != nil {
			return nil, err
		}
	}
	return cell.FromBOC(raw)
}

func decodeStateInit(boc string) (*tlb.StateInit, error) {
	c, err := decodeCell(boc)
	if err != nil || c == nil {
		return nil, err
	}
	var si tlb.StateInit
	if err := tlb.LoadFromCell(&si, c.BeginParse()); err != nil {
		return nil, err
	}
	return &si, nil
}
