// Package payload builds the message bodies attached to transfers into a bill's proxy wallet.
// The proxy contract reads the leading 32-bit opcode to tell a contribution from a refund request.
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/xssnick/tonutils-go/tvm/cell"
)

type Op uint32

const (
	OpContribute Op = 0xCF4D2AC0
	OpRefund     Op = 0x61A586E5
)

var ErrUnknownOp = errors.New("unknown opcode")

func (o Op) String() string {
	switch o {
	case OpContribute:
		return "CONTRIBUTE"
	case OpRefund:
		return "REFUND"
	}
	return fmt.Sprintf("0x%08X", uint32(o))
}

type Encoder struct {
	withNonce bool
	nowFn     func() time.Time
}

// New returns an encoder. With nonce enabled every body carries a 64-bit query id
// (unix milliseconds) right after the opcode.
func New(withNonce bool) *Encoder {
	return &Encoder{
		withNonce: withNonce,
		nowFn:     time.Now,
	}
}

func (e *Encoder) Contribute() (string, error) {
	return e.encode(OpContribute)
}

func (e *Encoder) Refund() (string, error) {
	return e.encode(OpRefund)
}

func (e *Encoder) encode(op Op) (string, error) {
	var queryID *uint64
	if e.withNonce {
		id := uint64(e.nowFn().UnixMilli())
		queryID = &id
	}
	c, err := Build(op, queryID)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(c.ToBOC()), nil
}

// Build stores the opcode and, if given, the query id into a single cell.
func Build(op Op, queryID *uint64) (*cell.Cell, error) {
	b := cell.BeginCell()
	if err := b.StoreUInt(uint64(op), 32); err != nil {
		return nil, fmt.Errorf("failed to store opcode: %w", err)
	}
	if queryID != nil {
		if err := b.StoreUInt(*queryID, 64); err != nil {
			return nil, fmt.Errorf("failed to store query id: %w", err)
		}
	}
	return b.EndCell(), nil
}

// Decode parses a base64 BOC body produced by Encoder. hasQueryID is false for opcode-only bodies.
func Decode(boc string) (op Op, queryID uint64, hasQueryID bool, err error) {
	raw, err := base64.StdEncoding.DecodeString(boc)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	c, err := cell.FromBOC(raw)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to parse payload boc: %w", err)
	}
	s := c.BeginParse()
	v, err := s.LoadUInt(32)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to load opcode: %w", err)
	}
	op = Op(v)
	if op != OpContribute && op != OpRefund {
		return op, 0, false, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	if s.BitsLeft() >= 64 {
		queryID, err = s.LoadUInt(64)
		if err != nil {
			return op, 0, false, fmt.Errorf("failed to load query id: %w", err)
		}
		hasQueryID = true
	}
	return op, queryID, hasQueryID, nil
}
