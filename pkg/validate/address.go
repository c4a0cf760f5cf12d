package validate

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

var (
	ErrEmptyAddress  = errors.New("empty address")
	ErrEmptyAmount   = errors.New("empty amount")
	ErrAmountTooLow  = errors.New("amount below minimum unit")
	ErrAmountTooHigh = errors.New("amount overflows nano units")
)

// ParseAddress accepts user-friendly (EQ.../UQ...) and raw (0:<hex>) TON addresses.
func ParseAddress(s string) (*address.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyAddress
	}
	if strings.Contains(s, ":") {
		a, err := address.ParseRawAddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid raw address %q: %w", s, err)
		}
		return a, nil
	}
	a, err := address.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return a, nil
}

func IsAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// SameAccount reports whether two address strings point to the same account.
// Plain case-insensitive equality wins first, so unparsable inputs still compare.
func SameAccount(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}
	pa, err := ParseAddress(a)
	if err != nil {
		return false
	}
	pb, err := ParseAddress(b)
	if err != nil {
		return false
	}
	return pa.Workchain() == pb.Workchain() && bytes.Equal(pa.Data(), pb.Data())
}

// ParseTON converts a decimal TON amount ("4", "0.5") into nano units.
func ParseTON(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyAmount
	}
	coins, err := tlb.FromTON(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return nanoToUint(coins.Nano())
}

func nanoToUint(n *big.Int) (uint64, error) {
	if n.Sign() <= 0 {
		return 0, ErrAmountTooLow
	}
	if !n.IsUint64() {
		return 0, ErrAmountTooHigh
	}
	return n.Uint64(), nil
}
