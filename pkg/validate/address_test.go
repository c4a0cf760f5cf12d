package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
)

const testAddr = "EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"

func TestSameAccount(t *testing.T) {
	parsed, err := ParseAddress(testAddr)
	require.NoError(t, err)

	nonBounce := address.NewAddress(0, byte(parsed.Workchain()), parsed.Data())
	nonBounce.SetBounce(false)

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: testAddr, b: testAddr, want: true},
		{name: "case differs", a: "abc", b: "ABC", want: true},
		{name: "bounceable and non-bounceable forms", a: testAddr, b: nonBounce.String(), want: true},
		{name: "raw form", a: testAddr, b: fmt.Sprintf("%d:%x", parsed.Workchain(), parsed.Data()), want: true},
		{name: "empty viewer", a: "", b: testAddr, want: false},
		{name: "different strings", a: "abc", b: "abd", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameAccount(tt.a, tt.b))
		})
	}
}

func TestParseAddress(t *testing.T) {
	_, err := ParseAddress("  ")
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = ParseAddress("not-an-address")
	assert.Error(t, err)

	assert.True(t, IsAddress(testAddr))
}

func TestParseTON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint64
		wantErr error
	}{
		{name: "whole", in: "4", want: 4_000_000_000},
		{name: "fraction", in: "0.5", want: 500_000_000},
		{name: "one nano", in: "0.000000001", want: 1},
		{name: "zero", in: "0", wantErr: ErrAmountTooLow},
		{name: "empty", in: "", wantErr: ErrEmptyAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTON(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
