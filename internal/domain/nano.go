package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/xssnick/tonutils-go/tlb"
)

// Nano is an amount in nano-TON. The backend sends it either as a JSON number or as a decimal string.
type Nano uint64

func (n Nano) String() string {
	return tlb.FromNanoTONU(uint64(n)).String()
}

func (n Nano) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(n), 10)), nil
}

func (n *Nano) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if len(data) == 0 {
		*n = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		// some backends serialise big integers as floats, e.g. 4e+09
		f, ferr := strconv.ParseFloat(string(data), 64)
		// float64(math.MaxUint64) rounds up to 2^64, which does not fit
		if ferr != nil || math.IsNaN(f) || f < 0 || f >= math.MaxUint64 || f != math.Trunc(f) {
			return fmt.Errorf("invalid nano amount %s: %w", data, err)
		}
		v = uint64(f)
	}
	*n = Nano(v)
	return nil
}
