package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var errEmptyAmount = errors.New("types: empty amount")

// Amount is a token quantity denominated in the currency's smallest unit.
// Principal and repayment values routinely exceed 2^53, so the wire form is
// always a full-precision decimal string; scientific notation and fractional
// values are rejected.
type Amount struct {
	value big.Int
}

// NewAmount copies v into a fresh Amount. A nil v yields zero.
func NewAmount(v *big.Int) *Amount {
	a := &Amount{}
	if v != nil {
		a.value.Set(v)
	}
	return a
}

// ParseAmount decodes a base-10 integer string.
func ParseAmount(s string) (*Amount, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errEmptyAmount
	}
	a := &Amount{}
	if _, ok := a.value.SetString(trimmed, 10); !ok {
		return nil, fmt.Errorf("types: invalid amount %q", s)
	}
	return a, nil
}

// BigInt returns a copy of the underlying integer.
func (a *Amount) BigInt() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(&a.value)
}

// Sign reports -1, 0 or +1 like big.Int.Sign.
func (a *Amount) Sign() int {
	if a == nil {
		return 0
	}
	return a.value.Sign()
}

// Cmp compares a and b like big.Int.Cmp. A nil Amount compares as zero.
func (a *Amount) Cmp(b *Amount) int {
	return a.BigInt().Cmp(b.BigInt())
}

// String renders the full-precision decimal form.
func (a *Amount) String() string {
	if a == nil {
		return "0"
	}
	return a.value.String()
}

// MarshalJSON emits the quoted decimal string.
func (a *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted or bare base-10 integer. Anything
// else (floats, exponents, stray quotes) is an error rather than a silently
// truncated value. Sign constraints belong to the callers validating the
// field, not the codec.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return errEmptyAmount
	}
	if strings.HasPrefix(raw, `"`) {
		if len(raw) < 2 || !strings.HasSuffix(raw, `"`) {
			return fmt.Errorf("types: invalid amount %s", raw)
		}
		raw = raw[1 : len(raw)-1]
		if raw == "" {
			return errEmptyAmount
		}
	}
	if _, ok := a.value.SetString(raw, 10); !ok {
		return fmt.Errorf("types: invalid amount %q", raw)
	}
	return nil
}
