package sqlarrow

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// RoundingMode selects how a decimal is rounded when its scale is reduced.
type RoundingMode int

// Rounding modes. RoundingUnset, the zero value, behaves like
// RoundUnnecessary: any rescale that drops a non-zero digit fails.
const (
	RoundingUnset RoundingMode = iota
	RoundUnnecessary
	RoundUp
	RoundDown
	RoundCeiling
	RoundFloor
	RoundHalfUp
	RoundHalfDown
	RoundHalfEven
)

var roundingModeNames = [...]string{
	RoundingUnset:    "",
	RoundUnnecessary: "unnecessary",
	RoundUp:          "up",
	RoundDown:        "down",
	RoundCeiling:     "ceiling",
	RoundFloor:       "floor",
	RoundHalfUp:      "half_up",
	RoundHalfDown:    "half_down",
	RoundHalfEven:    "half_even",
}

// String returns the string representation of the rounding mode.
func (m RoundingMode) String() string {
	if m < 0 || int(m) >= len(roundingModeNames) {
		return "unknown"
	}
	if m == RoundingUnset {
		return "unset"
	}
	return roundingModeNames[m]
}

// ParseRoundingMode converts a string to a RoundingMode. Dashes and
// underscores are interchangeable and case is ignored; the empty string
// yields RoundingUnset.
func ParseRoundingMode(s string) (RoundingMode, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if name == "" || name == "unset" {
		return RoundingUnset, true
	}
	for i, n := range roundingModeNames {
		if n != "" && n == name {
			return RoundingMode(i), true
		}
	}
	return RoundingUnset, false
}

var bigOne = big.NewInt(1)

// Rescale changes the scale of n from fromScale to toScale. Increasing the
// scale and dropping only zero digits are exact. Dropping non-zero digits
// rounds according to m, or fails with ErrPrecisionLoss when m is
// RoundingUnset or RoundUnnecessary.
func (m RoundingMode) Rescale(n decimal128.Num, fromScale, toScale int32) (decimal128.Num, error) {
	if delta := toScale - fromScale; delta > maxDecimal128Precision || delta < -maxDecimal128Precision {
		return decimal128.Num{}, fmt.Errorf("rescale %d -> %d: scale change out of range", fromScale, toScale)
	}
	out, err := n.Rescale(fromScale, toScale)
	if err == nil {
		return out, nil
	}
	if toScale > fromScale {
		return decimal128.Num{}, fmt.Errorf("rescale %d -> %d: %w", fromScale, toScale, err)
	}
	if m == RoundingUnset || m == RoundUnnecessary {
		return decimal128.Num{}, fmt.Errorf("%w: %s from scale %d to %d",
			ErrPrecisionLoss, n.ToString(fromScale), fromScale, toScale)
	}

	v := n.BigInt()
	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(fromScale-toScale)), nil)
	q, r := new(big.Int).QuoRem(v, div, new(big.Int))
	if m.roundsAway(q, r, div, v.Sign()) {
		if v.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return decimal128.FromBigInt(q), nil
}

// roundsAway reports whether a quotient truncated toward zero must move one
// unit away from zero given the non-zero remainder r.
func (m RoundingMode) roundsAway(q, r, div *big.Int, sign int) bool {
	half := new(big.Int).Abs(r)
	half.Lsh(half, 1)
	cmp := half.Cmp(div)

	switch m {
	case RoundUp:
		return true
	case RoundDown:
		return false
	case RoundCeiling:
		return sign > 0
	case RoundFloor:
		return sign < 0
	case RoundHalfUp:
		return cmp >= 0
	case RoundHalfDown:
		return cmp > 0
	case RoundHalfEven:
		return cmp > 0 || (cmp == 0 && q.Bit(0) == 1)
	default:
		return false
	}
}
