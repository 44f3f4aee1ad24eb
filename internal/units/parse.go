package units

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// sizeStringPattern matches an optional sign, a decimal number (with an
// optional fractional part and optional scientific exponent), optional
// whitespace, and an optional unit suffix.
var sizeStringPattern = regexp.MustCompile(
	`^\s*([+-]?)\s*(\d+(?:\.\d+)?)(?:[eE]([+-]?\d+))?\s*([A-Za-z]*)\s*$`,
)

// ParseString parses a human-entered size string such as "56.19 MiB",
// "-512", or "3.4e2 KB" into a Size. A missing unit suffix defaults to
// KiB, matching how blivet's Size(str) constructor treats bare numbers
// entered by a user (as opposed to NewSize, which always means bytes).
func ParseString(s string) (Size, error) {
	m := sizeStringPattern.FindStringSubmatch(s)
	if m == nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidSizeString, s)
	}

	sign, mantissa, exponent, suffix := m[1], m[2], m[3], m[4]

	value, ok := new(big.Rat).SetString(mantissa)
	if !ok {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidSizeString, s)
	}
	if exponent != "" {
		exp := new(big.Int)
		if _, ok := exp.SetString(exponent, 10); !ok {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidSizeString, s)
		}
		scale := new(big.Int).Exp(big.NewInt(10), new(big.Int).Abs(exp), nil)
		scaleRat := new(big.Rat).SetInt(scale)
		if exp.Sign() >= 0 {
			value.Mul(value, scaleRat)
		} else {
			value.Quo(value, scaleRat)
		}
	}
	if sign == "-" {
		value.Neg(value)
	}

	unit := KiB
	if suffix != "" {
		u, ok := unitsBySymbol[suffix]
		if !ok {
			// Try case-insensitive canonical symbols (MiB, GiB, ...) before
			// giving up; translated/alternate forms are pre-seeded lowercase.
			u, ok = unitsBySymbol[strings.ToLower(suffix)]
			if !ok {
				return Zero, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidSizeString, suffix, s)
			}
		}
		unit = u
	}

	bytesRat := new(big.Rat).Mul(value, new(big.Rat).SetInt(unit.Multiplier))
	// Sizes are whole bytes; a fractional input that does not land on a
	// whole number of bytes is truncated toward zero.
	return bi(new(big.Int).Quo(bytesRat.Num(), bytesRat.Denom())), nil
}
