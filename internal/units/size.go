// Package units implements byte-exact size arithmetic with IEC and SI
// unit prefixes, the kind of quantity every other storagecore package
// measures devices, extents and formats in.
package units

import (
	"fmt"
	"math/big"
)

// Unit is a named multiplier of bytes, either binary (IEC) or decimal (SI).
type Unit struct {
	Symbol     string
	Multiplier *big.Int
}

func pow(base int64, exp int) *big.Int {
	b := big.NewInt(base)
	return new(big.Int).Exp(b, big.NewInt(int64(exp)), nil)
}

// IEC units, ordered smallest to largest.
var (
	B   = Unit{"B", big.NewInt(1)}
	KiB = Unit{"KiB", pow(1024, 1)}
	MiB = Unit{"MiB", pow(1024, 2)}
	GiB = Unit{"GiB", pow(1024, 3)}
	TiB = Unit{"TiB", pow(1024, 4)}
	PiB = Unit{"PiB", pow(1024, 5)}
	EiB = Unit{"EiB", pow(1024, 6)}
	ZiB = Unit{"ZiB", pow(1024, 7)}
	YiB = Unit{"YiB", pow(1024, 8)}
)

// SI units, ordered smallest to largest.
var (
	KB = Unit{"KB", pow(1000, 1)}
	MB = Unit{"MB", pow(1000, 2)}
	GB = Unit{"GB", pow(1000, 3)}
	TB = Unit{"TB", pow(1000, 4)}
	PB = Unit{"PB", pow(1000, 5)}
	EB = Unit{"EB", pow(1000, 6)}
	ZB = Unit{"ZB", pow(1000, 7)}
	YB = Unit{"YB", pow(1000, 8)}
)

var iecLadder = []Unit{YiB, ZiB, EiB, PiB, TiB, GiB, MiB, KiB, B}
var siLadder = []Unit{YB, ZB, EB, PB, TB, GB, MB, KB, B}

var unitsBySymbol = map[string]Unit{}

func init() {
	for _, u := range append(append([]Unit{}, iecLadder...), siLadder...) {
		unitsBySymbol[u.Symbol] = u
	}
	// Accept a handful of translated/alternate spellings the way blivet's
	// bytesize.unit_str translation table does, without pulling in a full
	// locale table for a library that otherwise never surfaces locale text.
	unitsBySymbol["k"] = KiB
	unitsBySymbol["K"] = KiB
	unitsBySymbol["kb"] = KB
	unitsBySymbol["kib"] = KiB
	unitsBySymbol["m"] = MiB
	unitsBySymbol["mb"] = MB
	unitsBySymbol["mib"] = MiB
	unitsBySymbol["g"] = GiB
	unitsBySymbol["gb"] = GB
	unitsBySymbol["gib"] = GiB
	unitsBySymbol["t"] = TiB
	unitsBySymbol["tb"] = TB
	unitsBySymbol["tib"] = TiB
	unitsBySymbol["p"] = PiB
	unitsBySymbol["pb"] = PB
	unitsBySymbol["pib"] = PiB
}

// RoundingMode controls how RoundToNearest resolves a value that falls
// between two whole multiples of the target unit.
type RoundingMode int

const (
	RoundDown RoundingMode = iota
	RoundUp
	RoundHalfUp
)

// Size is an arbitrary-precision, possibly negative, quantity of bytes.
// The zero value is zero bytes.
type Size struct {
	bytes *big.Int
}

func bi(v *big.Int) Size {
	if v == nil {
		v = big.NewInt(0)
	}
	return Size{bytes: new(big.Int).Set(v)}
}

// NewSize constructs a Size from a count of whole bytes.
func NewSize(bytes int64) Size {
	return bi(big.NewInt(bytes))
}

// NewSizeFromBig constructs a Size from an arbitrary-precision byte count.
func NewSizeFromBig(bytes *big.Int) Size {
	return bi(bytes)
}

// Zero is the additive identity.
var Zero = NewSize(0)

func (s Size) big() *big.Int {
	if s.bytes == nil {
		return big.NewInt(0)
	}
	return s.bytes
}

// Bytes returns the exact byte count. It panics if the value does not fit
// in an int64; callers dealing in device-scale sizes should prefer
// BigBytes for anything that might approach the int64 ceiling.
func (s Size) Bytes() int64 {
	if !s.big().IsInt64() {
		panic(fmt.Sprintf("storagecore/units: %s does not fit in int64", s.big().String()))
	}
	return s.big().Int64()
}

// BigBytes returns the exact byte count as an arbitrary-precision integer.
func (s Size) BigBytes() *big.Int {
	return new(big.Int).Set(s.big())
}

// IsNegative reports whether the size is less than zero.
func (s Size) IsNegative() bool { return s.big().Sign() < 0 }

// Add returns s+other.
func (s Size) Add(other Size) Size { return bi(new(big.Int).Add(s.big(), other.big())) }

// Sub returns s-other.
func (s Size) Sub(other Size) Size { return bi(new(big.Int).Sub(s.big(), other.big())) }

// MulScalar returns s*n.
func (s Size) MulScalar(n int64) Size {
	return bi(new(big.Int).Mul(s.big(), big.NewInt(n)))
}

// DivScalar returns s/n, truncated toward zero.
func (s Size) DivScalar(n int64) (Size, error) {
	if n == 0 {
		return Zero, ErrDivisionByZeroSize
	}
	return bi(new(big.Int).Quo(s.big(), big.NewInt(n))), nil
}

// DivSize returns the dimensionless ratio s/other as a Decimal.
func (s Size) DivSize(other Size) (*big.Rat, error) {
	if other.big().Sign() == 0 {
		return nil, ErrDivisionByZeroSize
	}
	return new(big.Rat).SetFrac(s.big(), other.big()), nil
}

// Mod returns s modulo other, both as sizes of the same unit.
func (s Size) Mod(other Size) (Size, error) {
	if other.big().Sign() == 0 {
		return Zero, ErrDivisionByZeroSize
	}
	return bi(new(big.Int).Mod(s.big(), other.big())), nil
}

// Cmp compares s to other: -1, 0, or 1.
func (s Size) Cmp(other Size) int { return s.big().Cmp(other.big()) }

// Equal reports whether s and other denote the same number of bytes.
func (s Size) Equal(other Size) bool { return s.Cmp(other) == 0 }

// RoundToNearest rounds s to the nearest whole multiple of unit per mode.
func (s Size) RoundToNearest(unit Unit, mode RoundingMode) Size {
	m := unit.Multiplier
	if m.Sign() == 0 {
		return s
	}
	q, r := new(big.Int).QuoRem(s.big(), m, new(big.Int))
	if r.Sign() == 0 {
		return s
	}
	switch mode {
	case RoundDown:
		if s.big().Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		}
	case RoundUp:
		if s.big().Sign() >= 0 {
			q.Add(q, big.NewInt(1))
		}
	case RoundHalfUp:
		half := new(big.Int).Div(m, big.NewInt(2))
		absR := new(big.Int).Abs(r)
		if absR.Cmp(half) >= 0 {
			if s.big().Sign() < 0 {
				q.Sub(q, big.NewInt(1))
			} else {
				q.Add(q, big.NewInt(1))
			}
		}
	}
	return bi(new(big.Int).Mul(q, m))
}

// AlignUp rounds s up to the nearest whole multiple of unit's size.
func (s Size) AlignUp(unit Unit) Size { return s.RoundToNearest(unit, RoundUp) }

// AlignDown rounds s down to the nearest whole multiple of unit's size.
func (s Size) AlignDown(unit Unit) Size { return s.RoundToNearest(unit, RoundDown) }
