package units

import (
	"fmt"
	"math/big"
	"strings"
)

// MaxPlaces represents the max_places argument to HumanReadable. A nil
// value means "show every significant digit", mirroring blivet's
// max_places=None.
type MaxPlaces *int

// Places returns a MaxPlaces wrapping n.
func Places(n int) MaxPlaces {
	v := n
	return &v
}

// AllDigits is the MaxPlaces value requesting full precision.
var AllDigits MaxPlaces = nil

func ladderFor(base Unit) []Unit {
	switch base {
	case B, KiB, MiB, GiB, TiB, PiB, EiB, ZiB, YiB:
		return iecLadder
	default:
		return siLadder
	}
}

// HumanReadable renders s using the largest unit of the min_unit's ladder
// (IEC by default) that yields a magnitude >= 1, rounded to max_places
// decimal digits. Trailing zeros are stripped unless the exact value
// deviates from the rounded whole-unit quantity by more than 1% of one
// unit, in which case the requested decimal places are kept in full so
// the approximation is visible.
func (s Size) HumanReadable(maxPlaces MaxPlaces, minUnit Unit) (string, error) {
	if maxPlaces != nil && *maxPlaces < 0 {
		return "", ErrInvalidPlaces
	}

	neg := s.IsNegative()
	abs := s
	if neg {
		abs = bi(new(big.Int).Neg(s.big()))
	}

	ladder := ladderFor(minUnit)
	chosen := minUnit
	chosenVal := new(big.Rat).SetInt(abs.big())
	chosenVal.Quo(chosenVal, new(big.Rat).SetInt(minUnit.Multiplier))

	one := big.NewRat(1, 1)
	for _, u := range ladder {
		if u.Multiplier.Cmp(minUnit.Multiplier) < 0 {
			continue
		}
		v := new(big.Rat).SetInt(abs.big())
		v.Quo(v, new(big.Rat).SetInt(u.Multiplier))
		if v.Cmp(one) >= 0 {
			chosen = u
			chosenVal = v
			break
		}
		// keep the smallest-so-far candidate in case nothing clears 1
		chosen = u
		chosenVal = v
	}

	var text string
	if maxPlaces == nil {
		text = exactDecimalString(chosenVal)
	} else {
		text = roundedDecimalString(chosenVal, *maxPlaces)
	}

	if neg {
		text = "-" + text
	}
	return fmt.Sprintf("%s %s", text, chosen.Symbol), nil
}

// exactDecimalString renders v with exactly as many fractional digits as
// are needed for a terminating decimal expansion (always possible here:
// every Size is an integer number of bytes and every Unit multiplier is a
// product of only 2s and 5s).
func exactDecimalString(v *big.Rat) string {
	denom := new(big.Int).Set(v.Denom())
	digits := 0
	two := big.NewInt(2)
	five := big.NewInt(5)
	rem := new(big.Int)
	for denom.Cmp(big.NewInt(1)) > 0 {
		if new(big.Int).Mod(denom, two).Sign() == 0 {
			denom.Div(denom, two)
			digits++
			continue
		}
		if new(big.Int).Mod(denom, five).Sign() == 0 {
			denom.Div(denom, five)
			digits++
			continue
		}
		// non-terminating in base 10; fall back to a generous fixed width
		return v.FloatString(34)
	}
	_ = rem
	return v.FloatString(digits)
}

// roundedDecimalString rounds v to places fractional digits (round-half-up)
// and strips trailing zeros, unless doing so would hide that the exact
// value differs from the rounded whole-unit quantity by more than 1%.
func roundedDecimalString(v *big.Rat, places int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Rat).Mul(v, new(big.Rat).SetInt(scale))
	num := scaled.Num()
	den := scaled.Denom()
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	twiceR := new(big.Int).Mul(r, big.NewInt(2))
	if twiceR.CmpAbs(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	rounded := new(big.Rat).SetFrac(q, scale)

	text := rounded.FloatString(places)
	if !strings.Contains(text, ".") {
		return text
	}

	// Whole after rounding: decide whether to strip trailing zeros.
	trimmed := strings.TrimRight(text, "0")
	trimmed = strings.TrimRight(trimmed, ".")
	isWhole := trimmed == "" || !strings.Contains(trimmed, ".")
	if !isWhole {
		return text
	}

	deviation := new(big.Rat).Sub(v, rounded)
	deviation.Abs(deviation)
	onePercent := big.NewRat(1, 100)
	if deviation.Cmp(onePercent) > 0 {
		return text
	}
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
