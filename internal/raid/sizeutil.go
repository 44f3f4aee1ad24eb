package raid

import (
	"math/big"

	"github.com/blockforge/storagecore/internal/units"
)

// ceilDivSize returns ceil(data / n) as a Size, preserving arbitrary
// precision the way blivet's div_up(size, member_count) does for
// Decimal-backed sizes.
func ceilDivSize(data units.Size, n int64) units.Size {
	num := data.BigBytes()
	den := big.NewInt(n)
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return sizeFromBig(q)
}

func sizeFromBig(v *big.Int) units.Size {
	return units.NewSizeFromBig(v)
}

func mulSizeInt(s units.Size, n int64) units.Size {
	return s.MulScalar(n)
}
