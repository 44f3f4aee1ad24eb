// Package lvm implements LVM volume group and logical volume container
// semantics (spec component E): PV/VG free-space accounting and
// reservation formulas, and LV segment-type rules.
package lvm

import (
	"math/big"

	"github.com/blockforge/storagecore/internal/units"
)

// ThinPoolReserve mirrors blivet's ThPoolReserveSpec: the VG reserves
// min(max(percent% of VG size, Min), Max) extra space for a thin pool
// to be able to grow into, on top of any other reservation, whenever
// the VG owns at least one thin pool LV.
type ThinPoolReserve struct {
	Percent float64
	Min     units.Size
	Max     units.Size
}

// DefaultThinPoolReserve matches blivet's DEFAULT_THPOOL_RESERVE.
var DefaultThinPoolReserve = ThinPoolReserve{Percent: 20, Min: units.NewSize(1024 * 1024 * 1024), Max: units.NewSize(100 * 1024 * 1024 * 1024)}

// VolumeGroup carries the accounting state for an LVMVolumeGroup
// device's attrs beyond what internal/graph.LVMVolumeGroupAttrs holds:
// it is the pure-function sibling consulted by the planner and by
// internal/graph's container hooks.
type VolumeGroup struct {
	ExtentSize      units.Size
	PVUsableSpace   []units.Size // per-PV usable space, post lvm-metadata overhead
	LVSpaceUsed     []units.Size // vg_space_used per owned LV
	ReservedPercent float64
	ReservedSpace   units.Size
	ThinPoolReserve *ThinPoolReserve
	HasThinPool     bool
	PMSpareSize     units.Size
}

// Size is the sum of PV usable space (blivet's VG.size).
func (vg VolumeGroup) Size() units.Size {
	total := units.Zero
	for _, s := range vg.PVUsableSpace {
		total = total.Add(s)
	}
	return total
}

// Align rounds size down to a whole number of physical extents,
// matching blivet's VG.align(size, roundup=False).
func (vg VolumeGroup) Align(size units.Size) units.Size {
	return size.AlignDown(units.Unit{Symbol: "PE", Multiplier: vg.ExtentSize.BigBytes()})
}

// AlignUp rounds size up to a whole number of physical extents,
// matching blivet's VG.align(size, roundup=True).
func (vg VolumeGroup) AlignUp(size units.Size) units.Size {
	return size.AlignUp(units.Unit{Symbol: "PE", Multiplier: vg.ExtentSize.BigBytes()})
}

// ReservedSpaceTotal is blivet's VG.reserved_space: a percent-of-size
// reservation or a flat reservation (percent wins if both are set),
// plus the thin pool reserve if any owned LV is a thin pool, plus
// per-metadata-LV spare space, all rounded up to a whole extent.
func (vg VolumeGroup) ReservedSpaceTotal() units.Size {
	reserved := units.Zero
	size := vg.Size()

	if vg.ReservedPercent > 0 {
		num := size.BigBytes()
		reserved = units.NewSizeFromBig(scaleByPercent(num, vg.ReservedPercent))
	} else if vg.ReservedSpace.Cmp(units.Zero) > 0 {
		reserved = vg.ReservedSpace
	}

	if vg.ThinPoolReserve != nil && vg.HasThinPool {
		pct := units.NewSizeFromBig(scaleByPercent(size.BigBytes(), vg.ThinPoolReserve.Percent))
		thin := pct
		if thin.Cmp(vg.ThinPoolReserve.Min) < 0 {
			thin = vg.ThinPoolReserve.Min
		}
		if thin.Cmp(vg.ThinPoolReserve.Max) > 0 {
			thin = vg.ThinPoolReserve.Max
		}
		reserved = reserved.Add(thin)
	}

	reserved = reserved.Add(vg.PMSpareSize)
	return vg.AlignUp(reserved)
}

// FreeSpace is blivet's VG.free_space: size minus the sum of each
// owned LV's vg_space_used minus the reserved space total.
func (vg VolumeGroup) FreeSpace() units.Size {
	used := units.Zero
	for _, s := range vg.LVSpaceUsed {
		used = used.Add(s)
	}
	used = used.Add(vg.ReservedSpaceTotal())
	return vg.Size().Sub(used)
}

// scaleByPercent returns floor(bytes * percent / 100), computed exactly
// with big.Rat so odd percentages never drift from repeated float math.
func scaleByPercent(bytes *big.Int, percent float64) *big.Int {
	pct := new(big.Rat).SetFloat64(percent)
	if pct == nil {
		pct = new(big.Rat)
	}
	scaled := new(big.Rat).Mul(new(big.Rat).SetInt(bytes), pct)
	scaled.Quo(scaled, big.NewRat(100, 1))
	out := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	return out
}
