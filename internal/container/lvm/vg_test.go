package lvm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockforge/storagecore/internal/units"
)

func TestVolumeGroupSizeSumsPVs(t *testing.T) {
	vg := VolumeGroup{
		ExtentSize:    units.NewSize(4 * 1024 * 1024),
		PVUsableSpace: []units.Size{units.NewSize(100 * 1024 * 1024 * 1024), units.NewSize(50 * 1024 * 1024 * 1024)},
	}
	assert.Equal(t, int64(150*1024*1024*1024), vg.Size().Bytes())
}

func TestReservedSpacePercent(t *testing.T) {
	vg := VolumeGroup{
		ExtentSize:      units.NewSize(4 * 1024 * 1024),
		PVUsableSpace:   []units.Size{units.NewSize(100 * 1024 * 1024 * 1024)},
		ReservedPercent: 10,
	}
	reserved := vg.ReservedSpaceTotal()
	// 10% of 100 GiB = 10 GiB, rounded up to an extent multiple (already exact).
	assert.Equal(t, int64(10*1024*1024*1024), reserved.Bytes())
}

func TestReservedSpaceWithThinPool(t *testing.T) {
	vg := VolumeGroup{
		ExtentSize:      units.NewSize(4 * 1024 * 1024),
		PVUsableSpace:   []units.Size{units.NewSize(100 * 1024 * 1024 * 1024)},
		ThinPoolReserve: &DefaultThinPoolReserve,
		HasThinPool:     true,
	}
	reserved := vg.ReservedSpaceTotal()
	// 20% of 100GiB = 20GiB, within [1GiB,100GiB] bounds.
	assert.Equal(t, int64(20*1024*1024*1024), reserved.Bytes())
}

func TestThinPoolReserveClampedToMax(t *testing.T) {
	vg := VolumeGroup{
		ExtentSize:      units.NewSize(4 * 1024 * 1024),
		PVUsableSpace:   []units.Size{units.NewSize(1024 * 1024 * 1024 * 1024)}, // 1 TiB
		ThinPoolReserve: &DefaultThinPoolReserve,
		HasThinPool:     true,
	}
	reserved := vg.ReservedSpaceTotal()
	assert.Equal(t, int64(100*1024*1024*1024), reserved.Bytes())
}

func TestFreeSpace(t *testing.T) {
	vg := VolumeGroup{
		ExtentSize:    units.NewSize(4 * 1024 * 1024),
		PVUsableSpace: []units.Size{units.NewSize(100 * 1024 * 1024 * 1024)},
		LVSpaceUsed:   []units.Size{units.NewSize(30 * 1024 * 1024 * 1024)},
	}
	free := vg.FreeSpace()
	assert.Equal(t, int64(70*1024*1024*1024), free.Bytes())
}

func TestPVUsableSpaceDoublesOverheadOnMDArray(t *testing.T) {
	plain := PVUsableSpace(units.NewSize(100*1024*1024*1024), DefaultPEStart, false)
	onMD := PVUsableSpace(units.NewSize(100*1024*1024*1024), DefaultPEStart, true)
	assert.True(t, onMD.Cmp(plain) < 0)
}

func TestThinPoolMetadataSizeClamped(t *testing.T) {
	tiny := ThinPoolMetadataSize(units.NewSize(1024))
	assert.Equal(t, thinMetadataFloor.Bytes(), tiny.Bytes())

	huge := ThinPoolMetadataSize(units.NewSize(100 * 1024 * 1024 * 1024 * 1024))
	assert.Equal(t, thinMetadataCeiling.Bytes(), huge.Bytes())
}
