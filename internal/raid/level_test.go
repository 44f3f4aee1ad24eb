package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockforge/storagecore/internal/units"
)

func TestLookupCanonicalAndAliases(t *testing.T) {
	cases := map[string]Level{
		"raid0":     RAID0,
		"RAID0":     RAID0,
		"0":         RAID0,
		"stripe":    RAID0,
		"raid1":     RAID1,
		"mirror":    RAID1,
		"raid5":     RAID5,
		"RAID5":     RAID5,
		"raid10":    RAID10,
		"linear":    Linear,
		"container": Container,
		"single":    Single,
		"dup":       Dup,
	}
	for descriptor, want := range cases {
		got, err := Lookup(descriptor)
		require.NoError(t, err, descriptor)
		assert.Equal(t, want, got, descriptor)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("raid99")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestTooFewMembers(t *testing.T) {
	_, err := RAID5.BaseMemberSize(units.NewSize(1024), 2)
	var tooFew *ErrTooFewMembers
	assert.ErrorAs(t, err, &tooFew)
	assert.Equal(t, "raid5", tooFew.Level)
	assert.Equal(t, 3, tooFew.Minimum)
}

// TestRAIDSizeIdentity runs Size for every level at its minimum member
// count (at least two), with no chunk rounding and no superblock
// reserve, and checks that it succeeds with a non-negative size. It
// does not compare the result against RawArraySize or the member sum.
func TestRAIDSizeIdentity(t *testing.T) {
	members := []units.Size{
		units.NewSize(100 * 1024 * 1024 * 1024),
		units.NewSize(100 * 1024 * 1024 * 1024),
		units.NewSize(150 * 1024 * 1024 * 1024),
		units.NewSize(100 * 1024 * 1024 * 1024),
	}

	for _, lvl := range All() {
		n := lvl.MinMembers()
		if n < 2 {
			n = 2
		}
		if n > len(members) {
			continue
		}
		got, err := lvl.Size(members[:n], units.Zero, ZeroSuperblock)
		require.NoError(t, err, lvl.Name())
		assert.False(t, got.IsNegative(), "%s produced negative size", lvl.Name())
	}
}

func TestRAID0StripingFormula(t *testing.T) {
	data := units.NewSize(10 * 1024 * 1024 * 1024)
	base, err := RAID0.BaseMemberSize(data, 4)
	require.NoError(t, err)
	// ceil(10GiB / 4) members worth of data each.
	want := units.NewSize(10 * 1024 * 1024 * 1024 / 4)
	assert.True(t, base.Equal(want))

	raw, err := RAID0.RawArraySize(4, units.NewSize(1024*1024*1024))
	require.NoError(t, err)
	assert.Equal(t, int64(4*1024*1024*1024), raw.Bytes())

	stride, err := RAID0.RecommendedStride(4)
	require.NoError(t, err)
	require.NotNil(t, stride)
	assert.Equal(t, 64, *stride)
}

func TestRAID1MirrorTakesSmallestMember(t *testing.T) {
	members := []units.Size{
		units.NewSize(100 * 1024 * 1024 * 1024),
		units.NewSize(90 * 1024 * 1024 * 1024),
	}
	got, err := RAID1.Size(members, units.Zero, ZeroSuperblock)
	require.NoError(t, err)
	assert.Equal(t, int64(90*1024*1024*1024), got.Bytes())

	stride, err := RAID1.RecommendedStride(2)
	require.NoError(t, err)
	assert.Nil(t, stride)
}

func TestRAID5ParitySpares(t *testing.T) {
	spares, err := RAID5.MaxSpares(5)
	require.NoError(t, err)
	assert.Equal(t, 2, spares)
}

func TestDupHalvesCapacity(t *testing.T) {
	members := []units.Size{units.NewSize(100 * 1024 * 1024)}
	got, err := Dup.Size(members, units.Zero, ZeroSuperblock)
	require.NoError(t, err)
	assert.Equal(t, int64(50*1024*1024), got.Bytes())
}

func TestContainerCarriesNoData(t *testing.T) {
	members := []units.Size{units.NewSize(100), units.NewSize(200)}
	got, err := Container.Size(members, units.Zero, ZeroSuperblock)
	require.NoError(t, err)
	assert.True(t, got.Equal(units.Zero))
}
