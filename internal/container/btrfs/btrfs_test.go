package btrfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/units"
)

func TestValidateLevelAcceptsSupported(t *testing.T) {
	assert.NoError(t, ValidateLevel("single"))
	assert.NoError(t, ValidateLevel("dup"))
	assert.NoError(t, ValidateLevel("raid1"))
}

func TestValidateLevelRejectsUnsupported(t *testing.T) {
	err := ValidateLevel("raid4")
	assert.ErrorIs(t, err, ErrUnsupportedLevel)
}

func TestValidateLevelRejectsUnknown(t *testing.T) {
	err := ValidateLevel("not-a-level")
	assert.Error(t, err)
}

func TestFirstVolumeAncestor(t *testing.T) {
	g := graph.New()
	vol := graph.NewDevice(0, "myvol", graph.KindBTRFSVolume)
	sub1 := graph.NewDevice(0, "sub1", graph.KindBTRFSSubVolume)
	sub2 := graph.NewDevice(0, "sub2", graph.KindBTRFSSubVolume)
	require.NoError(t, g.Add(vol))
	require.NoError(t, g.Add(sub1))
	require.NoError(t, g.Add(sub2))
	require.NoError(t, g.AddParent(sub1, vol))
	require.NoError(t, g.AddParent(sub2, sub1))

	ancestor, err := FirstVolumeAncestor(g, sub2)
	require.NoError(t, err)
	assert.Equal(t, "myvol", ancestor.Name)
}

func TestPreAddMemberRequiresBTRFSFormat(t *testing.T) {
	RegisterHooks()
	g := graph.New()
	vol := graph.NewDevice(0, "myvol", graph.KindBTRFSVolume)
	disk := graph.NewDevice(0, "sdb", graph.KindDisk)
	disk.Size = units.NewSize(1024 * 1024 * 1024)
	require.NoError(t, g.Add(vol))
	require.NoError(t, g.Add(disk))

	err := g.AddParent(vol, disk)
	assert.ErrorIs(t, err, ErrNotBTRFSMember)

	disk.Format = format.New(format.KindBTRFSMember)
	assert.NoError(t, g.AddParent(vol, disk))
}

func TestPreAddMemberRejectsUndersizedDevice(t *testing.T) {
	RegisterHooks()
	g := graph.New()
	vol := graph.NewDevice(0, "myvol2", graph.KindBTRFSVolume)
	disk := graph.NewDevice(0, "sdc", graph.KindDisk)
	disk.Size = units.NewSize(1024 * 1024) // 1 MiB, below MinMemberSize
	disk.Format = format.New(format.KindBTRFSMember)
	require.NoError(t, g.Add(vol))
	require.NoError(t, g.Add(disk))

	err := g.AddParent(vol, disk)
	assert.ErrorIs(t, err, ErrMemberTooSmall)
}

func TestAddAndRemoveSubvolume(t *testing.T) {
	vol := graph.NewDevice(0, "myvol3", graph.KindBTRFSVolume)
	vol.BTRFSVol = &graph.BTRFSVolumeAttrs{}

	require.NoError(t, AddSubvolume(vol, "home"))
	err := AddSubvolume(vol, "home")
	assert.ErrorIs(t, err, ErrSubvolumeExists)

	require.NoError(t, RemoveSubvolume(vol, "home"))
	err = RemoveSubvolume(vol, "home")
	assert.ErrorIs(t, err, ErrSubvolumeNotFound)
}
