package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
)

// raid0Array wires an MD array of the given level with n members into g, each member
// already carrying the md-member format, returning the array and its
// members in graph-parent order.
func raid0Array(t *testing.T, g *graph.Graph, level string, n int) (*graph.Device, []*graph.Device) {
	t.Helper()
	array := graph.NewDevice(0, "md0", graph.KindMDArray)
	array.MDArray = &graph.MDArrayAttrs{Level: level}
	require.NoError(t, g.Add(array))

	members := make([]*graph.Device, n)
	for i := range members {
		m := graph.NewDevice(0, "disk"+string(rune('a'+i)), graph.KindDisk)
		m.Format = format.New(format.KindMDMember)
		require.NoError(t, g.Add(m))
		require.NoError(t, g.AddParent(array, m))
		members[i] = m
	}
	return array, members
}

// TestPreRemoveMemberRejectsExistingArrayWithFormattedMember exercises
// S6: removing a member from an existing RAID0 whose members carry
// formatted data raises DeviceError.
func TestPreRemoveMemberRejectsExistingArrayWithFormattedMember(t *testing.T) {
	g := graph.New()
	array, members := raid0Array(t, g, "raid0", 3)
	array.Exists = true
	members[0].Format.Exists = true

	err := preRemoveMember(g, array, members[0])
	require.ErrorIs(t, err, ErrNonRedundantActiveRemoval)
}

// TestPreRemoveMemberAllowsPlannedArrayEvenIfActive guards against
// keying off the member's Active status flag instead of the array's
// Exists flag and the member format's Exists flag: a planned (not yet
// created) array must allow member removal regardless of Active.
func TestPreRemoveMemberAllowsPlannedArrayEvenIfActive(t *testing.T) {
	g := graph.New()
	array, members := raid0Array(t, g, "raid0", 3)
	array.Exists = false
	members[0].Active = true
	members[0].Format.Exists = true

	err := preRemoveMember(g, array, members[0])
	assert.NoError(t, err)
}

// TestPreRemoveMemberAllowsExistingArrayWithUnformattedMember covers the
// other direction: an existing array whose member format has not been
// created yet must allow removal.
func TestPreRemoveMemberAllowsExistingArrayWithUnformattedMember(t *testing.T) {
	g := graph.New()
	array, members := raid0Array(t, g, "raid0", 3)
	array.Exists = true
	members[0].Format.Exists = false

	err := preRemoveMember(g, array, members[0])
	assert.NoError(t, err)
}

// TestPreRemoveMemberAllowsRedundantLevelRegardlessOfFormat confirms the
// rejection is specific to non-redundant levels: RAID1 tolerates the
// loss of a formatted member.
func TestPreRemoveMemberAllowsRedundantLevelRegardlessOfFormat(t *testing.T) {
	g := graph.New()
	array, members := raid0Array(t, g, "raid1", 3)
	array.Exists = true
	members[0].Format.Exists = true

	err := preRemoveMember(g, array, members[0])
	assert.NoError(t, err)
}
