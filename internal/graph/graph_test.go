package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disk(name string) *Device { return NewDevice(0, name, KindDisk) }

func TestAllReturnsEveryRegisteredDevice(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(disk("sda")))
	require.NoError(t, g.Add(disk("sdb")))

	all := g.All()
	assert.Len(t, all, 2)
	names := map[string]bool{}
	for _, d := range all {
		names[d.Name] = true
	}
	assert.True(t, names["sda"])
	assert.True(t, names["sdb"])
}

func TestAddAndResolve(t *testing.T) {
	g := New()
	d := disk("sda")
	require.NoError(t, g.Add(d))

	got, err := g.Resolve("sda")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = g.Resolve("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddDuplicateNameRejected(t *testing.T) {
	g := New()
	require.NoError(t, g.Add(disk("sda")))
	err := g.Add(disk("sda"))
	assert.ErrorIs(t, err, ErrNameConflict)
}

func TestAddParentChildEdge(t *testing.T) {
	g := New()
	d := disk("sda")
	p := NewDevice(0, "sda1", KindPartition)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Add(p))

	require.NoError(t, g.AddParent(p, d))
	assert.Equal(t, []string{"sda"}, p.Parents())
	assert.False(t, d.IsLeaf())
}

func TestAddParentWrongKindRejected(t *testing.T) {
	g := New()
	lv := NewDevice(0, "lv0", KindLVMLogicalVolume)
	d := disk("sda")
	require.NoError(t, g.Add(lv))
	require.NoError(t, g.Add(d))

	err := g.AddParent(lv, d)
	assert.ErrorIs(t, err, ErrWrongParentKind)
}

func TestDuplicateEdgeRejected(t *testing.T) {
	g := New()
	d := disk("sda")
	p := NewDevice(0, "sda1", KindPartition)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Add(p))
	require.NoError(t, g.AddParent(p, d))

	err := g.AddParent(p, d)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
}

func TestCycleRejected(t *testing.T) {
	g := New()
	a := NewDevice(0, "a", KindDM)
	b := NewDevice(0, "b", KindDM)
	require.NoError(t, g.Add(a))
	require.NoError(t, g.Add(b))
	require.NoError(t, g.AddParent(b, a))

	err := g.AddParent(a, b)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestAncestorsAndDescendants(t *testing.T) {
	g := New()
	d := disk("sda")
	p1 := NewDevice(0, "sda1", KindPartition)
	p2 := NewDevice(0, "sda2", KindPartition)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Add(p1))
	require.NoError(t, g.Add(p2))
	require.NoError(t, g.AddParent(p1, d))
	require.NoError(t, g.AddParent(p2, d))

	anc := g.Ancestors(p1)
	names := map[string]bool{}
	for _, a := range anc {
		names[a.Name] = true
	}
	assert.True(t, names["sda1"])
	assert.True(t, names["sda"])
	assert.False(t, names["sda2"])

	desc := g.Descendants(d)
	names = map[string]bool{}
	for _, x := range desc {
		names[x.Name] = true
	}
	assert.True(t, names["sda"])
	assert.True(t, names["sda1"])
	assert.True(t, names["sda2"])
}

func TestDependsOn(t *testing.T) {
	g := New()
	d := disk("sda")
	p := NewDevice(0, "sda1", KindPartition)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Add(p))
	require.NoError(t, g.AddParent(p, d))

	assert.True(t, g.DependsOn(p, d))
	assert.False(t, g.DependsOn(d, p))
}

func TestRemoveParent(t *testing.T) {
	g := New()
	d := disk("sda")
	p := NewDevice(0, "sda1", KindPartition)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Add(p))
	require.NoError(t, g.AddParent(p, d))

	require.NoError(t, g.RemoveParent(p, d))
	assert.Empty(t, p.Parents())
	assert.True(t, d.IsLeaf())
}

func TestHideUnhide(t *testing.T) {
	g := New()
	d := disk("sda")
	require.NoError(t, g.Add(d))
	require.NoError(t, g.Hide(d))

	_, err := g.Resolve("sda")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, g.Unhide(d))
	got, err := g.Resolve("sda")
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestLVMNameValidation(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.Add(NewDevice(0, "pvmove0", KindLVMLogicalVolume)), ErrInvalidName)
	assert.ErrorIs(t, g.Add(NewDevice(0, "data_tdata", KindLVMLogicalVolume)), ErrInvalidName)
	assert.NoError(t, g.Add(NewDevice(0, "root", KindLVMLogicalVolume)))
}

func TestInternalLVExemptFromReservedSubstrings(t *testing.T) {
	g := New()
	internal := NewDevice(0, "data_tdata", KindLVMLogicalVolume)
	internal.Tags["internal"] = true
	assert.NoError(t, g.Add(internal))
}

func TestFormatSnapshotRevert(t *testing.T) {
	d := disk("sda")
	d.Format.Label = "original"
	d.SnapshotOriginalFormat()
	d.Format.Label = "changed"
	d.RevertFormat()
	assert.Equal(t, "original", d.Format.Label)
}
