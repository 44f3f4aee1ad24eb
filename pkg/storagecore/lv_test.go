package storagecore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockforge/storagecore/internal/container/lvm"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/internal/units"
)

func vgWithPVs(t *testing.T, tree *Tree, pvSizes ...int64) (*graph.Device, []*graph.Device) {
	t.Helper()
	var pvs []*graph.Device
	for i, size := range pvSizes {
		d, err := tree.CreateDisk(name(i), units.NewSize(size))
		require.NoError(t, err)
		_, err = tree.CreateLVMPV(d)
		require.NoError(t, err)
		pvs = append(pvs, d)
	}
	vg, _, err := tree.CreateVG("vg0", pvs, units.NewSize(4*1024*1024))
	require.NoError(t, err)
	return vg, pvs
}

// TestCreateLVCacheSegmentSizesFromFastPVs exercises spec scenario S1:
// a cache LV's data/metadata split must fit within the fast PVs offered.
func TestCreateLVCacheSegmentSizesFromFastPVs(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	fast, err := tree.CreateDisk("nvme0", units.NewSize(10<<30))
	require.NoError(t, err)
	_, err = tree.CreateLVMPV(fast)
	require.NoError(t, err)

	cacheSize := units.NewSize(8 << 30)
	lv, action, err := tree.CreateLV(vg, "cachelv", cacheSize, graph.SegmentCache, LVOptions{
		Cache: &lvm.CacheRequest{Size: cacheSize, FastPVs: []string{"nvme0"}, Mode: lvm.CacheModeWriteThrough},
	})
	require.NoError(t, err)
	require.NotNil(t, action)
	require.Equal(t, graph.SegmentCache, lv.LV.Segment)
	require.Equal(t, "writethrough", lv.LV.CacheMode)
	require.True(t, lv.LV.MetadataSize.Cmp(units.Zero) > 0)
	require.Equal(t, []string{"nvme0"}, lv.LV.PVs)
}

func TestCreateLVCacheSegmentRejectsUndersizedFastPVs(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	fast, err := tree.CreateDisk("nvme1", units.NewSize(1<<30))
	require.NoError(t, err)
	_, err = tree.CreateLVMPV(fast)
	require.NoError(t, err)

	cacheSize := units.NewSize(8 << 30)
	_, _, err = tree.CreateLV(vg, "cachelv2", cacheSize, graph.SegmentCache, LVOptions{
		Cache: &lvm.CacheRequest{Size: cacheSize, FastPVs: []string{"nvme1"}, Mode: lvm.CacheModeWriteThrough},
	})
	require.Error(t, err)
	var target *lvm.ErrInsufficientCachePVs
	require.ErrorAs(t, err, &target)
}

func TestCreateLVCacheSegmentRequiresCacheRequest(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	_, _, err := tree.CreateLV(vg, "cachelv3", units.NewSize(1<<30), graph.SegmentCache, LVOptions{})
	require.ErrorIs(t, err, lvm.ErrCacheRequestRequired)
}

func TestCreateLVThinRequiresThinPoolParent(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	plain, _, err := tree.CreateLV(vg, "plainlv", units.NewSize(1<<30), graph.SegmentLinear, LVOptions{})
	require.NoError(t, err)

	_, _, err = tree.CreateLV(vg, "thinlv", units.NewSize(512<<20), graph.SegmentThin, LVOptions{Parent: plain})
	require.ErrorIs(t, err, lvm.ErrThinLVRequiresThinPool)
}

func TestCreateLVThinFromThinPoolParent(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	pool, _, err := tree.CreateLV(vg, "pool0", units.NewSize(10<<30), graph.SegmentThinPool, LVOptions{})
	require.NoError(t, err)
	require.True(t, pool.LV.MetadataSize.Cmp(units.Zero) > 0)

	thin, action, err := tree.CreateLV(vg, "thin0", units.NewSize(5<<30), graph.SegmentThin, LVOptions{Parent: pool})
	require.NoError(t, err)
	require.NotNil(t, action)
	require.Equal(t, []string{"thin0"}, pool.LV.InternalLVs)
	require.Equal(t, pool.Name, thin.Parents()[0])
}

func TestCreateLVVDORequiresVDOPoolParent(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	plain, _, err := tree.CreateLV(vg, "plainlv2", units.NewSize(1<<30), graph.SegmentLinear, LVOptions{})
	require.NoError(t, err)

	_, _, err = tree.CreateLV(vg, "vdolv", units.NewSize(1<<30), graph.SegmentVDO, LVOptions{Parent: plain})
	require.ErrorIs(t, err, lvm.ErrVDOLVRequiresVDOPool)
}

func TestCreateLVRejectsChunkSizeOutOfRange(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	_, _, err := tree.CreateLV(vg, "pool1", units.NewSize(10<<30), graph.SegmentThinPool, LVOptions{
		ChunkSize: units.NewSize(1024),
	})
	require.Error(t, err)
	var target *lvm.ErrInvalidThinPoolChunkSize
	require.ErrorAs(t, err, &target)
}

func TestCreateLVPinnedPVsMustCoverSize(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, pvs := vgWithPVs(t, tree, 20<<30)

	small, err := tree.CreateDisk("small0", units.NewSize(1<<30))
	require.NoError(t, err)
	_, err = tree.CreateLVMPV(small)
	require.NoError(t, err)

	_, _, err = tree.CreateLV(vg, "pinned0", units.NewSize(10<<30), graph.SegmentLinear, LVOptions{
		PVs: []*graph.Device{pvs[0], small},
	})
	require.NoError(t, err, "20GiB + 1GiB pinned PVs cover a 10GiB request")

	_, _, err = tree.CreateLV(vg, "pinned1", units.NewSize(10<<30), graph.SegmentLinear, LVOptions{
		PVs: []*graph.Device{small},
	})
	require.Error(t, err)
	var target *lvm.ErrInsufficientPVSpace
	require.ErrorAs(t, err, &target)
}

// TestConvertToThinPoolFoldsTwoLinearLVs exercises spec scenario S3: two
// existing linear LVs in the same VG become a thin pool plus its hidden
// metadata sub-LV.
func TestConvertToThinPoolFoldsTwoLinearLVs(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	data, _, err := tree.CreateLV(vg, "data0", units.NewSize(10<<30), graph.SegmentLinear, LVOptions{})
	require.NoError(t, err)
	meta, _, err := tree.CreateLV(vg, "meta0", units.NewSize(256<<20), graph.SegmentLinear, LVOptions{})
	require.NoError(t, err)

	action, err := tree.ConvertToThinPool(data, meta)
	require.NoError(t, err)
	require.NotNil(t, action)
	require.Equal(t, graph.SegmentThinPool, data.LV.Segment)
	require.Equal(t, meta.Size.Bytes(), data.LV.MetadataSize.Bytes())
	require.Contains(t, data.LV.InternalLVs, "meta0")

	_, ok := tree.Graph.Get("meta0")
	require.False(t, ok, "hidden metadata LV should no longer resolve by name")
}

func TestConvertToThinPoolRejectsNonLinearSegment(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	pool, _, err := tree.CreateLV(vg, "pool2", units.NewSize(10<<30), graph.SegmentThinPool, LVOptions{})
	require.NoError(t, err)
	meta, _, err := tree.CreateLV(vg, "meta1", units.NewSize(256<<20), graph.SegmentLinear, LVOptions{})
	require.NoError(t, err)

	_, err = tree.ConvertToThinPool(pool, meta)
	require.ErrorIs(t, err, lvm.ErrThinPoolConversionSegment)
}

func TestDestroyVDOPoolHidesChildrenAndDestroysPool(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)
	vg, _ := vgWithPVs(t, tree, 20<<30)

	pool, _, err := tree.CreateLV(vg, "vdopool0", units.NewSize(10<<30), graph.SegmentVDOPool, LVOptions{})
	require.NoError(t, err)
	vdo, _, err := tree.CreateLV(vg, "vdo0", units.NewSize(5<<30), graph.SegmentVDO, LVOptions{Parent: pool})
	require.NoError(t, err)
	vdo.Exists = true
	vdo.Active = true

	action, err := tree.DestroyVDOPool(pool, []string{"lvremove", "-f", "vg0/vdopool0"})
	require.NoError(t, err)
	require.NotNil(t, action)
	require.False(t, vdo.Exists)
	require.False(t, vdo.Active)

	_, ok := tree.Graph.Get("vdo0")
	require.False(t, ok, "hidden vdo LV should no longer resolve by name")
}

func TestCreateBTRFSSubvolumeRegistersOnOwningVolume(t *testing.T) {
	r := runner.NewFakeRunner()
	tree := New(r)

	disk, err := tree.CreateDisk("sdz", units.NewSize(2<<30))
	require.NoError(t, err)

	vol, _, err := tree.CreateBTRFSVolume("vol0", []*graph.Device{disk}, "single", "single")
	require.NoError(t, err)

	sub, action, err := tree.CreateBTRFSSubvolume("home", vol, "")
	require.NoError(t, err)
	require.NotNil(t, action)
	require.Contains(t, vol.BTRFSVol.Subvolumes, "home")

	destroyAction, err := tree.DestroyBTRFSSubvolume(sub)
	require.NoError(t, err)
	require.NotNil(t, destroyAction)
	require.NotContains(t, vol.BTRFSVol.Subvolumes, "home")
}
