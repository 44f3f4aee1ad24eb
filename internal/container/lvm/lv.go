package lvm

import "github.com/blockforge/storagecore/internal/units"

// Segment is the closed set of LVM logical volume segment types the
// spec names, mirrored here (rather than imported from internal/graph)
// so this package's pure functions have no dependency on the graph.
type Segment string

const (
	SegmentLinear     Segment = "linear"
	SegmentRAID       Segment = "raid" // raid0/1/4/5/6/10, level kept in LogicalVolume.RAIDLevel
	SegmentMirror     Segment = "mirror"
	SegmentThinPool   Segment = "thin-pool"
	SegmentThin       Segment = "thin"
	SegmentCache      Segment = "cache"
	SegmentCachePool  Segment = "cache-pool"
	SegmentVDOPool    Segment = "vdo-pool"
	SegmentVDO        Segment = "vdo"
	SegmentWritecache Segment = "writecache"
	SegmentSnapshot   Segment = "snapshot"
)

// thinMetadataPercent and its floor/ceiling approximate lvm2's own
// lvcreate/lvconvert heuristic for sizing a thin pool's metadata LV;
// the exact formula lives in libblockdev's C implementation
// (blockdev.lvm.get_thpool_meta_size), which is not part of this
// retrieval pack, so this is a documented approximation rather than a
// byte-for-byte port.
const thinMetadataPercent = 0.2

var thinMetadataFloor = units.NewSize(2 * 1024 * 1024)
var thinMetadataCeiling = units.NewSize(16 * 1024 * 1024 * 1024)

// ThinPoolMetadataSize estimates the metadata LV size a thin pool of
// poolSize needs, clamped to lvm2's [2 MiB, 16 GiB] metadata range.
func ThinPoolMetadataSize(poolSize units.Size) units.Size {
	scaled := units.NewSizeFromBig(scaleByPercent(poolSize.BigBytes(), thinMetadataPercent))
	if scaled.Cmp(thinMetadataFloor) < 0 {
		return thinMetadataFloor
	}
	if scaled.Cmp(thinMetadataCeiling) > 0 {
		return thinMetadataCeiling
	}
	return scaled
}

// cacheMetadataPercent approximates blockdev.lvm.cache_get_default_md_size
// the same way: lvm2 defaults a cache pool's metadata LV to roughly
// 0.1% of the cache data size, floored and ceilinged identically to
// thin pool metadata.
const cacheMetadataPercent = 0.1

// CachePoolMetadataSize estimates the metadata LV size a cache pool of
// cacheSize needs.
func CachePoolMetadataSize(cacheSize units.Size) units.Size {
	scaled := units.NewSizeFromBig(scaleByPercent(cacheSize.BigBytes(), cacheMetadataPercent))
	if scaled.Cmp(thinMetadataFloor) < 0 {
		return thinMetadataFloor
	}
	if scaled.Cmp(thinMetadataCeiling) > 0 {
		return thinMetadataCeiling
	}
	return scaled
}

// VDOSlabSize is the slab size vdo-pool LVs are created with by
// default in lvm2's vdo profile.
var VDOSlabSize = units.NewSize(128 * 1024 * 1024)

// VGSpaceUsed is blivet's LVMLogicalVolumeDevice.vg_space_used: the
// amount of VG space this LV (plus its metadata/log overhead) ties
// up, independent of its reported data size. For the common
// non-RAID, non-pool case this is simply the LV's own size.
func VGSpaceUsed(lvSize, metadataSize, logSize units.Size) units.Size {
	return lvSize.Add(metadataSize).Add(logSize)
}
