package lvm

import "github.com/blockforge/storagecore/internal/units"

// CacheMode is the closed set of dm-cache operating modes lvm2 accepts.
type CacheMode string

const (
	CacheModeWriteThrough CacheMode = "writethrough"
	CacheModeWriteBack    CacheMode = "writeback"
)

// CacheRequest mirrors blivet's LVMCacheRequest: the parameters needed
// to carve a new cache out of a set of (normally faster) PVs. FastPVs
// holds device names rather than graph.Device so this package stays
// graph-independent; callers resolve them for size validation.
type CacheRequest struct {
	Size    units.Size
	FastPVs []string
	Mode    CacheMode
}

// PlanCache sizes a cache request into its data and metadata LVs,
// following LVMCache.__init__'s accounting: the caller-requested size
// is split so data+metadata together fit inside Size, and the split
// shrinks further still if it would force the VG's pmspare LV to grow
// to cover the new metadata LV.
func PlanCache(req CacheRequest, pmspareSize units.Size) (data, metadata units.Size) {
	metadata = CachePoolMetadataSize(req.Size)
	data = req.Size.Sub(metadata)
	if pmspareSize.Cmp(metadata) < 0 {
		data = data.Sub(metadata.Sub(pmspareSize))
	}
	return data, metadata
}

// ValidateCachePVs checks that the fast PVs offered for req sum to at
// least the requested cache size.
func ValidateCachePVs(req CacheRequest, pvSizes []units.Size) error {
	total := units.Zero
	for _, s := range pvSizes {
		total = total.Add(s)
	}
	if total.Cmp(req.Size) < 0 {
		return &ErrInsufficientCachePVs{Requested: req.Size, Available: total}
	}
	return nil
}

// Thin-pool/cache-pool chunk size bounds lvm2 enforces: a multiple of
// 64 KiB between 64 KiB and 1 GiB.
var (
	ThinPoolChunkMin  = units.NewSize(64 * 1024)
	ThinPoolChunkMax  = units.NewSize(1024 * 1024 * 1024)
	thinPoolChunkUnit = units.NewSize(64 * 1024)
)

// ValidateThinPoolChunkSize checks chunk against lvm2's accepted range
// and that it is a whole multiple of 64 KiB.
func ValidateThinPoolChunkSize(chunk units.Size) error {
	if chunk.Cmp(ThinPoolChunkMin) < 0 || chunk.Cmp(ThinPoolChunkMax) > 0 {
		return &ErrInvalidThinPoolChunkSize{Chunk: chunk}
	}
	rem, err := chunk.Mod(thinPoolChunkUnit)
	if err != nil || !rem.Equal(units.Zero) {
		return &ErrInvalidThinPoolChunkSize{Chunk: chunk}
	}
	return nil
}

// ValidatePVSum checks that pvSizes sum to at least lvSize, the check
// lvcreate performs when given an explicit PV list for a linear or
// raid LV rather than letting lvm2 allocate from the whole VG.
func ValidatePVSum(lvSize units.Size, pvSizes []units.Size) error {
	total := units.Zero
	for _, s := range pvSizes {
		total = total.Add(s)
	}
	if total.Cmp(lvSize) < 0 {
		return &ErrInsufficientPVSpace{Requested: lvSize, Available: total}
	}
	return nil
}
