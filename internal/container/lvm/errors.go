package lvm

import (
	"errors"
	"fmt"

	"github.com/blockforge/storagecore/internal/units"
)

var (
	// ErrNotPV is the DeviceError-class failure when a device without
	// the lvm-pv format is added as a volume group parent.
	ErrNotPV = errors.New("lvm: parent is not formatted as a physical volume")
	// ErrVGNeedsOnePV rejects removing a volume group's last PV;
	// destroying the VG is a distinct operation from reducing it.
	ErrVGNeedsOnePV = errors.New("lvm: volume group requires at least one physical volume")
	// ErrThinLVRequiresThinPool is raised when a thin logical volume is
	// constructed without a thin-pool parent, mirroring blivet's
	// LVMThinLogicalVolumeMixin._check_parents.
	ErrThinLVRequiresThinPool = errors.New("lvm: a thin logical volume requires a thin-pool parent")
	// ErrVDOLVRequiresVDOPool is the vdo-LV sibling of
	// ErrThinLVRequiresThinPool.
	ErrVDOLVRequiresVDOPool = errors.New("lvm: a vdo logical volume requires a vdo-pool parent")
	// ErrCacheRequestRequired is raised when a cache-segment LV is
	// requested without the sizing/PV parameters a cache needs.
	ErrCacheRequestRequired = errors.New("lvm: a cache logical volume requires a cache request")
	// ErrThinPoolConversionSegment rejects converting an LV that is not
	// a plain linear volume into a thin pool's data or metadata LV.
	ErrThinPoolConversionSegment = errors.New("lvm: thin-pool conversion requires two linear LVs")
	// ErrThinPoolConversionVG rejects converting two LVs from different
	// volume groups into one thin pool.
	ErrThinPoolConversionVG = errors.New("lvm: thin-pool conversion requires both LVs in the same volume group")
)

// ErrInsufficientCachePVs reports that the fast PVs offered for a
// cache request do not sum to the requested cache size.
type ErrInsufficientCachePVs struct {
	Requested units.Size
	Available units.Size
}

func (e *ErrInsufficientCachePVs) Error() string {
	return fmt.Sprintf("lvm: cache PVs offer %s, requested cache needs %s", e.Available.BigBytes(), e.Requested.BigBytes())
}

// ErrInsufficientPVSpace reports that the PVs pinned for a linear/raid
// LV do not sum to its requested size.
type ErrInsufficientPVSpace struct {
	Requested units.Size
	Available units.Size
}

func (e *ErrInsufficientPVSpace) Error() string {
	return fmt.Sprintf("lvm: pinned PVs offer %s, requested LV needs %s", e.Available.BigBytes(), e.Requested.BigBytes())
}

// ErrInvalidThinPoolChunkSize reports a thin-pool/cache-pool chunk
// size outside lvm2's accepted [64 KiB, 1 GiB] range, or not a
// multiple of 64 KiB.
type ErrInvalidThinPoolChunkSize struct {
	Chunk units.Size
}

func (e *ErrInvalidThinPoolChunkSize) Error() string {
	return fmt.Sprintf("lvm: chunk size %s bytes is outside lvm2's accepted pool chunk range", e.Chunk.BigBytes())
}
