package graph

import (
	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/units"
)

// Kind is the closed set of device variants spec component C models.
type Kind string

const (
	KindDisk              Kind = "disk"
	KindPartition         Kind = "partition"
	KindMDArray           Kind = "md-array"
	KindLVMPhysicalVolume Kind = "lvm-pv"
	KindLVMVolumeGroup    Kind = "lvm-vg"
	KindLVMLogicalVolume  Kind = "lvm-lv"
	KindBTRFSVolume       Kind = "btrfs-volume"
	KindBTRFSSubVolume    Kind = "btrfs-subvolume"
	KindLUKS              Kind = "luks"
	KindDM                Kind = "dm"
	KindFile              Kind = "file"
	KindDirectory         Kind = "directory"
	KindNoDevice          Kind = "no-device"
)

// SegmentType is the closed set of LVM logical volume segment types.
type SegmentType string

const (
	SegmentLinear     SegmentType = "linear"
	SegmentRAID0      SegmentType = "raid0"
	SegmentRAID1      SegmentType = "raid1"
	SegmentRAID4      SegmentType = "raid4"
	SegmentRAID5      SegmentType = "raid5"
	SegmentRAID6      SegmentType = "raid6"
	SegmentRAID10     SegmentType = "raid10"
	SegmentMirror     SegmentType = "mirror"
	SegmentThinPool   SegmentType = "thin-pool"
	SegmentThin       SegmentType = "thin"
	SegmentCache      SegmentType = "cache"
	SegmentCachePool  SegmentType = "cache-pool"
	SegmentVDOPool    SegmentType = "vdo-pool"
	SegmentVDO        SegmentType = "vdo"
	SegmentWritecache SegmentType = "writecache"
)

// PartitionType mirrors parted's primary/logical/extended type bits.
type PartitionType string

const (
	PartitionPrimary  PartitionType = "primary"
	PartitionLogical  PartitionType = "logical"
	PartitionExtended PartitionType = "extended"
)

// DMType distinguishes the two DM mapping kinds spec component C names.
type DMType string

const (
	DMLinear DMType = "linear"
	DMCrypt  DMType = "crypt"
)

// PartitionAttrs holds Partition-specific fields.
type PartitionAttrs struct {
	Type     PartitionType
	Bootable bool
	Grow     bool
	MaxSize  units.Size
}

// MDArrayAttrs holds MDArray-specific fields.
type MDArrayAttrs struct {
	Level       string // raid.Level.Name(), kept as a string to avoid an import cycle
	MemberCount int
	SpareCount  int
	ChunkSize   units.Size
	MetadataVer string
}

// LVMVolumeGroupAttrs holds LVMVolumeGroup-specific fields.
type LVMVolumeGroupAttrs struct {
	ExtentSize      units.Size
	ReservedPercent float64
	ReservedSpace   units.Size
}

// LVMLogicalVolumeAttrs holds LVMLogicalVolume-specific fields.
type LVMLogicalVolumeAttrs struct {
	Segment     SegmentType
	CacheOf     string // name of the cache-pool LV attached, if any
	OriginOf    string // name of the snapshot origin LV, if this is a snapshot
	InternalLVs []string

	// MetadataSize is the size of the metadata sub-LV a thin-pool or
	// cache-pool segment carries alongside its data.
	MetadataSize units.Size
	// ChunkSize is the thin-pool/cache-pool chunk size lvm2 was asked
	// to use.
	ChunkSize units.Size
	// CacheMode is the dm-cache mode a cache segment runs in
	// ("writethrough"/"writeback"); empty for non-cache segments.
	CacheMode string
	// PVs records the explicit physical volumes a linear/raid/cache
	// segment was pinned to, when the caller supplied one rather than
	// letting lvm2 allocate from the whole volume group.
	PVs []string
}

// BTRFSVolumeAttrs holds BTRFSVolume-specific fields.
type BTRFSVolumeAttrs struct {
	DataLevel     string
	MetadataLevel string
	// Subvolumes is the unique-by-name registry of subvolumes this
	// volume owns, maintained by internal/container/btrfs rather than
	// derived from graph edges so a subvolume can be named before its
	// Device is materialized.
	Subvolumes []string
}

// BTRFSSubVolumeAttrs holds BTRFSSubVolume-specific fields.
type BTRFSSubVolumeAttrs struct {
	SnapshotSource string
}

// LUKSAttrs holds LUKSDevice-specific fields.
type LUKSAttrs struct {
	Cipher string
}

// DMAttrs holds DMDevice-specific fields.
type DMAttrs struct {
	Type DMType
}

// Device is the common envelope every device kind shares (data model
// section 3): stable identity, name, ordered unique parent list, child
// set, tags, existence/status flags, optional sysfs path, size,
// optional UUID, and exactly one Format.
type Device struct {
	ID   int64
	Name string
	Kind Kind

	parents  []string // ordered, unique device names
	children map[string]bool

	Tags map[string]bool

	Exists bool
	Active bool

	SysfsPath string
	Size      units.Size
	UUID      string

	Format         *format.Format
	originalFormat *format.Format

	// Exactly one of these is populated, matching Kind.
	Partition *PartitionAttrs
	MDArray   *MDArrayAttrs
	VG        *LVMVolumeGroupAttrs
	LV        *LVMLogicalVolumeAttrs
	BTRFSVol  *BTRFSVolumeAttrs
	BTRFSSub  *BTRFSSubVolumeAttrs
	LUKS      *LUKSAttrs
	DM        *DMAttrs
}

// NewDevice constructs a Device with an empty parent list, empty child
// set, and a KindNone format.
func NewDevice(id int64, name string, kind Kind) *Device {
	return &Device{
		ID:       id,
		Name:     name,
		Kind:     kind,
		children: map[string]bool{},
		Tags:     map[string]bool{},
		Format:   format.New(format.KindNone),
	}
}

// Parents returns the device's ordered parent-name list. The slice is a
// defensive copy; callers must go through the Graph to mutate it.
func (d *Device) Parents() []string {
	out := make([]string, len(d.parents))
	copy(out, d.parents)
	return out
}

// Children returns the device's child-name set as a slice, unordered.
func (d *Device) Children() []string {
	out := make([]string, 0, len(d.children))
	for c := range d.children {
		out = append(out, c)
	}
	return out
}

// IsLeaf reports whether the device has no children.
func (d *Device) IsLeaf() bool { return len(d.children) == 0 }

// SnapshotOriginalFormat records the current Format so it can later be
// restored by RevertFormat, per the data model's original_format rule
// for existing devices.
func (d *Device) SnapshotOriginalFormat() {
	d.originalFormat = d.Format.Clone()
}

// RevertFormat restores the most recent SnapshotOriginalFormat, if any.
func (d *Device) RevertFormat() {
	if d.originalFormat == nil {
		return
	}
	d.Format = d.originalFormat.Clone()
}

func (d *Device) minMembers() int {
	switch d.Kind {
	case KindLUKS:
		return 1
	case KindLVMVolumeGroup:
		return 1
	case KindBTRFSVolume:
		return 1
	default:
		return 0
	}
}
