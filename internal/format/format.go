// Package format implements the Format layer (spec component D): the
// per-device record describing what is written to a device's blocks,
// independent of how the device itself is composed.
package format

import (
	"strings"

	"github.com/blockforge/storagecore/internal/units"
)

// Kind is the closed set of format variants a Device may carry.
type Kind string

const (
	KindNone              Kind = "none"
	KindPartitionTable    Kind = "partition-table"
	KindLVMPV             Kind = "lvm-pv"
	KindLVMMemberMetadata Kind = "lvm-member-metadata"
	KindMDMember          Kind = "md-member"
	KindBTRFSMember       Kind = "btrfs-member"
	KindLUKS              Kind = "luks"
	KindExt2              Kind = "ext2"
	KindExt3              Kind = "ext3"
	KindExt4              Kind = "ext4"
	KindXFS               Kind = "xfs"
	KindSwap              Kind = "swap"
	KindBIOSBoot           Kind = "biosboot"
	KindPrepBoot           Kind = "prepboot"
	KindEFI                Kind = "efi"
	KindNTFS               Kind = "ntfs"
	KindVFAT               Kind = "vfat"
)

// immutableKinds cannot be replaced once assigned to an existing device;
// these are formats whose on-disk metadata other aggregates depend on.
var immutableKinds = map[Kind]bool{
	KindLVMPV:             true,
	KindLVMMemberMetadata: true,
	KindMDMember:          true,
	KindBTRFSMember:       true,
}

// Format is the kind-tagged per-device record described in spec
// component D. Kind-specific fields that do not apply to every kind
// (partition type flags, LUKS cipher, filesystem UUID generation
// policy, ...) live in Attrs, keyed by a kind-scoped field name; this
// mirrors the loosely-typed extra-attribute maps the teacher's own
// report structs use for tool output that varies by LV segment type.
type Format struct {
	Kind Kind

	Exists bool
	UUID   string
	Label  string

	MountPoint   string
	MountOptions []string
	Resizable    bool

	MinSize units.Size
	MaxSize units.Size

	Attrs map[string]string
}

// New returns a zero-value Format of the given kind with an empty Attrs map.
func New(kind Kind) *Format {
	return &Format{Kind: kind, Attrs: map[string]string{}}
}

// Immutable reports whether this format cannot be replaced on an
// existing device without first removing the aggregate that depends
// on it (invariant 4 of the data model).
func (f *Format) Immutable() bool {
	if f == nil {
		return false
	}
	return immutableKinds[f.Kind]
}

// WithinSizeBounds reports whether size respects [MinSize, MaxSize],
// per data-model invariant 6. A zero MaxSize means "unbounded".
func (f *Format) WithinSizeBounds(size units.Size) bool {
	if f == nil {
		return true
	}
	if size.Cmp(f.MinSize) < 0 {
		return false
	}
	if f.MaxSize.Cmp(units.Zero) > 0 && size.Cmp(f.MaxSize) > 0 {
		return false
	}
	return true
}

// MountOptionsString returns the comma-joined mount options string, the
// on-disk /etc/fstab representation the Runner and probers exchange.
func (f *Format) MountOptionsString() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.MountOptions, ",")
}

// SetMountOptionsString replaces MountOptions from a comma-joined string.
func (f *Format) SetMountOptionsString(s string) {
	if s == "" {
		f.MountOptions = nil
		return
	}
	f.MountOptions = strings.Split(s, ",")
}

// Clone returns a deep-enough copy suitable for an original_format
// snapshot: mutating the clone never affects f's slices or map.
func (f *Format) Clone() *Format {
	if f == nil {
		return nil
	}
	c := *f
	c.MountOptions = append([]string(nil), f.MountOptions...)
	c.Attrs = make(map[string]string, len(f.Attrs))
	for k, v := range f.Attrs {
		c.Attrs[k] = v
	}
	return &c
}
