// Package btrfs implements BTRFS volume/subvolume container semantics
// (spec component E, BTRFS Volume): member format checks and the
// subvolume-ancestor invariant the graph's kind rules can't express on
// their own (data-model invariant 9).
package btrfs

import (
	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/raid"
	"github.com/blockforge/storagecore/internal/units"
)

// MinMemberSize is the smallest device btrfs will accept as a volume
// member (blivet's devicelibs.btrfs.MIN_MEMBER_SIZE).
var MinMemberSize = units.NewSize(256 * 1024 * 1024)

// RegisterHooks wires BTRFS-specific pre-add validation into g: a
// member joining a volume must carry the btrfs-member format and must
// meet MinMemberSize. The hook does not look at replication levels;
// ValidateLevel checks those separately.
func RegisterHooks() {
	graph.RegisterPreAddParentHook(preAddMember)
}

func preAddMember(g *graph.Graph, child, parent *graph.Device) error {
	if child.Kind != graph.KindBTRFSVolume {
		return nil
	}
	if parent.Format == nil || parent.Format.Kind != format.KindBTRFSMember {
		return ErrNotBTRFSMember
	}
	if parent.Size.Cmp(MinMemberSize) < 0 {
		return ErrMemberTooSmall
	}
	return nil
}

// AddSubvolume appends name to vol's subvolume registry, rejecting a
// duplicate the way a filesystem rejects a second subvolume with the
// same path.
func AddSubvolume(vol *graph.Device, name string) error {
	for _, s := range vol.BTRFSVol.Subvolumes {
		if s == name {
			return ErrSubvolumeExists
		}
	}
	vol.BTRFSVol.Subvolumes = append(vol.BTRFSVol.Subvolumes, name)
	return nil
}

// RemoveSubvolume removes name from vol's subvolume registry, or
// reports ErrSubvolumeNotFound if it was never added.
func RemoveSubvolume(vol *graph.Device, name string) error {
	for i, s := range vol.BTRFSVol.Subvolumes {
		if s == name {
			vol.BTRFSVol.Subvolumes = append(vol.BTRFSVol.Subvolumes[:i], vol.BTRFSVol.Subvolumes[i+1:]...)
			return nil
		}
	}
	return ErrSubvolumeNotFound
}

// SupportedLevels is the set of replication profiles BTRFS accepts
// for both its data and metadata block groups.
var SupportedLevels = []string{"single", "dup", "raid0", "raid1", "raid5", "raid6", "raid10"}

// ValidateLevel resolves name through the raid registry and rejects
// profiles BTRFS itself does not implement (e.g. raid4, linear).
func ValidateLevel(name string) error {
	lvl, err := raid.Lookup(name)
	if err != nil {
		return err
	}
	for _, s := range SupportedLevels {
		if lvl.Name() == s {
			return nil
		}
	}
	return ErrUnsupportedLevel
}

// FirstVolumeAncestor walks up from a subvolume through its subvolume
// ancestors until it reaches the owning BTRFSVolume, enforcing
// data-model invariant 9. It returns ErrNoVolumeAncestor if none is
// found; preAddMember does not check subvolume parents, so a subvolume
// without a volume above it reaches this error.
func FirstVolumeAncestor(g *graph.Graph, subvol *graph.Device) (*graph.Device, error) {
	current := subvol
	for {
		parents := current.Parents()
		if len(parents) == 0 {
			return nil, ErrNoVolumeAncestor
		}
		parent, ok := g.Get(parents[0])
		if !ok {
			return nil, ErrNoVolumeAncestor
		}
		if parent.Kind == graph.KindBTRFSVolume {
			return parent, nil
		}
		if parent.Kind != graph.KindBTRFSSubVolume {
			return nil, ErrNoVolumeAncestor
		}
		current = parent
	}
}
