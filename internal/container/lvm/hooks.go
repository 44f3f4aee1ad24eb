package lvm

import (
	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
)

// RegisterHooks wires LVM-specific pre-add/pre-remove validation into
// g: a PV joining a volume group must carry the lvm-pv format and
// match the sector size of the VG's existing members (data-model
// invariant 8), and a VG cannot lose its last PV (ErrVGNeedsOnePV).
// The graph does not track extent allocation, so removing a PV that
// still holds extents for an LV is not rejected here.
func RegisterHooks() {
	graph.RegisterPreAddParentHook(preAddPV)
	graph.RegisterPreRemoveParentHook(preRemovePV)
}

func preAddPV(g *graph.Graph, child, parent *graph.Device) error {
	if child.Kind != graph.KindLVMVolumeGroup {
		return nil
	}
	if parent.Format == nil || parent.Format.Kind != format.KindLVMPV {
		return ErrNotPV
	}
	for _, existingName := range child.Parents() {
		existing, ok := g.Get(existingName)
		if !ok {
			continue
		}
		if existing.Format == nil || parent.Format == nil {
			continue
		}
		if sectorSize(existing) != sectorSize(parent) {
			return graph.ErrSectorSizeMismatch
		}
	}
	return nil
}

func preRemovePV(g *graph.Graph, child, parent *graph.Device) error {
	if child.Kind != graph.KindLVMVolumeGroup {
		return nil
	}
	if len(child.Parents()) <= 1 {
		return ErrVGNeedsOnePV
	}
	return nil
}

// sectorSize reads the device's sector size out of its format attrs,
// where probers record it; devices that never reported one compare
// equal to each other ("" == "") rather than failing spuriously.
func sectorSize(d *graph.Device) string {
	if d.Format == nil || d.Format.Attrs == nil {
		return ""
	}
	return d.Format.Attrs["sector_size"]
}
