// Package prober implements the discovery-to-core boundary (spec
// section 6): a Prober feeds Descriptors of devices and formats it has
// found on the system, and Ingest materializes or updates the
// corresponding Device in the graph.
package prober

import (
	"fmt"

	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/units"
)

// RecordKind is the closed set of descriptor kinds a Prober emits.
type RecordKind string

const (
	RecordDisk        RecordKind = "disk"
	RecordPartition   RecordKind = "partition"
	RecordMDMember    RecordKind = "md-member"
	RecordMDArray     RecordKind = "md-array"
	RecordLVMPV       RecordKind = "lvm-pv"
	RecordLVMVG       RecordKind = "lvm-vg"
	RecordLVMLV       RecordKind = "lvm-lv"
	RecordBTRFSMember RecordKind = "btrfs-member"
	RecordLUKS        RecordKind = "luks"
	RecordDM          RecordKind = "dm"
	RecordFormat      RecordKind = "format"
)

// Descriptor is one discovered record. Fields not meaningful for a
// given Kind are left zero; Fields carries kind-specific extras the
// way the teacher's report structs carry LVM-attribute strings that
// vary by segment type.
type Descriptor struct {
	Kind      RecordKind
	Name      string
	Path      string
	SysfsPath string
	UUID      string
	Size      units.Size
	Fields    map[string]string
}

// Prober is implemented by discovery backends (udev/sysfs walkers,
// `lvm reportformat=json` parsers, `mdadm --detail --scan` parsers,
// ...). Ingest is the only entry point the core exposes to them.
type Prober interface {
	Probe() ([]Descriptor, error)
}

// Ingest materializes or updates devices in g for every descriptor
// probe produces. Each Resolve, Add and SetFormat call takes g's
// monitor on its own; the pass as a whole does not hold it, so a
// concurrent caller-driven mutation can interleave between records.
func Ingest(g *graph.Graph, p Prober) error {
	records, err := p.Probe()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := ingestOne(g, rec); err != nil {
			return &ErrProbeInconsistent{Record: rec.Name, Cause: err}
		}
	}
	return nil
}

func ingestOne(g *graph.Graph, rec Descriptor) error {
	kind, creates := kindForRecord(rec.Kind)
	if !creates {
		// Attach-only records (pv/member/format) must resolve an
		// already-materialized device; they never create one.
		existing, err := g.Resolve(rec.Name)
		if err != nil {
			return err
		}
		return applyDescriptor(g, existing, rec)
	}

	existing, err := g.Resolve(rec.Name)
	if err != nil {
		d := graph.NewDevice(0, rec.Name, kind)
		if err := applyDescriptor(g, d, rec); err != nil {
			return err
		}
		return g.Add(d)
	}
	return applyDescriptor(g, existing, rec)
}

func applyDescriptor(g *graph.Graph, d *graph.Device, rec Descriptor) error {
	d.SysfsPath = rec.SysfsPath
	d.Size = rec.Size
	d.Exists = true
	if rec.UUID != "" {
		d.UUID = rec.UUID
	}
	if rec.Kind == RecordFormat {
		if err := applyFormatFields(g, d, rec); err != nil {
			return err
		}
	}
	if rec.Kind == RecordLVMLV {
		return applyLVAttr(d, rec)
	}
	return nil
}

// applyLVAttr decodes the optional lv_attr field an `lvs`-backed
// Prober attaches to logical-volume records, setting Active from the
// report rather than assuming every probed LV is live, and rejecting
// the ingest outright if the volume reports a known-bad health state.
func applyLVAttr(d *graph.Device, rec Descriptor) error {
	raw, ok := rec.Fields["lv_attr"]
	if !ok {
		return nil
	}
	attr, err := parseLVAttr(raw)
	if err != nil {
		return err
	}
	if err := attr.healthError(); err != nil {
		return fmt.Errorf("lv %s: %w", rec.Name, err)
	}
	d.Active = attr.active()
	return nil
}

// applyFormatFields builds the Format record a probed format descriptor
// describes and commits it through SetFormat, so a rediscovered format
// runs the same immutability/size-bounds/_netdev pre-checks and fires
// the same format_added/format_removed callbacks a freshly-assigned
// one does, rather than splicing fields into the live Format in place.
func applyFormatFields(g *graph.Graph, d *graph.Device, rec Descriptor) error {
	f := d.Format.Clone()
	if f == nil {
		f = format.New(format.KindNone)
	}
	if kind, ok := rec.Fields["format_kind"]; ok {
		f.Kind = format.Kind(kind)
	}
	f.Exists = true
	if rec.UUID != "" {
		f.UUID = rec.UUID
	}
	if mountPoint, ok := rec.Fields["mountpoint"]; ok {
		f.MountPoint = mountPoint
	}
	if sectorSize, ok := rec.Fields["sector_size"]; ok {
		f.Attrs["sector_size"] = sectorSize
	}
	if label, ok := rec.Fields["label"]; ok {
		f.Label = label
	}
	return g.SetFormat(d, f)
}

func kindForRecord(k RecordKind) (graph.Kind, bool) {
	switch k {
	case RecordDisk:
		return graph.KindDisk, true
	case RecordPartition:
		return graph.KindPartition, true
	case RecordMDArray:
		return graph.KindMDArray, true
	case RecordLVMVG:
		return graph.KindLVMVolumeGroup, true
	case RecordLVMLV:
		return graph.KindLVMLogicalVolume, true
	case RecordLUKS:
		return graph.KindLUKS, true
	case RecordDM:
		return graph.KindDM, true
	default:
		return "", false
	}
}
