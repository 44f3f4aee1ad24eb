package storagecore

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/blockforge/storagecore/internal/container/btrfs"
	"github.com/blockforge/storagecore/internal/container/lvm"
	"github.com/blockforge/storagecore/internal/container/md"
	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/plan"
	"github.com/blockforge/storagecore/internal/raid"
	"github.com/blockforge/storagecore/internal/runner"
	"github.com/blockforge/storagecore/internal/units"
)

// The factory methods below mirror blivet's devicefactory.py role: each
// adds a planned Device to the Graph and schedules the matching Action
// in one call, so callers never have to keep the two in sync by hand.
// The Device is visible in the Graph immediately (state Planned) even
// though its CreateDevice action has not run yet, exactly as blivet's
// DeviceTree holds not-yet-realized devices during a single transaction.

// CreateDisk registers an existing disk the Prober has not (yet) seen,
// useful for tests and declarative topology files that describe disks
// by name/size rather than discovering them.
func (t *Tree) CreateDisk(name string, size units.Size) (*graph.Device, error) {
	d := graph.NewDevice(0, name, graph.KindDisk)
	d.Size = size
	d.Exists = true
	d.Active = true
	if err := t.Graph.Add(d); err != nil {
		return nil, err
	}
	return d, nil
}

// CreatePartition plans a new partition on disk and schedules its
// CreateDevice action (parted mkpart).
func (t *Tree) CreatePartition(disk *graph.Device, name string, size units.Size, ptype graph.PartitionType) (*graph.Device, *plan.Action, error) {
	d := graph.NewDevice(0, name, graph.KindPartition)
	d.Size = size
	d.Partition = &graph.PartitionAttrs{Type: ptype}
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}
	if err := t.Graph.AddParent(d, disk); err != nil {
		return nil, nil, err
	}
	a := t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: []string{
			"parted", "-s", disk.Name, "mkpart", string(ptype), "1MiB",
			fmt.Sprintf("%dB", size.Bytes()),
		}}
	}, nil))
	return d, a, nil
}

// CreateMDArray plans a new MD array over members and schedules one
// CreateDevice action plus one AddMember action per member, matching
// the teacher's one-tool-invocation-per-concern style rather than a
// single combined mdadm invocation with every member inline.
func (t *Tree) CreateMDArray(name string, level raid.Level, members []*graph.Device, chunk units.Size, metadataVersion string) (*graph.Device, []*plan.Action, error) {
	if len(members) < level.MinMembers() {
		return nil, nil, &raid.ErrTooFewMembers{Level: level.Name(), Members: len(members), Minimum: level.MinMembers()}
	}
	d := graph.NewDevice(0, name, graph.KindMDArray)
	// Provisional UUID: mdadm assigns the real array UUID at create
	// time, but the Planner needs a stable identity for this Device the
	// moment it is scheduled, before the CreateDevice action has run.
	d.UUID = uuid.New().String()
	d.MDArray = &graph.MDArrayAttrs{
		Level:       level.Name(),
		MemberCount: len(members),
		ChunkSize:   chunk,
		MetadataVer: metadataVersion,
	}
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}

	memberSizes := make([]units.Size, len(members))
	for i, m := range members {
		memberSizes[i] = m.Size
	}
	sb := md.SuperblockFunc(metadataVersion)
	size, err := level.Size(memberSizes, chunk, sb)
	if err != nil {
		return nil, nil, err
	}
	d.Size = size

	var actions []*plan.Action
	actions = append(actions, t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		argv := []string{"mdadm", "--create", "/dev/md/" + name,
			"--level", level.Name(), "--raid-devices", fmt.Sprintf("%d", len(members)),
			"--metadata", metadataVersion}
		for _, m := range members {
			argv = append(argv, m.Name)
		}
		return runner.Descriptor{Argv: argv}
	}, func(g *graph.Graph, res runner.Result) error {
		// _post_create: this hook does not read the array UUID back from
		// mdadm, with any Runner; d keeps the provisional UUID set above.
		return nil
	})))

	for _, m := range members {
		if err := t.Graph.SetFormat(m, format.New(format.KindMDMember)); err != nil {
			return nil, actions, err
		}
		if err := t.Graph.AddParent(d, m); err != nil {
			return nil, actions, err
		}
		member := m
		actions = append(actions, t.Schedule(plan.NewAddMember(d, member, func(g *graph.Graph) runner.Descriptor {
			return runner.Descriptor{Argv: []string{"mdadm", "/dev/md/" + name, "--add", member.Name}}
		}, nil)))
	}
	return d, actions, nil
}

// CreateLVMPV plans converting an existing block device into a PV and
// schedules its CreateFormat action.
func (t *Tree) CreateLVMPV(device *graph.Device) (*plan.Action, error) {
	if err := t.Graph.SetFormat(device, format.New(format.KindLVMPV)); err != nil {
		return nil, err
	}
	a := t.Schedule(plan.NewCreateFormat(device, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: []string{"pvcreate", device.Name}}
	}, nil))
	return a, nil
}

// CreateVG plans a volume group over pvs and schedules its creation.
func (t *Tree) CreateVG(name string, pvs []*graph.Device, extentSize units.Size) (*graph.Device, *plan.Action, error) {
	d := graph.NewDevice(0, name, graph.KindLVMVolumeGroup)
	d.UUID = uuid.New().String()
	d.VG = &graph.LVMVolumeGroupAttrs{ExtentSize: extentSize}
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}
	for _, pv := range pvs {
		if err := t.Graph.AddParent(d, pv); err != nil {
			return nil, nil, err
		}
	}
	a := t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		argv := []string{"vgcreate", "-s", fmt.Sprintf("%dB", extentSize.Bytes()), name}
		for _, pv := range pvs {
			argv = append(argv, pv.Name)
		}
		return runner.Descriptor{Argv: argv}
	}, nil))
	return d, a, nil
}

// LVOptions customizes a CreateLV call for the segment types that need
// more than a bare vg/name/size: thin and vdo volumes carve space out
// of a pool parent rather than the VG directly, cache volumes need a
// sizing request against a set of fast PVs, and linear/raid volumes
// may be pinned to an explicit PV list instead of free VG allocation.
type LVOptions struct {
	// Parent is the thin-pool or vdo-pool LV a SegmentThin/SegmentVDO
	// volume is carved from. Required for those two segments, ignored
	// otherwise.
	Parent *graph.Device
	// PVs pins a SegmentLinear/RAID* volume's extents to specific PVs;
	// nil lets lvm2 allocate from anywhere in the VG.
	PVs []*graph.Device
	// Cache sizes a SegmentCache volume; required for that segment.
	Cache *lvm.CacheRequest
	// ChunkSize sets a SegmentThinPool/SegmentCachePool's chunk size;
	// zero uses lvm2's own default rather than running the validation
	// ValidateThinPoolChunkSize would otherwise apply to an explicit one.
	ChunkSize units.Size
	// MetadataSize overrides a SegmentThinPool/SegmentCachePool's
	// estimated metadata LV size; zero estimates it from Size.
	MetadataSize units.Size
}

// isRAIDSegment reports whether segment is one of the striped/mirrored
// LVM segment types that, like linear, draws its extents straight from
// the VG (as opposed to thin/vdo, which draw from a pool LV).
func isRAIDSegment(segment graph.SegmentType) bool {
	switch segment {
	case graph.SegmentRAID0, graph.SegmentRAID1, graph.SegmentRAID4,
		graph.SegmentRAID5, graph.SegmentRAID6, graph.SegmentRAID10, graph.SegmentMirror:
		return true
	default:
		return false
	}
}

func deviceSizes(devices []*graph.Device) []units.Size {
	sizes := make([]units.Size, len(devices))
	for i, d := range devices {
		sizes[i] = d.Size
	}
	return sizes
}

// CreateLV plans a logical volume in vg and schedules its creation,
// applying the segment-specific rules spec component E's LVM section
// names: a thin or vdo volume must name a matching pool parent, a
// cache volume must carry a sizing request whose fast PVs cover it, a
// thin-pool or cache-pool volume gets its metadata LV sized, and a
// pinned PV list for a linear/raid volume must cover its size.
func (t *Tree) CreateLV(vg *graph.Device, name string, size units.Size, segment graph.SegmentType, opts LVOptions) (*graph.Device, *plan.Action, error) {
	attrs := &graph.LVMLogicalVolumeAttrs{Segment: segment, ChunkSize: opts.ChunkSize}
	parent := vg

	switch segment {
	case graph.SegmentThin:
		if opts.Parent == nil || opts.Parent.LV == nil || opts.Parent.LV.Segment != graph.SegmentThinPool {
			return nil, nil, lvm.ErrThinLVRequiresThinPool
		}
		parent = opts.Parent
	case graph.SegmentVDO:
		if opts.Parent == nil || opts.Parent.LV == nil || opts.Parent.LV.Segment != graph.SegmentVDOPool {
			return nil, nil, lvm.ErrVDOLVRequiresVDOPool
		}
		parent = opts.Parent
	case graph.SegmentThinPool, graph.SegmentCachePool:
		metadataSize := opts.MetadataSize
		if metadataSize.Cmp(units.Zero) == 0 {
			metadataSize = lvm.ThinPoolMetadataSize(size)
		}
		attrs.MetadataSize = metadataSize
		if opts.ChunkSize.Cmp(units.Zero) > 0 {
			if err := lvm.ValidateThinPoolChunkSize(opts.ChunkSize); err != nil {
				return nil, nil, err
			}
		}
	case graph.SegmentCache:
		if opts.Cache == nil {
			return nil, nil, lvm.ErrCacheRequestRequired
		}
		pvSizes := make([]units.Size, 0, len(opts.Cache.FastPVs))
		for _, pvName := range opts.Cache.FastPVs {
			pv, err := t.Graph.Resolve(pvName)
			if err != nil {
				return nil, nil, err
			}
			pvSizes = append(pvSizes, pv.Size)
		}
		if err := lvm.ValidateCachePVs(*opts.Cache, pvSizes); err != nil {
			return nil, nil, err
		}
		_, metadataSize := lvm.PlanCache(*opts.Cache, units.Zero)
		attrs.MetadataSize = metadataSize
		attrs.CacheMode = string(opts.Cache.Mode)
		attrs.PVs = append([]string(nil), opts.Cache.FastPVs...)
	}

	if len(opts.PVs) > 0 && (segment == graph.SegmentLinear || isRAIDSegment(segment)) {
		if err := lvm.ValidatePVSum(size, deviceSizes(opts.PVs)); err != nil {
			return nil, nil, err
		}
		for _, pv := range opts.PVs {
			attrs.PVs = append(attrs.PVs, pv.Name)
		}
	}

	d := graph.NewDevice(0, name, graph.KindLVMLogicalVolume)
	d.Size = size
	d.UUID = uuid.New().String()
	d.LV = attrs
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}
	if err := t.Graph.AddParent(d, parent); err != nil {
		return nil, nil, err
	}
	if parent != vg {
		parent.LV.InternalLVs = append(parent.LV.InternalLVs, d.Name)
	}

	argv := []string{"lvcreate", "-n", name, "-L", fmt.Sprintf("%dB", size.Bytes())}
	switch segment {
	case graph.SegmentThinPool:
		argv = append(argv, "--thinpool", vg.Name)
	case graph.SegmentThin:
		argv = append(argv, "--thin", vg.Name+"/"+parent.Name)
	case graph.SegmentCache:
		argv = append(argv, "--type", "cache", "--cachemode", attrs.CacheMode, vg.Name)
	default:
		argv = append(argv, vg.Name)
	}
	for _, pv := range opts.PVs {
		argv = append(argv, pv.Name)
	}
	a := t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: argv}
	}, nil))
	return d, a, nil
}

// ConvertToThinPool folds two existing plain linear LVs, data and
// meta, into a single thin-pool device: data becomes the thin pool and
// meta becomes its metadata sub-LV, hidden from normal resolution the
// way lvconvert absorbs a metadata LV into the pool it backs (S3).
func (t *Tree) ConvertToThinPool(data, meta *graph.Device) (*plan.Action, error) {
	if data.LV == nil || meta.LV == nil || data.LV.Segment != graph.SegmentLinear || meta.LV.Segment != graph.SegmentLinear {
		return nil, lvm.ErrThinPoolConversionSegment
	}
	dataParents, metaParents := data.Parents(), meta.Parents()
	if len(dataParents) != 1 || len(metaParents) != 1 || dataParents[0] != metaParents[0] {
		return nil, lvm.ErrThinPoolConversionVG
	}

	if err := t.Graph.Hide(meta); err != nil {
		return nil, err
	}
	data.LV.Segment = graph.SegmentThinPool
	data.LV.MetadataSize = meta.Size
	data.LV.InternalLVs = append(data.LV.InternalLVs, meta.Name)

	a := t.Schedule(plan.NewConfigureDevice(data, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: []string{
			"lvconvert", "--type", "thin-pool", "--poolmetadata", meta.Name, dataParents[0] + "/" + data.Name,
		}}
	}, nil))
	return a, nil
}

// DestroyVDOPool tears down a vdo-pool LV and every vdo LV carved from
// it. lvm2 destroys a vdo LV automatically when its pool goes, the way
// LVMVDOLogicalVolumeMixin._destroy is a no-op relying on the pool's
// own removal, so only the pool gets a scheduled Runner action; its
// vdo children are flipped to torn-down state and hidden in-memory.
func (t *Tree) DestroyVDOPool(pool *graph.Device, argv []string) (*plan.Action, error) {
	for _, childName := range pool.LV.InternalLVs {
		child, err := t.Graph.Resolve(childName)
		if err != nil {
			continue
		}
		child.Exists = false
		child.Active = false
		if err := t.Graph.Hide(child); err != nil {
			return nil, err
		}
	}
	a := t.Schedule(plan.NewDestroyDevice(pool, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: argv}
	}))
	return a, nil
}

// CreateBTRFSVolume plans a BTRFS volume over members with the given
// data/metadata RAID profiles and schedules its creation.
func (t *Tree) CreateBTRFSVolume(name string, members []*graph.Device, dataLevel, metadataLevel string) (*graph.Device, *plan.Action, error) {
	if err := btrfs.ValidateLevel(dataLevel); err != nil {
		return nil, nil, err
	}
	if err := btrfs.ValidateLevel(metadataLevel); err != nil {
		return nil, nil, err
	}
	d := graph.NewDevice(0, name, graph.KindBTRFSVolume)
	d.UUID = uuid.New().String()
	d.BTRFSVol = &graph.BTRFSVolumeAttrs{DataLevel: dataLevel, MetadataLevel: metadataLevel}
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}
	for _, m := range members {
		if err := t.Graph.SetFormat(m, format.New(format.KindBTRFSMember)); err != nil {
			return nil, nil, err
		}
		if err := t.Graph.AddParent(d, m); err != nil {
			return nil, nil, err
		}
	}
	a := t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		argv := []string{"mkfs.btrfs", "-d", dataLevel, "-m", metadataLevel}
		for _, m := range members {
			argv = append(argv, m.Name)
		}
		return runner.Descriptor{Argv: argv}
	}, nil))
	return d, a, nil
}

// CreateBTRFSSubvolume plans a subvolume under parent (a BTRFSVolume or
// another subvolume) and registers it in its owning volume's
// unique-by-name subvolume list.
func (t *Tree) CreateBTRFSSubvolume(name string, parent *graph.Device, snapshotSource string) (*graph.Device, *plan.Action, error) {
	d := graph.NewDevice(0, name, graph.KindBTRFSSubVolume)
	d.BTRFSSub = &graph.BTRFSSubVolumeAttrs{SnapshotSource: snapshotSource}
	if err := t.Graph.Add(d); err != nil {
		return nil, nil, err
	}
	if err := t.Graph.AddParent(d, parent); err != nil {
		return nil, nil, err
	}
	vol, err := btrfs.FirstVolumeAncestor(t.Graph, d)
	if err != nil {
		return nil, nil, err
	}
	if err := btrfs.AddSubvolume(vol, name); err != nil {
		return nil, nil, err
	}
	argv := []string{"btrfs", "subvolume", "create", name}
	if snapshotSource != "" {
		argv = []string{"btrfs", "subvolume", "snapshot", snapshotSource, name}
	}
	a := t.Schedule(plan.NewCreateDevice(d, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: argv}
	}, nil))
	return d, a, nil
}

// DestroyBTRFSSubvolume schedules deleting sub and removes it from its
// owning volume's subvolume list, failing with ErrSubvolumeNotFound if
// it was never registered there.
func (t *Tree) DestroyBTRFSSubvolume(sub *graph.Device) (*plan.Action, error) {
	vol, err := btrfs.FirstVolumeAncestor(t.Graph, sub)
	if err != nil {
		return nil, err
	}
	if err := btrfs.RemoveSubvolume(vol, sub.Name); err != nil {
		return nil, err
	}
	a := t.Schedule(plan.NewDestroyDevice(sub, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: []string{"btrfs", "subvolume", "delete", sub.Name}}
	}))
	return a, nil
}

// DestroyDevice schedules tearing device down.
func (t *Tree) DestroyDevice(device *graph.Device, argv []string) *plan.Action {
	return t.Schedule(plan.NewDestroyDevice(device, func(g *graph.Graph) runner.Descriptor {
		return runner.Descriptor{Argv: argv}
	}))
}
