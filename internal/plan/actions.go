package plan

import (
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/runner"
)

// The constructors below are the only way to build an Executor; each
// pins a fixed Kind and renders its own argv from the device/format
// state at schedule time or, via the DescriptorFunc closure, freshly
// at Execute time so that a device created earlier in the same pass
// (e.g. a partition's backing disk) is already reflected.

// NewCreateDevice schedules bringing a planned Device into existence
// (parted mkpart, mdadm --create, lvcreate, btrfs device add, ...).
func NewCreateDevice(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:   KindCreateDevice,
		device: device,
		validate: func(g *graph.Graph) error {
			return ValidateTransition(CurrentState(device), StateCreated)
		},
		describe: describe,
		postHook: postHook,
		revert: func(g *graph.Graph) error {
			device.Exists = false
			device.Active = false
			return nil
		},
	}
}

// NewCreateFormat schedules applying a Device's planned Format (mkfs,
// cryptsetup luksFormat, mkswap, ...).
func NewCreateFormat(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindCreateFormat,
		device:   device,
		describe: describe,
		postHook: postHook,
		revert: func(g *graph.Graph) error {
			device.Format = nil
			return nil
		},
	}
}

// NewAddMember schedules attaching a member device to a container
// (mdadm --add, vgextend, btrfs device add to an existing volume).
func NewAddMember(container, member *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:      KindAddMember,
		device:    member,
		container: container,
		describe:  describe,
		postHook:  postHook,
	}
}

// NewConfigureDevice schedules an in-place device property change that
// does not alter size (relabel, mdadm --grow --bitmap, lvrename, ...).
func NewConfigureDevice(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindConfigureDevice,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewConfigureFormat schedules a Format property change that does not
// alter size (relabel, mount option change, ...).
func NewConfigureFormat(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindConfigureFormat,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewResizeDeviceGrow schedules growing a Device's own extent (lvresize
// -L+, parted resizepart, ...) ahead of any format resize riding on it.
func NewResizeDeviceGrow(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindResizeDeviceGrow,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewResizeFormatGrow schedules growing a Format to fill its Device
// (resize2fs, xfs_growfs, ...), which must run after the device grow.
func NewResizeFormatGrow(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindResizeFormatGrow,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewResizeFormatShrink schedules shrinking a Format ahead of the
// Device shrink that depends on it (resize2fs -M, ...).
func NewResizeFormatShrink(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindResizeFormatShrink,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewResizeDeviceShrink schedules shrinking a Device's own extent after
// its Format has already been shrunk to fit.
func NewResizeDeviceShrink(device *graph.Device, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:     KindResizeDeviceShrink,
		device:   device,
		describe: describe,
		postHook: postHook,
	}
}

// NewRemoveMember schedules detaching a member device from a container
// (mdadm --fail/--remove, vgreduce, btrfs device remove). Membership
// pre-condition hooks (md.preRemoveMember, lvm.preRemovePV) already ran
// at graph.RemoveParent time; Validate re-checks the same invariants
// against the graph state current at execution time.
func NewRemoveMember(container, member *graph.Device, validate func(g *graph.Graph) error, describe DescriptorFunc, postHook PostHookFunc) *GenericAction {
	return &GenericAction{
		kind:      KindRemoveMember,
		device:    member,
		container: container,
		validate:  validate,
		describe:  describe,
		postHook:  postHook,
	}
}

// NewDestroyFormat schedules wiping a Device's Format (wipefs) ahead of
// any destroy-device that depends on it.
func NewDestroyFormat(device *graph.Device, describe DescriptorFunc) *GenericAction {
	return &GenericAction{
		kind:     KindDestroyFormat,
		device:   device,
		describe: describe,
	}
}

// NewDestroyDevice schedules tearing a Device down entirely (lvremove,
// mdadm --stop, wipefs, parted rm, ...); it must be ordered after every
// action targeting a descendant, which the scheduling class guarantees
// since DestroyDevice is the last class.
func NewDestroyDevice(device *graph.Device, describe DescriptorFunc) *GenericAction {
	return &GenericAction{
		kind:   KindDestroyDevice,
		device: device,
		validate: func(g *graph.Graph) error {
			if !device.IsLeaf() {
				return &ErrNotLeafForDestroy{Name: device.Name}
			}
			return ValidateTransition(CurrentState(device), StateDestroyed)
		},
		describe: describe,
	}
}

// runnerOnly is a convenience DescriptorFunc for actions whose argv
// does not depend on graph state looked up at Execute time.
func runnerOnly(d runner.Descriptor) DescriptorFunc {
	return func(g *graph.Graph) runner.Descriptor { return d }
}
