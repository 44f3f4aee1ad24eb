package prober

import (
	mountutils "k8s.io/mount-utils"
)

// MountTable resolves a device's current mount point from the host's
// mount table, letting a live Prober fill in Descriptor.Fields["mountpoint"]
// without parsing /proc/mounts itself.
type MountTable struct {
	mounter mountutils.Interface
}

// NewMountTable constructs a MountTable backed by the host mounter.
func NewMountTable() *MountTable {
	return &MountTable{mounter: mountutils.New("")}
}

// newMountTableWith wraps an arbitrary mounter, letting tests substitute
// mountutils.NewFakeMounter for the real /proc/mounts-backed one.
func newMountTableWith(mounter mountutils.Interface) *MountTable {
	return &MountTable{mounter: mounter}
}

// Lookup returns the mount path for devicePath, or "" if it is not
// currently mounted anywhere.
func (m *MountTable) Lookup(devicePath string) (string, error) {
	points, err := m.mounter.List()
	if err != nil {
		return "", err
	}
	for _, p := range points {
		if p.Device == devicePath {
			return p.Path, nil
		}
	}
	return "", nil
}
