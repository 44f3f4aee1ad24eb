package graph

import "github.com/blockforge/storagecore/internal/format"

// SetFormat assigns f to device, running the pre-checks spec component
// D requires before a format assignment commits: an immutable format
// already on an existing device cannot be replaced by a different
// kind, and the device's current size must fall within f's bounds.
// _netdev is reconciled against the device's ancestry, then
// format_removed fires for whatever format device carried (if any)
// followed by format_added for f, both on the caller's goroutine.
func (g *Graph) SetFormat(device *Device, f *format.Format) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.setFormat(device, f)
}

func (g *Graph) setFormat(device *Device, f *format.Format) error {
	if device.Exists && device.Format != nil && device.Format.Immutable() && device.Format.Kind != f.Kind {
		return &ErrImmutableFormat{Device: device.Name, Kind: device.Format.Kind}
	}
	if !f.WithinSizeBounds(device.Size) {
		return &ErrFormatSizeOutOfBounds{Device: device.Name, Size: device.Size}
	}

	networkBacked := g.ancestryNetworkBacked(device)
	f.MountOptions = format.ApplyNetdevPolicy(f.MountOptions, networkBacked, false)

	old := device.Format
	if old != nil && old.Kind != format.KindNone {
		for _, cb := range g.onFormatRemoved {
			cb(device)
		}
	}
	device.Format = f
	for _, cb := range g.onFormatAdded {
		cb(device)
	}
	return nil
}

// ancestryNetworkBacked reports whether any ancestor of device (device
// itself included) is tagged "network", the convention a Prober uses
// to mark iSCSI/NBD-backed disks it discovers.
func (g *Graph) ancestryNetworkBacked(device *Device) bool {
	seen := map[string]*Device{}
	g.collectAncestors(device, seen)
	for _, a := range seen {
		if a.Tags["network"] {
			return true
		}
	}
	return false
}
