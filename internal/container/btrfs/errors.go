package btrfs

import "errors"

var (
	// ErrNotBTRFSMember rejects a member device lacking the
	// btrfs-member format from joining a volume.
	ErrNotBTRFSMember = errors.New("btrfs: parent is not formatted as a btrfs member")
	// ErrUnsupportedLevel rejects a replication profile BTRFS itself
	// never implements, even though the raid registry knows its name.
	ErrUnsupportedLevel = errors.New("btrfs: replication profile not supported by btrfs")
	// ErrNoVolumeAncestor reports a subvolume whose ancestor chain
	// never reaches a BTRFSVolume, a violation of data-model invariant 9.
	ErrNoVolumeAncestor = errors.New("btrfs: subvolume has no btrfs volume ancestor")
	// ErrSubvolumeExists rejects adding a subvolume name already
	// present in a volume's subvolume registry.
	ErrSubvolumeExists = errors.New("btrfs: subvolume name already exists on this volume")
	// ErrSubvolumeNotFound rejects removing a subvolume name absent
	// from a volume's subvolume registry.
	ErrSubvolumeNotFound = errors.New("btrfs: subvolume not found on this volume")
	// ErrMemberTooSmall rejects a member device below MinMemberSize.
	ErrMemberTooSmall = errors.New("btrfs: member device is smaller than the btrfs minimum member size")
)
