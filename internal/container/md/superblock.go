// Package md implements MD array container semantics (spec component
// E, MD Array): member add/remove rules and superblock reservation.
package md

import (
	"github.com/blockforge/storagecore/internal/units"
)

// DefaultSuperblockSize is mdadm's reserve for the 0.9 and 1.0
// metadata versions, determined empirically by the mdadm project.
var DefaultSuperblockSize = units.NewSize(2 * 1024 * 1024)

var oneMiB = units.NewSize(1024 * 1024)
var maxHeadroom = units.NewSize(128 * 1024 * 1024)

// SuperblockSize reproduces mdadm/super1.c's reshape headroom formula
// for the 1.1/1.2 metadata versions: start at 128 MiB and halve it
// until it is no more than 0.1% of the array size, floored at 1 MiB.
// Versions 0.9 and 1.0 always reserve a flat 2 MiB.
func SuperblockSize(arraySize units.Size, metadataVersion string) units.Size {
	switch metadataVersion {
	case "0.9", "1.0":
		return DefaultSuperblockSize
	}
	headroom := maxHeadroom
	for headroom.MulScalar(1024).Cmp(arraySize) > 0 && headroom.Cmp(oneMiB) > 0 {
		headroom, _ = headroom.DivScalar(2)
	}
	return headroom
}

// SuperblockFunc adapts SuperblockSize to raid.SuperblockFunc's shape
// for a fixed metadata version, for use as the superblock argument to
// a raid.Level's Size method.
func SuperblockFunc(metadataVersion string) func(units.Size) units.Size {
	return func(memberSize units.Size) units.Size {
		return SuperblockSize(memberSize, metadataVersion)
	}
}
