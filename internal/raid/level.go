// Package raid implements the closed registry of RAID level descriptors
// and their pure sizing functions (spec component B). Each level is a
// singleton value satisfying the Level interface; formulas are lifted
// from blivet's devicelibs/raid.py and devicelibs/mdraid.py.
package raid

import (
	"fmt"

	"github.com/blockforge/storagecore/internal/units"
)

// SuperblockFunc computes the per-member metadata reserve for a given
// member size, e.g. the MD superblock sizing in internal/container/md.
type SuperblockFunc func(memberSize units.Size) units.Size

// ZeroSuperblock is a SuperblockFunc that reserves nothing, used by
// property-based tests that need the raw stripe arithmetic in isolation.
func ZeroSuperblock(units.Size) units.Size { return units.Zero }

// Level is a RAID (or BTRFS replication profile) level descriptor. All
// methods are pure functions of the level and the supplied arguments.
type Level interface {
	// Name is the canonical name, e.g. "raid0".
	Name() string
	// Names lists every accepted descriptor: canonical name, numeric
	// alias, and nickname.
	Names() []string
	MinMembers() int
	HasRedundancy() bool

	MaxSpares(memberCount int) (int, error)
	BaseMemberSize(data units.Size, memberCount int) (units.Size, error)
	RawArraySize(memberCount int, smallest units.Size) (units.Size, error)
	Size(memberSizes []units.Size, chunk units.Size, superblock SuperblockFunc) (units.Size, error)
	RecommendedStride(memberCount int) (*int, error)
}

// ErrUnknownLevel is returned by Lookup for an unrecognized descriptor.
var ErrUnknownLevel = fmt.Errorf("raid: unknown level")

// ErrTooFewMembers is returned whenever an operation is given fewer
// members than MinMembers requires.
type ErrTooFewMembers struct {
	Level   string
	Members int
	Minimum int
}

func (e *ErrTooFewMembers) Error() string {
	return fmt.Sprintf("raid: %s requires at least %d members, got %d", e.Level, e.Minimum, e.Members)
}

// base is embedded by every level to provide the shared Name/Names
// plumbing and the MinMembers guard every public method re-checks.
type base struct {
	name       string
	numeric    string
	nick       string
	minMembers int
	redundant  bool
}

func (b base) Name() string     { return b.name }
func (b base) MinMembers() int  { return b.minMembers }
func (b base) HasRedundancy() bool { return b.redundant }

func (b base) Names() []string {
	names := []string{b.name}
	if b.numeric != "" {
		names = append(names, "RAID"+b.numeric, b.numeric)
	}
	if b.nick != "" {
		names = append(names, b.nick)
	}
	return names
}

func (b base) checkMembers(n int) error {
	if n < b.minMembers {
		return &ErrTooFewMembers{Level: b.name, Members: n, Minimum: b.minMembers}
	}
	return nil
}
