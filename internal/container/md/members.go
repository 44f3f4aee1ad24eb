package md

import (
	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/raid"
)

// RegisterHooks wires MD-specific pre-add/pre-remove validation into g:
// a parent must carry the md-member format before joining an array,
// and removing a member from a non-redundant array (or dropping below
// the level's minimum) is rejected, per data-model invariant 2 and 7.
func RegisterHooks() {
	graph.RegisterPreAddParentHook(preAddMember)
	graph.RegisterPreRemoveParentHook(preRemoveMember)
}

func preAddMember(g *graph.Graph, child, parent *graph.Device) error {
	if child.Kind != graph.KindMDArray {
		return nil
	}
	if parent.Format == nil || parent.Format.Kind != format.KindMDMember {
		return ErrNotMDMember
	}
	return nil
}

func preRemoveMember(g *graph.Graph, child, parent *graph.Device) error {
	if child.Kind != graph.KindMDArray || child.MDArray == nil {
		return nil
	}
	level, err := raid.Lookup(child.MDArray.Level)
	if err != nil {
		return err
	}
	remaining := len(child.Parents()) - 1
	if remaining < level.MinMembers() {
		return &ErrBelowMinMembers{Level: child.MDArray.Level, Remaining: remaining, Minimum: level.MinMembers()}
	}
	if !level.HasRedundancy() && child.Exists && parent.Format != nil && parent.Format.Exists {
		return ErrNonRedundantActiveRemoval
	}
	return nil
}
