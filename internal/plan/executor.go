package plan

import (
	"context"

	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/runner"
)

// DescriptorFunc builds the Runner operation descriptor for an action
// against the current graph state, since the exact argv (mdadm/lvm/
// mkfs.*/...) depends on device and format attributes only the
// internal/container/* and internal/format callers know how to render.
type DescriptorFunc func(g *graph.Graph) runner.Descriptor

// PostHookFunc runs after a successful Runner invocation, with the
// parsed Result available for _post_create/_post_destroy-style
// follow-up (e.g. querying a freshly-created MD array's UUID).
type PostHookFunc func(g *graph.Graph, res runner.Result) error

// GenericAction is the common Executor implementation every concrete
// action kind is built from: a Kind, its target Device (and Container
// for member actions), a pre-condition check, a descriptor builder,
// and a post-commit hook. The closed set of Kinds is enforced by the
// constructors in actions.go, not by this type itself.
type GenericAction struct {
	kind      Kind
	device    *graph.Device
	container *graph.Device
	weight    int

	validate func(g *graph.Graph) error
	describe DescriptorFunc
	postHook PostHookFunc

	// reverted records whether Cancel has already undone this action's
	// speculative in-memory effect, so Cancel is idempotent.
	reverted bool
	revert   func(g *graph.Graph) error
}

func (a *GenericAction) Kind() Kind               { return a.kind }
func (a *GenericAction) Device() *graph.Device    { return a.device }
func (a *GenericAction) Container() *graph.Device { return a.container }
func (a *GenericAction) MountpointWeight() int    { return a.weight }

func (a *GenericAction) Validate(g *graph.Graph) error {
	if a.validate == nil {
		return nil
	}
	return a.validate(g)
}

func (a *GenericAction) Execute(ctx context.Context, g *graph.Graph, r runner.Runner) error {
	var res runner.Result
	var err error
	if a.describe != nil {
		res, err = r.Run(ctx, a.describe(g))
		if err != nil {
			return err
		}
	}
	applyStateTransition(a.kind, a.device)
	if a.postHook != nil {
		return a.postHook(g, res)
	}
	return nil
}

func (a *GenericAction) Cancel(g *graph.Graph) error {
	if a.reverted || a.revert == nil {
		a.reverted = true
		return nil
	}
	a.reverted = true
	return a.revert(g)
}

// applyStateTransition flips the Device flags CurrentState reads,
// matching the state machine's per-Kind semantics.
func applyStateTransition(k Kind, d *graph.Device) {
	if d == nil {
		return
	}
	switch k {
	case KindCreateDevice:
		d.Exists = true
		d.Active = true
	case KindDestroyDevice:
		d.Exists = false
		d.Active = false
	case KindCreateFormat:
		if d.Format != nil {
			d.Format.Exists = true
		}
	case KindDestroyFormat:
		if d.Format != nil {
			d.Format.Exists = false
		}
	}
}
