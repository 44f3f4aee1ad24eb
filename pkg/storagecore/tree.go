// Package storagecore is the public facade wiring components A-F,
// the Runner, and the Prober into one Tree, the way topolvm's
// internal/driver wires lvmd/command + the device tree behind a single
// CSI-facing type. Tree is the one entry point a CLI or library caller
// needs: it owns the Graph, schedules factory operations as Actions on
// a Planner, and runs them through a Runner.
package storagecore

import (
	"context"
	"sync"

	"github.com/blockforge/storagecore/internal/container/btrfs"
	"github.com/blockforge/storagecore/internal/container/lvm"
	"github.com/blockforge/storagecore/internal/container/md"
	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/plan"
	"github.com/blockforge/storagecore/internal/prober"
	"github.com/blockforge/storagecore/internal/runner"
)

// hooksOnce wires every container package's edge-mutation hooks into
// internal/graph exactly once per process, since the hook slices
// internal/graph/edges.go holds are package-level.
var hooksOnce sync.Once

func registerHooks() {
	hooksOnce.Do(func() {
		md.RegisterHooks()
		lvm.RegisterHooks()
		btrfs.RegisterHooks()
	})
}

// Tree is the facade over a Graph plus the Planner scheduling mutations
// against it and the Runner those mutations execute through.
type Tree struct {
	Graph   *graph.Graph
	Planner *plan.Planner
	Runner  runner.Runner
}

// New constructs an empty Tree bound to r. Callers that only need to
// inspect a probed topology (no mutation) can pass a runner.FakeRunner.
func New(r runner.Runner) *Tree {
	registerHooks()
	g := graph.New()
	return &Tree{
		Graph:   g,
		Planner: plan.New(g, r),
		Runner:  r,
	}
}

// Probe ingests discovery records from p into the Tree's Graph,
// creating or updating Devices per internal/prober's rules.
func (t *Tree) Probe(p prober.Prober) error {
	return prober.Ingest(t.Graph, p)
}

// Schedule queues ex for execution and returns the handle the caller
// can later Cancel before Apply runs.
func (t *Tree) Schedule(ex plan.Executor) *plan.Action {
	return t.Planner.Schedule(ex)
}

// Apply executes every queued action in scheduling order. A failing
// action halts the pass; already-executed actions are not rolled back,
// matching spec.md §7's propagation policy.
func (t *Tree) Apply(ctx context.Context) error {
	return t.Planner.Execute(ctx)
}

// Ordered exposes the planner's computed execution order for callers
// (cmd/storagecorectl's `plan` subcommand) that want to print it
// without running it.
func (t *Tree) Ordered() []*plan.Action {
	return t.Planner.Ordered()
}
