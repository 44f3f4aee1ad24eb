package plan

import (
	"context"
	"sort"
	"time"

	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/runner"
)

// Planner is the queue of pending actions against a single Graph. It
// is not safe for concurrent use from multiple goroutines directly;
// callers serialize through the same monitor the Graph itself uses
// (see internal/graph's concurrency note).
type Planner struct {
	g        *graph.Graph
	r        runner.Runner
	actions  []*Action
	nextSeq  int
	observer ExecutionObserver
}

// New constructs a Planner bound to g and the Runner it will execute
// tool-invoking actions through.
func New(g *graph.Graph, r runner.Runner) *Planner {
	return &Planner{g: g, r: r}
}

// Schedule enqueues an action built around ex.
func (p *Planner) Schedule(ex Executor) *Action {
	p.nextSeq++
	a := &Action{Executor: ex, insertionOrder: p.nextSeq, status: StatusQueued}
	p.actions = append(p.actions, a)
	return a
}

// Cancel removes a queued action, calling its Cancel hook to revert
// any speculative in-memory side effect. It is an error to cancel an
// action that has already executed.
func (p *Planner) Cancel(a *Action) error {
	if a.status == StatusExecuted {
		return ErrAlreadyExecuted
	}
	if err := a.Cancel(p.g); err != nil {
		return err
	}
	a.status = StatusCancelled
	for i, cur := range p.actions {
		if cur == a {
			p.actions = append(p.actions[:i], p.actions[i+1:]...)
			break
		}
	}
	return nil
}

// Ordered returns the queued actions (status StatusQueued) sorted per
// the spec's ordering algorithm: non-decreasing scheduling class, a
// topological order on parent-of within a class (destroy children
// before parents, create parents before children), then mountpoint
// weight descending, then stable insertion order.
func (p *Planner) Ordered() []*Action {
	queued := make([]*Action, 0, len(p.actions))
	for _, a := range p.actions {
		if a.status == StatusQueued {
			queued = append(queued, a)
		}
	}

	depth := map[*Action]int{}
	for _, a := range queued {
		depth[a] = p.ancestorDepth(a.Device())
	}

	sort.SliceStable(queued, func(i, j int) bool {
		a, b := queued[i], queued[j]
		ca, cb := SchedulingClass(a.Kind()), SchedulingClass(b.Kind())
		if ca != cb {
			return ca < cb
		}
		if da, db := depth[a], depth[b]; da != db {
			if isTeardownClass(a.Kind()) || isShrinkClass(a.Kind()) {
				return da > db // children (deeper) first
			}
			return da < db // parents first
		}
		if wa, wb := a.MountpointWeight(), b.MountpointWeight(); wa != wb {
			return wa > wb
		}
		return a.insertionOrder < b.insertionOrder
	})
	return queued
}

func isTeardownClass(k Kind) bool {
	switch k {
	case KindRemoveMember, KindDestroyFormat, KindDestroyDevice:
		return true
	default:
		return false
	}
}

func isShrinkClass(k Kind) bool {
	switch k {
	case KindResizeFormatShrink, KindResizeDeviceShrink:
		return true
	default:
		return false
	}
}

// ancestorDepth counts device's distance from a root (a device with no
// parents), used as the topological sort key within a scheduling class.
func (p *Planner) ancestorDepth(device *graph.Device) int {
	if device == nil {
		return 0
	}
	depth := 0
	current := device
	for {
		parents := current.Parents()
		if len(parents) == 0 {
			return depth
		}
		next, ok := p.g.Get(parents[0])
		if !ok {
			return depth
		}
		current = next
		depth++
	}
}

// Execute runs every queued action in Ordered sequence. The planner
// re-validates each action with Validate just before calling its
// Executor's Execute method, which invokes the Runner and the
// post-commit hook. A failing action halts the pass; actions already
// executed are not rolled back, per the spec's propagation policy.
func (p *Planner) Execute(ctx context.Context) error {
	for _, a := range p.Ordered() {
		start := time.Now()
		if err := a.Validate(p.g); err != nil {
			a.status = StatusFailed
			a.err = err
			p.observe(a, start, err)
			return &ErrActionFailed{Kind: a.Kind(), Cause: err}
		}
		if err := a.Execute(ctx, p.g, p.r); err != nil {
			a.status = StatusFailed
			a.err = err
			p.observe(a, start, err)
			return &ErrActionFailed{Kind: a.Kind(), Cause: err}
		}
		a.status = StatusExecuted
		p.observe(a, start, nil)
	}
	return nil
}

func (p *Planner) observe(a *Action, start time.Time, err error) {
	if p.observer == nil {
		return
	}
	p.observer(a.Kind(), SchedulingClass(a.Kind()), time.Since(start).Seconds(), err)
}
