// Package plan implements the action planner and executor (spec
// component F): a closed set of Action kinds with scheduling classes,
// topological ordering, cancellation, and Runner-backed execution.
package plan

import (
	"context"

	"github.com/blockforge/storagecore/internal/graph"
	"github.com/blockforge/storagecore/internal/runner"
)

// Kind is the closed set of action kinds the planner schedules.
type Kind string

const (
	KindCreateDevice    Kind = "create-device"
	KindCreateFormat    Kind = "create-format"
	KindAddMember       Kind = "add-member"
	KindConfigureDevice Kind = "configure-device"
	KindConfigureFormat Kind = "configure-format"
	KindResizeDeviceGrow   Kind = "resize-device-grow"
	KindResizeFormatGrow   Kind = "resize-format-grow"
	KindResizeFormatShrink Kind = "resize-format-shrink"
	KindResizeDeviceShrink Kind = "resize-device-shrink"
	KindRemoveMember    Kind = "remove-member"
	KindDestroyFormat   Kind = "destroy-format"
	KindDestroyDevice   Kind = "destroy-device"
)

// schedulingClass is the fixed ordering class for each Kind, from the
// spec's Action kinds table. Lower classes run first.
var schedulingClass = map[Kind]int{
	KindCreateDevice:       10,
	KindCreateFormat:       20,
	KindAddMember:          30,
	KindConfigureDevice:    40,
	KindConfigureFormat:    50,
	KindResizeDeviceGrow:   60,
	KindResizeFormatGrow:   70,
	KindResizeFormatShrink: 80,
	KindResizeDeviceShrink: 90,
	KindRemoveMember:       100,
	KindDestroyFormat:      110,
	KindDestroyDevice:      120,
}

// SchedulingClass returns k's fixed ordering class.
func SchedulingClass(k Kind) int { return schedulingClass[k] }

// Status is a Device-independent record of where an action sits in its
// own lifecycle, distinct from the Device state machine it drives.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusCancelled Status = "cancelled"
	StatusExecuted  Status = "executed"
	StatusFailed    Status = "failed"
)

// Executor is implemented by each Kind: pre-condition re-validation,
// the Runner-facing operation, and the post-commit hook. Cancel
// reverts whatever in-memory side effect Apply speculatively made
// (a planned rename, a speculative member addition) and is only ever
// called before Execute runs.
type Executor interface {
	Kind() Kind
	Device() *graph.Device
	// Container is the aggregate a member action targets, or nil for
	// actions with a single Device target.
	Container() *graph.Device
	Validate(g *graph.Graph) error
	Execute(ctx context.Context, g *graph.Graph, r runner.Runner) error
	Cancel(g *graph.Graph) error
	// MountpointWeight breaks same-class ties in favor of boot-critical
	// placements; zero for actions with no associated mount point.
	MountpointWeight() int
}

// Action wraps an Executor with the scheduling metadata and status the
// Planner tracks, plus its original insertion order for stable ties.
type Action struct {
	Executor
	insertionOrder int
	status         Status
	err            error
}

// Status reports the action's current lifecycle state.
func (a *Action) Status() Status { return a.status }

// Err returns the error Execute failed with, if status is StatusFailed.
func (a *Action) Err() error { return a.err }
