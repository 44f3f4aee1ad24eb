package plan

import "github.com/blockforge/storagecore/internal/graph"

// DeviceState is the Device lifecycle state machine from spec
// component F: planned -> created -> active <-> inactive -> destroyed.
type DeviceState string

const (
	StatePlanned   DeviceState = "planned"
	StateCreated   DeviceState = "created"
	StateActive    DeviceState = "active"
	StateInactive  DeviceState = "inactive"
	StateDestroyed DeviceState = "destroyed"
)

// CurrentState derives a Device's lifecycle state from its Exists and
// Active flags rather than storing a redundant third field on Device.
func CurrentState(d *graph.Device) DeviceState {
	switch {
	case !d.Exists:
		return StatePlanned
	case d.Exists && !d.Active:
		return StateInactive
	default:
		return StateActive
	}
}

// transitions enumerates every legal (from, to) pair; CreateDevice and
// DestroyDevice are handled by their Executors directly since they
// also flip Exists, which CurrentState reads.
var transitions = map[DeviceState]map[DeviceState]bool{
	StatePlanned:  {StateCreated: true},
	StateCreated:  {StateActive: true},
	StateActive:   {StateInactive: true, StateDestroyed: true},
	StateInactive: {StateActive: true, StateDestroyed: true},
}

// ValidateTransition reports whether moving a device from `from` to
// `to` is legal per the state machine, independent of cancellation
// (which is allowed from any state back to planned, short of having
// already reached created, and is handled by Planner.Cancel instead).
func ValidateTransition(from, to DeviceState) error {
	if allowed, ok := transitions[from]; ok && allowed[to] {
		return nil
	}
	return &ErrIllegalTransition{From: from, To: to}
}
