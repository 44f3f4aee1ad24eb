package plan

import (
	"errors"
	"fmt"
)

// ErrAlreadyExecuted rejects cancelling an action whose effects have
// already been committed; the spec requires cancellation to be
// possible only before execute.
var ErrAlreadyExecuted = errors.New("plan: cannot cancel an action that already executed")

// ErrActionFailed wraps whichever error halted Execute, attaching the
// offending action's kind so callers can report it without walking
// the whole action list again.
type ErrActionFailed struct {
	Kind  Kind
	Cause error
}

func (e *ErrActionFailed) Error() string {
	return fmt.Sprintf("plan: action %s failed: %v", e.Kind, e.Cause)
}

func (e *ErrActionFailed) Unwrap() error { return e.Cause }

// ErrIllegalTransition reports an attempted Device state change the
// state machine does not permit.
type ErrIllegalTransition struct {
	From, To DeviceState
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("plan: illegal device state transition %s -> %s", e.From, e.To)
}

// ErrNotLeafForDestroy rejects destroying a device that still has
// children; every action touching a descendant must be ordered first,
// which DestroyDevice's scheduling class normally guarantees on its
// own, except when a descendant action itself never got scheduled.
type ErrNotLeafForDestroy struct {
	Name string
}

func (e *ErrNotLeafForDestroy) Error() string {
	return fmt.Sprintf("plan: cannot destroy %s: still has children", e.Name)
}

