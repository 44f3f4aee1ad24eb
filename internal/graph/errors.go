package graph

import (
	"errors"
	"fmt"

	"github.com/blockforge/storagecore/internal/format"
	"github.com/blockforge/storagecore/internal/units"
)

// Sentinel errors for the DeviceError taxonomy class (spec section 7).
var (
	ErrCycle              = errors.New("graph: edge would introduce a cycle")
	ErrDuplicateEdge      = errors.New("graph: duplicate parent/child edge")
	ErrNotFound           = errors.New("graph: resolve failed")
	ErrNameConflict       = errors.New("graph: name already in use")
	ErrInvalidName        = errors.New("graph: name violates naming rules for this device kind")
	ErrTooFewParents      = errors.New("graph: device has fewer parents than its kind requires")
	ErrWrongParentKind    = errors.New("graph: parent is not a valid kind for this child")
	ErrSectorSizeMismatch = errors.New("graph: member sector sizes are not identical")
	ErrNotLeaf            = errors.New("graph: device is not a leaf")
)

// ErrUUIDMismatch reports a violation of invariant 5: a member format's
// cross-reference UUID must match its aggregate's UUID.
type ErrUUIDMismatch struct {
	Device   string
	Expected string
	Got      string
}

func (e *ErrUUIDMismatch) Error() string {
	return fmt.Sprintf("graph: device %q member-format uuid %q does not match aggregate uuid %q", e.Device, e.Got, e.Expected)
}

// ErrImmutableFormat reports an attempt to replace an immutable format
// kind already committed to an existing device with a different kind.
type ErrImmutableFormat struct {
	Device string
	Kind   format.Kind
}

func (e *ErrImmutableFormat) Error() string {
	return fmt.Sprintf("graph: device %q carries immutable format %q and cannot be reformatted", e.Device, e.Kind)
}

// ErrFormatSizeOutOfBounds reports a format assignment whose
// [min_size, max_size] bounds the device's current size violates.
type ErrFormatSizeOutOfBounds struct {
	Device string
	Size   units.Size
}

func (e *ErrFormatSizeOutOfBounds) Error() string {
	return fmt.Sprintf("graph: device %q size %s bytes is outside the new format's size bounds", e.Device, e.Size.BigBytes())
}
