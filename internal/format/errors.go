package format

import "errors"

// Sentinel errors for the FormatError taxonomy class (spec section 7).
var (
	ErrUnsupportedKind    = errors.New("format: unsupported kind")
	ErrImmutableReplace   = errors.New("format: cannot replace an immutable format on an existing device")
	ErrSizeOutOfBounds    = errors.New("format: size out of [min_size, max_size] bounds")
	ErrUnformattable      = errors.New("format: device cannot accept this format")
	ErrUnmountable        = errors.New("format: format does not support mounting")
)
