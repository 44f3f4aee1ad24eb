package uuidfmt

import "errors"

// ErrInvalidUUID is returned for invalid length or non-hex input to
// either conversion direction.
var ErrInvalidUUID = errors.New("uuidfmt: invalid uuid length or characters")
