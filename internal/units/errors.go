package units

import "errors"

// Sentinel errors for the size parsing and formatting API, matching the
// ValueError-class taxonomy spec.md §7 assigns to caller mistakes.
var (
	ErrInvalidSizeString  = errors.New("units: invalid size string")
	ErrInvalidPlaces      = errors.New("units: max_places must be nil or non-negative")
	ErrDivisionByZeroSize = errors.New("units: division by zero size")
)
