package dasha

import "errors"

// ErrInvalidInput is returned for non-finite longitudes or spans, unknown
// rulers, and other caller contract violations. Callers should treat it as a
// programming defect rather than a transient condition.
var ErrInvalidInput = errors.New("invalid input")
