package lrn

import "errors"

// Sentinel errors reported at operator construction time.
// Returned errors wrap one of these; test with errors.Is.
var (
	// ErrInvalidParam reports an out-of-range or unknown LRN parameter.
	ErrInvalidParam = errors.New("invalid LRN parameter")

	// ErrShape reports an input shape the operator cannot normalize,
	// e.g. a rank too low to carry a channel axis.
	ErrShape = errors.New("LRN shape error")

	// ErrType reports an element type no available kernel supports.
	ErrType = errors.New("LRN type error")

	// ErrConfiguration reports that no registered backend could produce a
	// kernel for a validated (device, dtype) pair.
	ErrConfiguration = errors.New("LRN configuration error")
)
