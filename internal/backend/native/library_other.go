//go:build !(darwin || linux)

package native

import "errors"

// ErrUnsupported reports that runtime library loading is unavailable on
// this platform.
var ErrUnsupported = errors.New("native: dynamic library loading not supported on this platform")

// Library is a loaded native LRN library.
type Library struct{}

// Default always fails on this platform.
func Default() (*Library, error) {
	return nil, ErrUnsupported
}

// Open always fails on this platform.
func Open(string) (*Library, error) {
	return nil, ErrUnsupported
}

// Path returns an empty string.
func (l *Library) Path() string { return "" }

// Forward always fails on this platform.
func (l *Library) Forward(_, _, _ []float32, _, _, _, _ int, _, _, _ float64) error {
	return ErrUnsupported
}

// Backward always fails on this platform.
func (l *Library) Backward(_, _, _, _, _ []float32, _, _, _, _ int, _, _ float64) error {
	return ErrUnsupported
}
