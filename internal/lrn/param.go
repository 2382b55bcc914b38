// Package lrn defines the Local Response Normalization operator contract:
// parameters, shape/type inference, the kernel interface every backend
// implements and the capability registry that selects one of them.
//
// For every (batch, spatial) position and channel i of an input a with C
// channels on axis 1:
//
//	window(i) = [max(0, i-n/2), min(C-1, i+n/2)]
//	scale(i)  = knorm + alpha * Σ_{j∈window(i)} a[j]²
//	b[i]      = a[i] / scale(i)^beta
//
// Windows are clipped at the channel boundaries, never zero padded.
package lrn

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Default values for the optional parameters.
const (
	DefaultAlpha = 1e-4
	DefaultBeta  = 0.75
	DefaultKnorm = 2.0
)

// Param is the immutable configuration of one LRN instance.
type Param struct {
	NSize int     // Window size n, positive and odd.
	Alpha float64 // Scale on the squared sum, >= 0.
	Beta  float64 // Exponent, > 0.
	Knorm float64 // Additive bias, > 0.
}

// NewParam creates a validated Param.
func NewParam(nsize int, alpha, beta, knorm float64) (Param, error) {
	p := Param{NSize: nsize, Alpha: alpha, Beta: beta, Knorm: knorm}
	if err := p.Validate(); err != nil {
		return Param{}, err
	}
	return p, nil
}

// DefaultParam returns a Param with the given window size and default
// alpha, beta and knorm.
func DefaultParam(nsize int) (Param, error) {
	return NewParam(nsize, DefaultAlpha, DefaultBeta, DefaultKnorm)
}

// Validate checks parameter ranges.
func (p Param) Validate() error {
	if p.NSize <= 0 || p.NSize%2 == 0 {
		return fmt.Errorf("lrn: nsize must be a positive odd integer, got %d: %w", p.NSize, ErrInvalidParam)
	}
	if !isFinite(p.Alpha) || p.Alpha < 0 {
		return fmt.Errorf("lrn: alpha must be finite and >= 0, got %v: %w", p.Alpha, ErrInvalidParam)
	}
	if !isFinite(p.Beta) || p.Beta <= 0 {
		return fmt.Errorf("lrn: beta must be finite and > 0, got %v: %w", p.Beta, ErrInvalidParam)
	}
	if !isFinite(p.Knorm) || p.Knorm <= 0 {
		return fmt.Errorf("lrn: knorm must be finite and > 0, got %v: %w", p.Knorm, ErrInvalidParam)
	}
	return nil
}

// HalfWindow returns floor(n/2), the number of neighbours on each side.
func (p Param) HalfWindow() int {
	return p.NSize / 2
}

// Window returns the inclusive channel range [lo, hi] normalizing channel i
// on an axis of the given length, clipped at both ends.
//
// Example (n=5, 8 channels):
//
//	Window(0, 8) → 0, 2
//	Window(4, 8) → 2, 6
//	Window(7, 8) → 5, 7
func (p Param) Window(i, channels int) (lo, hi int) {
	half := p.HalfWindow()
	lo = max(0, i-half)
	hi = min(channels-1, i+half)
	return lo, hi
}

// String formats the parameters as the registration surface's keyword list.
func (p Param) String() string {
	return fmt.Sprintf("nsize=%d, alpha=%g, beta=%g, knorm=%g", p.NSize, p.Alpha, p.Beta, p.Knorm)
}

// Kwargs returns the parameters as string keyword arguments.
// ParseParam(p.Kwargs()) round-trips.
func (p Param) Kwargs() map[string]string {
	return map[string]string{
		"nsize": strconv.Itoa(p.NSize),
		"alpha": strconv.FormatFloat(p.Alpha, 'g', -1, 64),
		"beta":  strconv.FormatFloat(p.Beta, 'g', -1, 64),
		"knorm": strconv.FormatFloat(p.Knorm, 'g', -1, 64),
	}
}

// ParseParam builds a Param from string keyword arguments as supplied by the
// graph-construction layer. nsize is required; alpha, beta and knorm fall
// back to their defaults. Unknown keys are rejected.
func ParseParam(kwargs map[string]string) (Param, error) {
	p := Param{Alpha: DefaultAlpha, Beta: DefaultBeta, Knorm: DefaultKnorm}

	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenNSize := false
	for _, key := range keys {
		value := kwargs[key]
		var err error
		switch key {
		case "nsize":
			p.NSize, err = strconv.Atoi(value)
			seenNSize = true
		case "alpha":
			p.Alpha, err = strconv.ParseFloat(value, 64)
		case "beta":
			p.Beta, err = strconv.ParseFloat(value, 64)
		case "knorm":
			p.Knorm, err = strconv.ParseFloat(value, 64)
		default:
			return Param{}, fmt.Errorf("lrn: unknown argument %q: %w", key, ErrInvalidParam)
		}
		if err != nil {
			return Param{}, fmt.Errorf("lrn: argument %s=%q: %v: %w", key, value, err, ErrInvalidParam)
		}
	}
	if !seenNSize {
		return Param{}, fmt.Errorf("lrn: required argument nsize is missing: %w", ErrInvalidParam)
	}

	if err := p.Validate(); err != nil {
		return Param{}, err
	}
	return p, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
