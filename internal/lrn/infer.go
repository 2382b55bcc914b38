package lrn

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/tensor"
)

// MinRank is the smallest input rank carrying a channel axis:
// [batch, channels, spatial...].
const MinRank = 3

// ChannelAxis is the axis normalized across.
const ChannelAxis = 1

// Output indices. Only OutputData is visible to graph users; OutputScale is
// the cached normalization scale consumed by the backward pass.
const (
	OutputData = iota
	OutputScale
	numOutputs
)

// InferShape checks the input shapes and returns the output shapes:
// the normalized output and the cached scale, both identical to the input.
func InferShape(in []tensor.Shape) ([]tensor.Shape, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("lrn: expected 1 input (data), got %d: %w", len(in), ErrShape)
	}
	shape := in[0]
	if shape.Rank() < MinRank {
		return nil, fmt.Errorf("lrn: input must have rank >= %d [batch, channels, spatial...], got %v: %w",
			MinRank, shape, ErrShape)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("lrn: input shape %v: %v: %w", shape, err, ErrShape)
	}

	out := make([]tensor.Shape, numOutputs)
	for i := range out {
		out[i] = shape.Clone()
	}
	return out, nil
}

// InferType checks the input element types and returns the output types.
// It accepts every type the reference kernel supports; backend specific
// restrictions are left to the selector.
func InferType(in []tensor.DataType) ([]tensor.DataType, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("lrn: expected 1 input type, got %d: %w", len(in), ErrType)
	}
	dtype := in[0]
	if !SupportsType(dtype) {
		return nil, fmt.Errorf("lrn: unsupported element type %s (want float32 or float64): %w", dtype, ErrType)
	}

	out := make([]tensor.DataType, numOutputs)
	for i := range out {
		out[i] = dtype
	}
	return out, nil
}

// Infer runs InferType then InferShape.
func Infer(shapes []tensor.Shape, types []tensor.DataType) ([]tensor.Shape, []tensor.DataType, error) {
	outTypes, err := InferType(types)
	if err != nil {
		return nil, nil, err
	}
	outShapes, err := InferShape(shapes)
	if err != nil {
		return nil, nil, err
	}
	return outShapes, outTypes, nil
}

// SupportsType reports whether the reference kernel handles dtype.
func SupportsType(dtype tensor.DataType) bool {
	return dtype == tensor.Float32 || dtype == tensor.Float64
}
