// Package ops defines operation records for reverse-mode differentiation.
//
// Each operation records its inputs, output and whatever forward
// intermediates its backward pass needs, and computes input gradients from
// the output gradient.
package ops

import "github.com/born-ml/born-lrn/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
