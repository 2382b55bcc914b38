package ops

import (
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// LRNBackend is the part of a bound LRN operator the record needs.
type LRNBackend interface {
	Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor
}

// LRNOp records a local response normalization for autodiff.
//
// Forward:
//
//	b[i] = a[i] / (knorm + alpha * Σ_{j∈window(i)} a[j]²)^beta
//
// Backward delegates to the kernel that ran the forward pass, reusing the
// scale it saved rather than recomputing the window sums.
type LRNOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	saved  *lrn.Saved
	kernel LRNBackend
}

// NewLRNOp creates a new LRN operation record.
func NewLRNOp(input, output *tensor.RawTensor, saved *lrn.Saved, kernel LRNBackend) *LRNOp {
	return &LRNOp{
		input:  input,
		output: output,
		saved:  saved,
		kernel: kernel,
	}
}

// Backward computes the input gradient.
func (op *LRNOp) Backward(outputGrad *tensor.RawTensor) []*tensor.RawTensor {
	return []*tensor.RawTensor{op.kernel.Backward(outputGrad, op.input, op.saved)}
}

// Inputs returns the input tensor [a].
func (op *LRNOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the normalized tensor b.
func (op *LRNOp) Output() *tensor.RawTensor {
	return op.output
}
