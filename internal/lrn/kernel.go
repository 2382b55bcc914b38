package lrn

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/tensor"
)

// Saved holds the forward intermediates the backward pass needs.
// It is produced by Kernel.Forward and threaded explicitly into
// Kernel.Backward, so a kernel carries no state between calls.
type Saved struct {
	// Scale is knorm + alpha*Σ a[j]² per element; denom = Scale^beta.
	Scale *tensor.RawTensor
	// Output is the forward result b.
	Output *tensor.RawTensor
}

// Kernel is one backend's LRN implementation, bound to a single
// (device, dtype) pair for its lifetime.
//
// Forward and Backward borrow their tensor arguments. Contract violations
// (shape or dtype differing from what the kernel was bound to) panic.
type Kernel interface {
	// Forward normalizes input and returns the output with its saved intermediates.
	Forward(input *tensor.RawTensor) (*tensor.RawTensor, *Saved)

	// Backward returns dL/d(input) given dL/d(output), the forward input and
	// the intermediates Forward returned for it.
	Backward(outputGrad, input *tensor.RawTensor, saved *Saved) *tensor.RawTensor

	// Kind names the backend that produced the kernel.
	Kind() string

	// DType returns the element type the kernel is bound to.
	DType() tensor.DataType

	// Release frees backend scratch resources. The kernel is unusable afterwards.
	Release()
}

// CheckInput panics unless x matches the dtype a kernel was bound to and
// has a channel axis.
func CheckInput(op string, x *tensor.RawTensor, dtype tensor.DataType) {
	if x.DType() != dtype {
		panic(fmt.Sprintf("lrn: %s: kernel bound to %s, got %s input", op, dtype, x.DType()))
	}
	if x.Shape().Rank() < MinRank {
		panic(fmt.Sprintf("lrn: %s: expected rank >= %d input, got shape %v", op, MinRank, x.Shape()))
	}
}

// CheckBackward panics unless the backward arguments agree with each other.
func CheckBackward(outputGrad, input *tensor.RawTensor, saved *Saved, dtype tensor.DataType) {
	CheckInput("backward", input, dtype)
	if saved == nil || saved.Scale == nil || saved.Output == nil {
		panic("lrn: backward: missing saved forward intermediates")
	}
	for _, t := range []*tensor.RawTensor{outputGrad, saved.Scale, saved.Output} {
		if t.DType() != dtype {
			panic(fmt.Sprintf("lrn: backward: kernel bound to %s, got %s tensor", dtype, t.DType()))
		}
		if !t.Shape().Equal(input.Shape()) {
			panic(fmt.Sprintf("lrn: backward: shape %v does not match input %v", t.Shape(), input.Shape()))
		}
	}
}
