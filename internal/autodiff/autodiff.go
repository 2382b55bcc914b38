// Package autodiff drives reverse-mode differentiation over recorded
// operations. It is the minimal engine the LRN operator plugs into: forward
// passes record an operation, Backward replays them in reverse.
package autodiff

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/autodiff/ops"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// LRNOperator is a bound LRN operator.
type LRNOperator interface {
	Forward(input *tensor.RawTensor) (*tensor.RawTensor, *lrn.Saved)
	Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor
}

// LRN runs op forward on input and records it on tape.
func LRN(tape *GradientTape, op LRNOperator, input *tensor.RawTensor) *tensor.RawTensor {
	output, saved := op.Forward(input)
	tape.Record(ops.NewLRNOp(input, output, saved, op))
	return output
}

// OnesLike returns a tensor of ones shaped like t, the seed gradient of a
// sum reduction.
func OnesLike(t *tensor.RawTensor) *tensor.RawTensor {
	ones, err := tensor.Full(t.Shape(), t.DType(), t.Device(), 1)
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}
	return ones
}
