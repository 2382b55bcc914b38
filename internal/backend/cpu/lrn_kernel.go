package cpu

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// ReferenceKind names the reference backend in the provider registry.
const ReferenceKind = "reference"

// LRNKernel is the reference lrn.Kernel. It runs on host memory and so
// serves every device kind whose tensors are host addressable.
type LRNKernel struct {
	backend *CPUBackend
	param   lrn.Param
	dtype   tensor.DataType
}

// NewLRNKernel binds a reference kernel to (p, dtype). Results are tagged
// with device.
func NewLRNKernel(p lrn.Param, dtype tensor.DataType, device tensor.Device, cfg parallel.Config) (*LRNKernel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !lrn.SupportsType(dtype) {
		return nil, fmt.Errorf("cpu: lrn kernel does not support %s", dtype)
	}
	return &LRNKernel{
		backend: NewWithConfig(device, cfg),
		param:   p,
		dtype:   dtype,
	}, nil
}

// Forward implements lrn.Kernel.
func (k *LRNKernel) Forward(input *tensor.RawTensor) (*tensor.RawTensor, *lrn.Saved) {
	lrn.CheckInput("forward", input, k.dtype)
	output, scale := k.backend.LRN(input, k.param)
	return output, &lrn.Saved{Scale: scale, Output: output}
}

// Backward implements lrn.Kernel.
func (k *LRNKernel) Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor {
	lrn.CheckBackward(outputGrad, input, saved, k.dtype)
	return k.backend.LRNBackward(outputGrad, input, saved.Output, saved.Scale, k.param)
}

// Kind implements lrn.Kernel.
func (k *LRNKernel) Kind() string { return ReferenceKind }

// DType implements lrn.Kernel.
func (k *LRNKernel) DType() tensor.DataType { return k.dtype }

// Release implements lrn.Kernel. The reference kernel holds no scratch
// memory between calls.
func (k *LRNKernel) Release() {}

// Provider returns the reference provider: lowest priority, no required
// capability, every recognized device, float32 and float64.
func Provider(cfg parallel.Config) lrn.Provider {
	return lrn.Provider{
		Kind:     ReferenceKind,
		Priority: 0,
		Supports: func(device tensor.Device, dtype tensor.DataType) bool {
			return device.Valid() && lrn.SupportsType(dtype)
		},
		New: func(p lrn.Param, dtype tensor.DataType, ctx lrn.ExecutionContext) (lrn.Kernel, error) {
			return NewLRNKernel(p, dtype, ctx.Device, cfg)
		},
	}
}
