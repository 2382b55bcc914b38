package native

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// LRNKernel is the native library lrn.Kernel.
type LRNKernel struct {
	lib   *Library
	param lrn.Param
}

// NewLRNKernel binds a kernel on lib to p. Only Float32 is accepted.
func NewLRNKernel(lib *Library, p lrn.Param, dtype tensor.DataType) (*LRNKernel, error) {
	if !supports(tensor.CPU, dtype) {
		return nil, fmt.Errorf("native: lrn kernel does not support %s", dtype)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &LRNKernel{lib: lib, param: p}, nil
}

// Forward implements lrn.Kernel.
func (k *LRNKernel) Forward(input *tensor.RawTensor) (*tensor.RawTensor, *lrn.Saved) {
	lrn.CheckInput("forward", input, tensor.Float32)

	shape := input.Shape()
	output := mustRaw(shape)
	scale := mustRaw(shape)
	outer, channels, inner := shape.SplitAxis(lrn.ChannelAxis)

	err := k.lib.Forward(input.AsFloat32(), output.AsFloat32(), scale.AsFloat32(),
		outer, channels, inner, k.param.NSize, k.param.Alpha, k.param.Beta, k.param.Knorm)
	if err != nil {
		panic(err.Error())
	}
	return output, &lrn.Saved{Scale: scale, Output: output}
}

// Backward implements lrn.Kernel.
func (k *LRNKernel) Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor {
	lrn.CheckBackward(outputGrad, input, saved, tensor.Float32)

	shape := input.Shape()
	inputGrad := mustRaw(shape)
	outer, channels, inner := shape.SplitAxis(lrn.ChannelAxis)

	err := k.lib.Backward(outputGrad.AsFloat32(), input.AsFloat32(), saved.Output.AsFloat32(),
		saved.Scale.AsFloat32(), inputGrad.AsFloat32(),
		outer, channels, inner, k.param.NSize, k.param.Alpha, k.param.Beta)
	if err != nil {
		panic(err.Error())
	}
	return inputGrad
}

// Kind implements lrn.Kernel.
func (k *LRNKernel) Kind() string { return Kind }

// DType implements lrn.Kernel.
func (k *LRNKernel) DType() tensor.DataType { return tensor.Float32 }

// Release implements lrn.Kernel. The library stays loaded for the process;
// the kernel owns no scratch memory.
func (k *LRNKernel) Release() {}

func mustRaw(shape tensor.Shape) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("native: failed to allocate %v: %v", shape, err))
	}
	return raw
}
