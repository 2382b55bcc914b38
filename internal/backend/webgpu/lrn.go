//go:build windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// LRN runs the forward shader and returns output and scale tensors tagged
// with the WebGPU device.
func (b *Backend) LRN(input *tensor.RawTensor, p lrn.Param) (output, scale *tensor.RawTensor, err error) {
	if input.DType() != tensor.Float32 {
		return nil, nil, fmt.Errorf("webgpu: only float32 is supported, got %s", input.DType())
	}

	shape := input.Shape()
	outer, _, inner := shape.SplitAxis(lrn.ChannelAxis)

	shader := b.compileShader("lrnForward", lrnForwardShader)
	pipeline := b.getOrCreatePipeline("lrnForward", shader)

	//nolint:gosec // G115: Safe conversion, ByteSize() returns non-negative int
	size := uint64(input.ByteSize())
	outUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

	bufferInput := b.createBuffer(input.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	bufferOutput := b.scratch.acquire(size, outUsage)
	defer b.scratch.release(bufferOutput, size, outUsage)

	bufferScale := b.scratch.acquire(size, outUsage)
	defer b.scratch.release(bufferScale, size, outUsage)

	bufferParams := b.createUniformBuffer(encodeLRNParams(shape, p))
	defer bufferParams.Release()

	b.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, size),
		wgpu.BufferBindingEntry(1, bufferOutput, 0, size),
		wgpu.BufferBindingEntry(2, bufferScale, 0, size),
		wgpu.BufferBindingEntry(3, bufferParams, 0, lrnParamsSize),
	}, outer*inner)

	if output, err = b.download(bufferOutput, shape, size); err != nil {
		return nil, nil, err
	}
	if scale, err = b.download(bufferScale, shape, size); err != nil {
		return nil, nil, err
	}
	return output, scale, nil
}

// LRNBackward runs the backward shader and returns the input gradient.
func (b *Backend) LRNBackward(grad, input, output, scale *tensor.RawTensor, p lrn.Param) (*tensor.RawTensor, error) {
	for _, t := range []*tensor.RawTensor{grad, input, output, scale} {
		if t.DType() != tensor.Float32 {
			return nil, fmt.Errorf("webgpu: only float32 is supported, got %s", t.DType())
		}
	}

	shape := input.Shape()
	outer, _, inner := shape.SplitAxis(lrn.ChannelAxis)

	shader := b.compileShader("lrnBackward", lrnBackwardShader)
	pipeline := b.getOrCreatePipeline("lrnBackward", shader)

	//nolint:gosec // G115: Safe conversion, ByteSize() returns non-negative int
	size := uint64(input.ByteSize())
	inUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc
	outUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

	bufferGrad := b.createBuffer(grad.Data(), inUsage)
	defer bufferGrad.Release()
	bufferInput := b.createBuffer(input.Data(), inUsage)
	defer bufferInput.Release()
	bufferOutput := b.createBuffer(output.Data(), inUsage)
	defer bufferOutput.Release()
	bufferScale := b.createBuffer(scale.Data(), inUsage)
	defer bufferScale.Release()

	bufferInputGrad := b.scratch.acquire(size, outUsage)
	defer b.scratch.release(bufferInputGrad, size, outUsage)

	bufferParams := b.createUniformBuffer(encodeLRNParams(shape, p))
	defer bufferParams.Release()

	b.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferGrad, 0, size),
		wgpu.BufferBindingEntry(1, bufferInput, 0, size),
		wgpu.BufferBindingEntry(2, bufferOutput, 0, size),
		wgpu.BufferBindingEntry(3, bufferScale, 0, size),
		wgpu.BufferBindingEntry(4, bufferInputGrad, 0, size),
		wgpu.BufferBindingEntry(5, bufferParams, 0, lrnParamsSize),
	}, outer*inner)

	return b.download(bufferInputGrad, shape, size)
}

// download copies a float32 GPU buffer into a new host tensor.
func (b *Backend) download(buffer *wgpu.Buffer, shape tensor.Shape, size uint64) (*tensor.RawTensor, error) {
	data, err := b.readBuffer(buffer, size)
	if err != nil {
		return nil, err
	}
	result, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}

// LRNKernel is the WebGPU lrn.Kernel. It owns its Backend; Release frees
// the device and every pooled buffer.
//
// All arithmetic runs in f32 on the device. Outputs agree with the
// reference kernel to within float32 rounding, not bit for bit.
type LRNKernel struct {
	backend *Backend
	param   lrn.Param
}

func newKernel(p lrn.Param, dtype tensor.DataType, _ lrn.ExecutionContext) (lrn.Kernel, error) {
	if !supports(tensor.WebGPU, dtype) {
		return nil, fmt.Errorf("webgpu: lrn kernel does not support %s", dtype)
	}
	backend, err := New()
	if err != nil {
		return nil, err
	}
	return &LRNKernel{backend: backend, param: p}, nil
}

// Forward implements lrn.Kernel.
func (k *LRNKernel) Forward(input *tensor.RawTensor) (*tensor.RawTensor, *lrn.Saved) {
	lrn.CheckInput("forward", input, tensor.Float32)
	output, scale, err := k.backend.LRN(input, k.param)
	if err != nil {
		panic("webgpu: LRN: " + err.Error())
	}
	return output, &lrn.Saved{Scale: scale, Output: output}
}

// Backward implements lrn.Kernel.
func (k *LRNKernel) Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor {
	lrn.CheckBackward(outputGrad, input, saved, tensor.Float32)
	inputGrad, err := k.backend.LRNBackward(outputGrad, input, saved.Output, saved.Scale, k.param)
	if err != nil {
		panic("webgpu: LRNBackward: " + err.Error())
	}
	return inputGrad
}

// Kind implements lrn.Kernel.
func (k *LRNKernel) Kind() string { return Kind }

// DType implements lrn.Kernel.
func (k *LRNKernel) DType() tensor.DataType { return tensor.Float32 }

// Release implements lrn.Kernel.
func (k *LRNKernel) Release() {
	if k.backend != nil {
		k.backend.Release()
		k.backend = nil
	}
}
