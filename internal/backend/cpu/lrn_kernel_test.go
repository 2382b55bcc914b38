package cpu

import (
	"testing"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestProvider(t *testing.T) {
	prov := Provider(parallel.DefaultConfig())

	assert.Equal(t, ReferenceKind, prov.Kind)
	assert.Equal(t, 0, prov.Priority)
	assert.Equal(t, lrn.Capability(0), prov.Requires)

	for _, dev := range []tensor.Device{tensor.CPU, tensor.CUDA, tensor.Vulkan, tensor.Metal, tensor.WebGPU} {
		assert.True(t, prov.Supports(dev, tensor.Float32), "%s float32", dev)
		assert.True(t, prov.Supports(dev, tensor.Float64), "%s float64", dev)
		assert.False(t, prov.Supports(dev, tensor.Int32), "%s int32", dev)
	}
	assert.False(t, prov.Supports(tensor.Device(99), tensor.Float32))
}

func TestLRNKernel_ForwardBackward(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)
	k, err := NewLRNKernel(p, tensor.Float64, tensor.Metal, parallel.Sequential())
	require.NoError(t, err)
	defer k.Release()

	assert.Equal(t, ReferenceKind, k.Kind())
	assert.Equal(t, tensor.Float64, k.DType())

	x, err := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{1, 3, 1}, tensor.Metal)
	require.NoError(t, err)

	out, saved := k.Forward(x)
	require.NotNil(t, saved)
	assert.Same(t, out, saved.Output)
	assert.Equal(t, tensor.Metal, out.Device())
	assert.Equal(t, []float64{6, 15, 14}, saved.Scale.AsFloat64())

	ones, err := tensor.Full(x.Shape(), tensor.Float64, tensor.Metal, 1)
	require.NoError(t, err)
	dx := k.Backward(ones, x, saved)
	assert.True(t, dx.Shape().Equal(x.Shape()))
}

func TestLRNKernel_Errors(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)

	_, err := NewLRNKernel(p, tensor.Int32, tensor.CPU, parallel.Sequential())
	assert.Error(t, err)

	_, err = NewLRNKernel(lrn.Param{NSize: 2, Alpha: 1, Beta: 1, Knorm: 1}, tensor.Float32, tensor.CPU, parallel.Sequential())
	assert.Error(t, err)
}

func TestLRNKernel_ContractViolations(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)
	k, err := NewLRNKernel(p, tensor.Float32, tensor.CPU, parallel.Sequential())
	require.NoError(t, err)

	x64, err := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{1, 3, 1}, tensor.CPU)
	require.NoError(t, err)
	assert.Panics(t, func() { k.Forward(x64) }, "dtype mismatch")

	x, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3, 1}, tensor.CPU)
	require.NoError(t, err)
	_, saved := k.Forward(x)

	assert.Panics(t, func() { k.Backward(x, x, nil) }, "missing saved")

	other, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 1, 3}, tensor.CPU)
	require.NoError(t, err)
	assert.Panics(t, func() { k.Backward(other, x, saved) }, "shape mismatch")
}
