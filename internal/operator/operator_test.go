package operator

import (
	"errors"
	"testing"

	"github.com/born-ml/born-lrn/internal/backend/cpu"
	"github.com/born-ml/born-lrn/internal/backend/native"
	"github.com/born-ml/born-lrn/internal/backend/webgpu"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParam(t *testing.T, nsize int, alpha, beta, knorm float64) lrn.Param {
	t.Helper()
	p, err := lrn.NewParam(nsize, alpha, beta, knorm)
	require.NoError(t, err)
	return p
}

func TestDefaultRegistry(t *testing.T) {
	var kinds []string
	for _, p := range DefaultRegistry().Providers() {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []string{webgpu.Kind, native.Kind, cpu.ReferenceKind}, kinds)

	err := DefaultRegistry().Register(cpu.Provider(parallel.Sequential()))
	assert.Error(t, err, "default registry is frozen")
}

func TestCreateOperator_Reference(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)
	shape := tensor.Shape{1, 3, 1}

	op, err := CreateOperator(p, []tensor.Shape{shape}, []tensor.DataType{tensor.Float64},
		lrn.ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	defer op.Release()

	assert.Equal(t, cpu.ReferenceKind, op.Kind())
	assert.Equal(t, p, op.Param())
	assert.Equal(t, tensor.Float64, op.DType())
	assert.Equal(t, []tensor.Shape{shape, shape}, op.OutputShapes())
	assert.Contains(t, op.String(), "via reference")

	x, err := tensor.FromFloat64([]float64{1, 2, 3}, shape, tensor.CPU)
	require.NoError(t, err)

	out, saved := op.Forward(x)
	assert.InDeltaSlice(t, []float64{1.0 / 6, 2.0 / 15, 3.0 / 14}, out.AsFloat64(), 1e-15)

	ones, err := tensor.Full(shape, tensor.Float64, tensor.CPU, 1)
	require.NoError(t, err)
	dx := op.Backward(ones, x, saved)
	assert.True(t, dx.Shape().Equal(shape))
}

func TestOperator_ShapeMismatchPanics(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)
	shape := tensor.Shape{1, 3, 4}

	op, err := CreateOperator(p, []tensor.Shape{shape}, []tensor.DataType{tensor.Float64},
		lrn.ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	defer op.Release()

	x, err := tensor.Full(shape, tensor.Float64, tensor.CPU, 1)
	require.NoError(t, err)
	big, err := tensor.Full(tensor.Shape{2, 9, 9}, tensor.Float64, tensor.CPU, 1)
	require.NoError(t, err)

	assert.PanicsWithValue(t,
		"lrn: forward: operator built for [1 3 4], got input [2 9 9]",
		func() { op.Forward(big) })

	_, saved := op.Forward(x)
	assert.Panics(t, func() { op.Backward(x, big, saved) }, "input")
	assert.Panics(t, func() { op.Backward(big, x, saved) }, "output gradient")
	assert.Panics(t, func() { op.Backward(nil, x, saved) })

	assert.NotPanics(t, func() { op.Backward(x, x, saved) })
}

func TestCreateOperator_FallsBackToReference(t *testing.T) {
	p := mustParam(t, 5, 1e-4, 0.75, 2)
	shapes := []tensor.Shape{{2, 8, 4, 4}}

	tests := []struct {
		name  string
		dtype tensor.DataType
		ctx   lrn.ExecutionContext
	}{
		{"WebGPUFloat64", tensor.Float64, lrn.ExecutionContext{Device: tensor.WebGPU, Capabilities: lrn.CapWebGPU}},
		{"NativeFloat64", tensor.Float64, lrn.ExecutionContext{Device: tensor.CPU, Capabilities: lrn.CapNative}},
		{"AllCapabilitiesFloat64", tensor.Float64, lrn.ExecutionContext{Device: tensor.CPU, Capabilities: lrn.CapWebGPU | lrn.CapNative}},
		{"NoCapabilitiesFloat32", tensor.Float32, lrn.ExecutionContext{Device: tensor.CUDA}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := CreateOperator(p, shapes, []tensor.DataType{tt.dtype}, tt.ctx)
			require.NoError(t, err)
			defer op.Release()

			assert.Equal(t, cpu.ReferenceKind, op.Kind())
			assert.Equal(t, tt.dtype, op.DType())
		})
	}
}

func TestCreateOperator_Deterministic(t *testing.T) {
	p := mustParam(t, 5, 1e-4, 0.75, 2)
	ctx := DefaultContext(tensor.CPU)

	var first string
	for i := 0; i < 5; i++ {
		op, err := CreateOperator(p, []tensor.Shape{{1, 4, 2}}, []tensor.DataType{tensor.Float32}, ctx)
		require.NoError(t, err)
		if i == 0 {
			first = op.Kind()
		}
		assert.Equal(t, first, op.Kind())
		op.Release()
	}
}

func TestCreateOperator_Errors(t *testing.T) {
	p := mustParam(t, 3, 1, 1, 1)
	ctx := lrn.ExecutionContext{Device: tensor.CPU}

	_, err := CreateOperator(p, []tensor.Shape{{4, 3}}, []tensor.DataType{tensor.Float32}, ctx)
	assert.True(t, errors.Is(err, lrn.ErrShape), "got %v", err)

	_, err = CreateOperator(p, []tensor.Shape{{1, 3, 4}}, []tensor.DataType{tensor.Int32}, ctx)
	assert.True(t, errors.Is(err, lrn.ErrType), "got %v", err)

	_, err = CreateOperator(lrn.Param{NSize: 4, Alpha: 1, Beta: 1, Knorm: 1},
		[]tensor.Shape{{1, 3, 4}}, []tensor.DataType{tensor.Float32}, ctx)
	assert.True(t, errors.Is(err, lrn.ErrInvalidParam), "got %v", err)

	_, err = CreateOperator(p, []tensor.Shape{{1, 3, 4}}, []tensor.DataType{tensor.Float32},
		lrn.ExecutionContext{Device: tensor.Device(77)})
	assert.True(t, errors.Is(err, lrn.ErrConfiguration), "got %v", err)
}

func TestFactory_NoReference(t *testing.T) {
	reg := lrn.NewRegistry()
	require.NoError(t, reg.Register(webgpu.Provider()))
	reg.Freeze()

	_, err := NewFactory(reg).Create(mustParam(t, 3, 1, 1, 1),
		[]tensor.Shape{{1, 3, 4}}, []tensor.DataType{tensor.Float64}, lrn.ExecutionContext{Device: tensor.WebGPU, Capabilities: lrn.CapWebGPU})
	assert.True(t, errors.Is(err, lrn.ErrConfiguration), "got %v", err)
}

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext(tensor.Metal)
	assert.Equal(t, tensor.Metal, ctx.Device)
	assert.Equal(t, DetectCapabilities(), ctx.Capabilities)
}
