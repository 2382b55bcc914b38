package lrn

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKernel records which provider built it.
type fakeKernel struct {
	kind  string
	dtype tensor.DataType
}

func (k *fakeKernel) Forward(input *tensor.RawTensor) (*tensor.RawTensor, *Saved) {
	return input, &Saved{Scale: input, Output: input}
}

func (k *fakeKernel) Backward(outputGrad, _ *tensor.RawTensor, _ *Saved) *tensor.RawTensor {
	return outputGrad
}

func (k *fakeKernel) Kind() string           { return k.kind }
func (k *fakeKernel) DType() tensor.DataType { return k.dtype }
func (k *fakeKernel) Release()               {}

func fakeProvider(kind string, priority int, requires Capability, types ...tensor.DataType) Provider {
	return Provider{
		Kind:     kind,
		Priority: priority,
		Requires: requires,
		Supports: func(_ tensor.Device, dtype tensor.DataType) bool {
			for _, t := range types {
				if t == dtype {
					return true
				}
			}
			return false
		},
		New: func(_ Param, dtype tensor.DataType, _ ExecutionContext) (Kernel, error) {
			return &fakeKernel{kind: kind, dtype: dtype}, nil
		},
	}
}

func failingProvider(kind string, priority int) Provider {
	p := fakeProvider(kind, priority, 0, tensor.Float32, tensor.Float64)
	p.New = func(Param, tensor.DataType, ExecutionContext) (Kernel, error) {
		return nil, errors.New("device lost")
	}
	return p
}

func testParam(t *testing.T) Param {
	t.Helper()
	p, err := NewParam(3, 1, 1, 1)
	require.NoError(t, err)
	return p
}

func newTestRegistry(t *testing.T, providers ...Provider) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, p := range providers {
		require.NoError(t, r.Register(p))
	}
	return r
}

func TestCapability(t *testing.T) {
	both := CapWebGPU | CapNative

	assert.True(t, both.Has(CapWebGPU))
	assert.True(t, both.Has(CapNative))
	assert.True(t, Capability(0).Has(0))
	assert.False(t, CapNative.Has(CapWebGPU))

	assert.Equal(t, "none", Capability(0).String())
	assert.Equal(t, "webgpu|native", both.String())
}

func TestRegistry_PriorityOrder(t *testing.T) {
	r := newTestRegistry(t,
		fakeProvider("reference", 0, 0, tensor.Float32, tensor.Float64),
		fakeProvider("accel", 200, 0, tensor.Float32),
		fakeProvider("native", 100, 0, tensor.Float32),
	)

	var kinds []string
	for _, p := range r.Providers() {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []string{"accel", "native", "reference"}, kinds)

	k, err := r.Select(testParam(t), tensor.Float32, ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	assert.Equal(t, "accel", k.Kind())
}

func TestRegistry_FallbackOnDType(t *testing.T) {
	r := newTestRegistry(t,
		fakeProvider("accel", 200, 0, tensor.Float32),
		fakeProvider("reference", 0, 0, tensor.Float32, tensor.Float64),
	)

	k, err := r.Select(testParam(t), tensor.Float64, ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	assert.Equal(t, "reference", k.Kind())
	assert.Equal(t, tensor.Float64, k.DType())
}

func TestRegistry_RequiresCapability(t *testing.T) {
	r := newTestRegistry(t,
		fakeProvider("accel", 200, CapWebGPU, tensor.Float32),
		fakeProvider("reference", 0, 0, tensor.Float32),
	)
	p := testParam(t)

	k, err := r.Select(p, tensor.Float32, ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	assert.Equal(t, "reference", k.Kind())

	k, err = r.Select(p, tensor.Float32, ExecutionContext{Device: tensor.CPU, Capabilities: CapWebGPU})
	require.NoError(t, err)
	assert.Equal(t, "accel", k.Kind())
}

func TestRegistry_ConstructorErrorFallsThrough(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRegistry(t,
		failingProvider("accel", 200),
		fakeProvider("reference", 0, 0, tensor.Float32),
	)
	r.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	k, err := r.Select(testParam(t), tensor.Float32, ExecutionContext{Device: tensor.CPU})
	require.NoError(t, err)
	assert.Equal(t, "reference", k.Kind())
	assert.Contains(t, logs.String(), "device lost")
	assert.Contains(t, logs.String(), "backend=reference")
}

func TestRegistry_ConfigurationError(t *testing.T) {
	p := testParam(t)

	t.Run("NoEligibleProvider", func(t *testing.T) {
		r := newTestRegistry(t, fakeProvider("accel", 200, 0, tensor.Float32))
		_, err := r.Select(p, tensor.Float64, ExecutionContext{Device: tensor.CPU})
		assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	})

	t.Run("AllConstructorsFail", func(t *testing.T) {
		r := newTestRegistry(t, failingProvider("a", 1), failingProvider("b", 0))
		_, err := r.Select(p, tensor.Float32, ExecutionContext{Device: tensor.CPU})
		assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewRegistry().Select(p, tensor.Float32, ExecutionContext{Device: tensor.CPU})
		assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	})

	t.Run("UnknownDevice", func(t *testing.T) {
		r := newTestRegistry(t, fakeProvider("reference", 0, 0, tensor.Float32))
		_, err := r.Select(p, tensor.Float32, ExecutionContext{Device: tensor.Device(42)})
		assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	})

	t.Run("InvalidParam", func(t *testing.T) {
		r := newTestRegistry(t, fakeProvider("reference", 0, 0, tensor.Float32))
		_, err := r.Select(Param{NSize: 2, Alpha: 1, Beta: 1, Knorm: 1}, tensor.Float32, ExecutionContext{Device: tensor.CPU})
		assert.True(t, errors.Is(err, ErrInvalidParam), "got %v", err)
	})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(fakeProvider("reference", 0, 0, tensor.Float32)))

	assert.Error(t, r.Register(fakeProvider("reference", 5, 0, tensor.Float32)), "duplicate kind")
	assert.Error(t, r.Register(Provider{Kind: "incomplete"}), "missing Supports and New")

	r.Freeze()
	assert.Error(t, r.Register(fakeProvider("late", 10, 0, tensor.Float32)), "frozen registry")
	assert.Len(t, r.Providers(), 1)
}

func TestRegistry_Deterministic(t *testing.T) {
	r := newTestRegistry(t,
		fakeProvider("a", 10, 0, tensor.Float32),
		fakeProvider("b", 10, 0, tensor.Float32),
		fakeProvider("c", 0, 0, tensor.Float32),
	)
	r.Freeze()
	p := testParam(t)
	ctx := ExecutionContext{Device: tensor.CPU}

	var wg sync.WaitGroup
	kinds := make([]string, 32)
	for i := range kinds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k, err := r.Select(p, tensor.Float32, ctx)
			if err == nil {
				kinds[i] = k.Kind()
			}
		}(i)
	}
	wg.Wait()

	for _, kind := range kinds {
		assert.Equal(t, "a", kind, "equal priorities keep registration order")
	}
}
