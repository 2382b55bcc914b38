//go:build windows

package webgpu

import (
	"math/rand"
	"testing"

	"github.com/born-ml/born-lrn/internal/backend/cpu"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	t.Logf("WebGPU available: %v", IsAvailable())
}

func newTestKernel(t *testing.T, p lrn.Param) lrn.Kernel {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	k, err := Provider().New(p, tensor.Float32, lrn.ExecutionContext{Device: tensor.WebGPU, Capabilities: lrn.CapWebGPU})
	if err != nil {
		t.Skipf("WebGPU kernel unavailable: %v", err)
	}
	t.Cleanup(k.Release)
	return k
}

func TestLRN_MatchesReference(t *testing.T) {
	p, err := lrn.NewParam(5, 1e-2, 0.75, 2)
	require.NoError(t, err)
	k := newTestKernel(t, p)

	shape := tensor.Shape{2, 16, 5, 5}
	rng := rand.New(rand.NewSource(1))
	x, err := tensor.Randn(shape, tensor.Float32, tensor.WebGPU, rng)
	require.NoError(t, err)
	g, err := tensor.Randn(shape, tensor.Float32, tensor.WebGPU, rng)
	require.NoError(t, err)

	ref := cpu.New()
	wantOut, wantScale := ref.LRN(x, p)
	wantGrad := ref.LRNBackward(g, x, wantOut, wantScale, p)

	out, saved := k.Forward(x)
	assert.Equal(t, Kind, k.Kind())
	assert.Equal(t, tensor.WebGPU, out.Device())
	assert.InDeltaSlice(t, wantOut.Float64s(), out.Float64s(), f32Tolerance)
	assert.InDeltaSlice(t, wantScale.Float64s(), saved.Scale.Float64s(), f32Tolerance)

	grad := k.Backward(g, x, saved)
	assert.InDeltaSlice(t, wantGrad.Float64s(), grad.Float64s(), f32Tolerance)
}

func TestLRN_NumericExample(t *testing.T) {
	p, err := lrn.NewParam(3, 1, 1, 1)
	require.NoError(t, err)
	k := newTestKernel(t, p)

	x, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3, 1}, tensor.WebGPU)
	require.NoError(t, err)

	out, _ := k.Forward(x)
	assert.InDeltaSlice(t, []float64{1.0 / 6, 2.0 / 15, 3.0 / 14}, out.Float64s(), 1e-6)
}

func TestScratchPoolReuse(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	backend, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	defer backend.Release()

	p, err := lrn.DefaultParam(5)
	require.NoError(t, err)
	x, err := tensor.Randn(tensor.Shape{1, 8, 4}, tensor.Float32, tensor.WebGPU, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := backend.LRN(x, p)
		require.NoError(t, err)
	}

	hits, misses, idle := backend.PoolStats()
	assert.Equal(t, uint64(2), misses, "output and scale buffers allocated once")
	assert.Equal(t, uint64(4), hits)
	assert.Equal(t, 2, idle)
}
