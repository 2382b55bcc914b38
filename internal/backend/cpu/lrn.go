package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
)

type float interface {
	~float32 | ~float64
}

// LRN performs local response normalization across axis 1.
//
// Input shape:  [batch, channels, spatial...]
// Output shape: same as input
//
// For every (batch, spatial) position and channel i:
//
//	scale[i] = knorm + alpha * Σ_{j∈window(i)} a[j]²
//	b[i]     = a[i] / scale[i]^beta
//
// Returns the output and scale tensors. The scale is kept for LRNBackward.
//
// Example (n=3, alpha=beta=knorm=1, one position, a=[1,2,3]):
//
//	scale = [6, 15, 14]
//	b     = [1/6, 2/15, 3/14]
func (cpu *CPUBackend) LRN(input *tensor.RawTensor, p lrn.Param) (output, scale *tensor.RawTensor) {
	shape := input.Shape()
	if shape.Rank() < lrn.MinRank {
		panic(fmt.Sprintf("lrn: expected input [N,C,...] with rank >= %d, got %v", lrn.MinRank, shape))
	}

	var err error
	output, err = tensor.NewRaw(shape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("lrn: failed to create output: %v", err))
	}
	scale, err = tensor.NewRaw(shape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("lrn: failed to create scale: %v", err))
	}

	outer, channels, inner := shape.SplitAxis(lrn.ChannelAxis)

	switch input.DType() {
	case tensor.Float32:
		lrnForward(input.AsFloat32(), output.AsFloat32(), scale.AsFloat32(), outer, channels, inner, p, cpu.cfg)
	case tensor.Float64:
		lrnForward(input.AsFloat64(), output.AsFloat64(), scale.AsFloat64(), outer, channels, inner, p, cpu.cfg)
	default:
		panic(fmt.Sprintf("lrn: unsupported dtype %s", input.DType()))
	}

	return output, scale
}

// lrnForward normalizes every (outer, inner) position. Each worker chunk
// owns its scratch columns; positions are independent of each other.
func lrnForward[T float](in, out, scale []T, outer, channels, inner int, p lrn.Param, cfg parallel.Config) {
	half := p.HalfWindow()

	parallel.ForRange(outer*inner, func(start, end int) {
		squares := make([]float64, channels)
		sums := make([]float64, channels)

		for pos := start; pos < end; pos++ {
			base := (pos/inner)*channels*inner + pos%inner

			for c := 0; c < channels; c++ {
				v := float64(in[base+c*inner])
				squares[c] = v * v
			}
			windowSums(sums, squares, half)

			for c := 0; c < channels; c++ {
				idx := base + c*inner
				s := p.Knorm + p.Alpha*sums[c]
				scale[idx] = T(s)
				out[idx] = T(float64(in[idx]) * math.Pow(s, -p.Beta))
			}
		}
	}, cfg)
}

// windowSums writes dst[c] = Σ src[j] over the clipped window
// [max(0, c-half), min(len-1, c+half)]. Each window is summed on its own,
// so a large element never leaks into windows that exclude it.
func windowSums(dst, src []float64, half int) {
	n := len(src)
	for c := 0; c < n; c++ {
		var sum float64
		for j := max(0, c-half); j <= min(n-1, c+half); j++ {
			sum += src[j]
		}
		dst[c] = sum
	}
}
