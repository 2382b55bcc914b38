package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// LRNBackward computes the gradient w.r.t. the LRN input.
//
// b[k] depends on a[i] directly when k == i and through scale[k] whenever
// i lies in window(k). Windows are symmetric, so i ∈ window(k) exactly when
// k ∈ window(i), and:
//
//	da[i] = g[i] / scale[i]^beta
//	      - 2*alpha*beta * a[i] * Σ_{k∈window(i)} g[k] * b[k] / scale[k]
//
// where g = dL/db, b is the forward output and scale the forward scale.
func (cpu *CPUBackend) LRNBackward(grad, input, output, scale *tensor.RawTensor, p lrn.Param) *tensor.RawTensor {
	shape := input.Shape()
	for _, t := range []*tensor.RawTensor{grad, output, scale} {
		if !t.Shape().Equal(shape) {
			panic(fmt.Sprintf("lrn backward: shape %v does not match input %v", t.Shape(), shape))
		}
	}

	inputGrad, err := tensor.NewRaw(shape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("lrn backward: failed to create gradient tensor: %v", err))
	}

	outer, channels, inner := shape.SplitAxis(lrn.ChannelAxis)

	switch input.DType() {
	case tensor.Float32:
		lrnBackward(grad.AsFloat32(), input.AsFloat32(), output.AsFloat32(), scale.AsFloat32(),
			inputGrad.AsFloat32(), outer, channels, inner, p, cpu.cfg)
	case tensor.Float64:
		lrnBackward(grad.AsFloat64(), input.AsFloat64(), output.AsFloat64(), scale.AsFloat64(),
			inputGrad.AsFloat64(), outer, channels, inner, p, cpu.cfg)
	default:
		panic(fmt.Sprintf("lrn backward: unsupported dtype %s", input.DType()))
	}

	return inputGrad
}

func lrnBackward[T float](grad, in, out, scale, inGrad []T, outer, channels, inner int, p lrn.Param, cfg parallel.Config) {
	half := p.HalfWindow()
	coeff := -2 * p.Alpha * p.Beta

	parallel.ForRange(outer*inner, func(start, end int) {
		ratio := make([]float64, channels)
		sums := make([]float64, channels)

		for pos := start; pos < end; pos++ {
			base := (pos/inner)*channels*inner + pos%inner

			for k := 0; k < channels; k++ {
				idx := base + k*inner
				ratio[k] = float64(grad[idx]) * float64(out[idx]) / float64(scale[idx])
			}
			windowSums(sums, ratio, half)

			for i := 0; i < channels; i++ {
				idx := base + i*inner
				s := float64(scale[idx])
				direct := float64(grad[idx]) * math.Pow(s, -p.Beta)
				inGrad[idx] = T(direct + coeff*float64(in[idx])*sums[i])
			}
		}
	}, cfg)
}
