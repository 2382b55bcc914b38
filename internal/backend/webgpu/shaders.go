package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// workgroupSize is the number of invocations per workgroup.
const workgroupSize = 256

// lrnParamsSize is the byte size of the LRNParams uniform (7 fields + pad).
const lrnParamsSize = 32

// lrnForwardShader normalizes one (batch, spatial) position per invocation.
// Bindings: input, output, scale, params.
//
// Window sums and alpha, beta, knorm are f32, so results differ from the
// reference kernel, which accumulates in float64, by float32 rounding.
const lrnForwardShader = `
struct LRNParams {
    positions: u32,
    channels: u32,
    inner: u32,
    half_window: u32,
    alpha: f32,
    beta: f32,
    knorm: f32,
    _pad: f32,
}

@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;
@group(0) @binding(2) var<storage, read_write> scale: array<f32>;
@group(0) @binding(3) var<uniform> params: LRNParams;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let pos = global_id.x;
    if (pos >= params.positions) {
        return;
    }
    let base = (pos / params.inner) * params.channels * params.inner + pos % params.inner;

    for (var c: u32 = 0u; c < params.channels; c = c + 1u) {
        var lo: u32 = 0u;
        if (c > params.half_window) {
            lo = c - params.half_window;
        }
        let hi = min(params.channels - 1u, c + params.half_window);

        var sum: f32 = 0.0;
        for (var j: u32 = lo; j <= hi; j = j + 1u) {
            let v = input[base + j * params.inner];
            sum = sum + v * v;
        }

        let idx = base + c * params.inner;
        let s = params.knorm + params.alpha * sum;
        scale[idx] = s;
        output[idx] = input[idx] * pow(s, -params.beta);
    }
}
`

// lrnBackwardShader computes the input gradient for one position per
// invocation. Bindings: grad, input, output, scale, input_grad, params.
const lrnBackwardShader = `
struct LRNParams {
    positions: u32,
    channels: u32,
    inner: u32,
    half_window: u32,
    alpha: f32,
    beta: f32,
    knorm: f32,
    _pad: f32,
}

@group(0) @binding(0) var<storage, read> grad: array<f32>;
@group(0) @binding(1) var<storage, read> input: array<f32>;
@group(0) @binding(2) var<storage, read> output: array<f32>;
@group(0) @binding(3) var<storage, read> scale: array<f32>;
@group(0) @binding(4) var<storage, read_write> input_grad: array<f32>;
@group(0) @binding(5) var<uniform> params: LRNParams;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let pos = global_id.x;
    if (pos >= params.positions) {
        return;
    }
    let base = (pos / params.inner) * params.channels * params.inner + pos % params.inner;
    let coeff = -2.0 * params.alpha * params.beta;

    for (var i: u32 = 0u; i < params.channels; i = i + 1u) {
        var lo: u32 = 0u;
        if (i > params.half_window) {
            lo = i - params.half_window;
        }
        let hi = min(params.channels - 1u, i + params.half_window);

        var sum: f32 = 0.0;
        for (var k: u32 = lo; k <= hi; k = k + 1u) {
            let kdx = base + k * params.inner;
            sum = sum + grad[kdx] * output[kdx] / scale[kdx];
        }

        let idx = base + i * params.inner;
        input_grad[idx] = grad[idx] * pow(scale[idx], -params.beta) + coeff * input[idx] * sum;
    }
}
`

// encodeLRNParams packs the LRNParams uniform.
func encodeLRNParams(shape tensor.Shape, p lrn.Param) []byte {
	outer, channels, inner := shape.SplitAxis(lrn.ChannelAxis)

	buf := make([]byte, lrnParamsSize)
	//nolint:gosec // G115: dimensions are positive ints validated by InferShape
	binary.LittleEndian.PutUint32(buf[0:4], uint32(outer*inner))
	//nolint:gosec // G115: see above
	binary.LittleEndian.PutUint32(buf[4:8], uint32(channels))
	//nolint:gosec // G115: see above
	binary.LittleEndian.PutUint32(buf[8:12], uint32(inner))
	//nolint:gosec // G115: window size is a validated positive int
	binary.LittleEndian.PutUint32(buf[12:16], uint32(p.HalfWindow()))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(float32(p.Alpha)))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(float32(p.Beta)))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(float32(p.Knorm)))
	return buf
}
