package autodiff

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/autodiff/ops"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations, tape.Record(op) ...
//	gradients := tape.Backward(outputGrad)
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 16),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients for all inputs by walking the tape in reverse.
// outputGrad seeds the gradient of the last recorded operation's output.
// Gradients reaching the same tensor from several operations are summed.
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) Backward(outputGrad *tensor.RawTensor) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	grads[t.operations[len(t.operations)-1].Output()] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		grad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		for j, inputGrad := range op.Backward(grad) {
			if inputGrad == nil || j >= len(op.Inputs()) {
				continue
			}
			input := op.Inputs()[j]
			if existing, seen := grads[input]; seen {
				grads[input] = accumulate(existing, inputGrad)
			} else {
				grads[input] = inputGrad
			}
		}
	}

	return grads
}

// accumulate returns a + b for floating point tensors of equal shape.
func accumulate(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) || a.DType() != b.DType() {
		panic(fmt.Sprintf("backward: cannot accumulate %s%v into %s%v", b.DType(), b.Shape(), a.DType(), a.Shape()))
	}
	sum := a.Clone()
	switch a.DType() {
	case tensor.Float32:
		dst, src := sum.AsFloat32(), b.AsFloat32()
		for i := range dst {
			dst[i] += src[i]
		}
	case tensor.Float64:
		dst, src := sum.AsFloat64(), b.AsFloat64()
		for i := range dst {
			dst[i] += src[i]
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s", a.DType()))
	}
	return sum
}
