package operator

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// Operator is a validated LRN instance bound to one kernel.
//
// An Operator may run forward passes for different examples concurrently;
// each call returns its own lrn.Saved. Backward for an example must follow
// the forward that produced its Saved.
type Operator struct {
	param        lrn.Param
	dtype        tensor.DataType
	ctx          lrn.ExecutionContext
	outputShapes []tensor.Shape
	kernel       lrn.Kernel
}

// Factory builds operators from a provider registry.
type Factory struct {
	registry *lrn.Registry
}

// NewFactory creates a factory selecting kernels from registry.
func NewFactory(registry *lrn.Registry) *Factory {
	return &Factory{registry: registry}
}

// Create validates the input shapes and types, then selects a kernel for
// (dtype, ctx).
//
// Errors wrap lrn.ErrInvalidParam, lrn.ErrShape, lrn.ErrType or
// lrn.ErrConfiguration.
func (f *Factory) Create(p lrn.Param, shapes []tensor.Shape, types []tensor.DataType, ctx lrn.ExecutionContext) (*Operator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	outShapes, outTypes, err := lrn.Infer(shapes, types)
	if err != nil {
		return nil, err
	}

	kernel, err := f.registry.Select(p, outTypes[lrn.OutputData], ctx)
	if err != nil {
		return nil, err
	}

	return &Operator{
		param:        p,
		dtype:        outTypes[lrn.OutputData],
		ctx:          ctx,
		outputShapes: outShapes,
		kernel:       kernel,
	}, nil
}

// CreateOperator builds an operator with the default registry.
//
// Example:
//
//	p, _ := lrn.NewParam(5, 1e-4, 0.75, 2)
//	op, err := operator.CreateOperator(p,
//	    []tensor.Shape{{8, 64, 28, 28}}, []tensor.DataType{tensor.Float32},
//	    operator.DefaultContext(tensor.CPU))
//	if err != nil {
//	    return err
//	}
//	defer op.Release()
//	out, saved := op.Forward(x)
func CreateOperator(p lrn.Param, shapes []tensor.Shape, types []tensor.DataType, ctx lrn.ExecutionContext) (*Operator, error) {
	return NewFactory(DefaultRegistry()).Create(p, shapes, types, ctx)
}

// Forward normalizes input and returns the output and the intermediates
// Backward needs. It panics if input does not have the shape the operator
// was created for.
func (op *Operator) Forward(input *tensor.RawTensor) (*tensor.RawTensor, *lrn.Saved) {
	op.checkShape("forward", "input", input)
	return op.kernel.Forward(input)
}

// Backward returns dL/d(input). It panics if input or outputGrad does not
// have the shape the operator was created for.
func (op *Operator) Backward(outputGrad, input *tensor.RawTensor, saved *lrn.Saved) *tensor.RawTensor {
	op.checkShape("backward", "input", input)
	op.checkShape("backward", "output gradient", outputGrad)
	return op.kernel.Backward(outputGrad, input, saved)
}

func (op *Operator) checkShape(pass, name string, t *tensor.RawTensor) {
	want := op.outputShapes[lrn.OutputData]
	if t == nil {
		panic(fmt.Sprintf("lrn: %s: nil %s", pass, name))
	}
	if !t.Shape().Equal(want) {
		panic(fmt.Sprintf("lrn: %s: operator built for %v, got %s %v", pass, want, name, t.Shape()))
	}
}

// Kind names the backend serving the operator.
func (op *Operator) Kind() string {
	return op.kernel.Kind()
}

// Param returns the operator's parameters.
func (op *Operator) Param() lrn.Param {
	return op.param
}

// DType returns the element type the operator is bound to.
func (op *Operator) DType() tensor.DataType {
	return op.dtype
}

// Context returns the execution context the kernel was selected for.
func (op *Operator) Context() lrn.ExecutionContext {
	return op.ctx
}

// OutputShapes returns the inferred shapes: the visible output followed by
// the cached scale.
func (op *Operator) OutputShapes() []tensor.Shape {
	out := make([]tensor.Shape, len(op.outputShapes))
	for i, s := range op.outputShapes {
		out[i] = s.Clone()
	}
	return out
}

// Release frees the kernel's backend resources.
func (op *Operator) Release() {
	if op.kernel != nil {
		op.kernel.Release()
	}
}

// String describes the operator.
func (op *Operator) String() string {
	return fmt.Sprintf("%s(%s) %s on %s via %s", lrn.OpName, op.param, op.dtype, op.ctx, op.Kind())
}
