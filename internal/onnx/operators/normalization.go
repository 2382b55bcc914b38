package operators

import (
	"fmt"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// ONNX LRN attribute defaults.
const (
	onnxLRNAlpha = 1e-4
	onnxLRNBeta  = 0.75
	onnxLRNBias  = 1.0
)

// registerNormalizationOps adds normalization operators to the registry.
func (r *Registry) registerNormalizationOps() {
	r.Register("LRN", handleLRN)
}

// LRNParamFromNode converts ONNX LRN attributes to lrn.Param.
//
// ONNX defines y = x / (bias + alpha/size * square_sum)^beta, so alpha is
// divided by size; bias maps to knorm. size is required.
func LRNParamFromNode(node *Node) (lrn.Param, error) {
	if !HasAttr(node, "size") {
		return lrn.Param{}, fmt.Errorf("LRN: required attribute size is missing: %w", lrn.ErrInvalidParam)
	}
	size := GetAttrInt(node, "size", 0)
	if size <= 0 {
		return lrn.Param{}, fmt.Errorf("LRN: size must be positive, got %d: %w", size, lrn.ErrInvalidParam)
	}

	alpha := float64(GetAttrFloat(node, "alpha", onnxLRNAlpha))
	beta := float64(GetAttrFloat(node, "beta", onnxLRNBeta))
	bias := float64(GetAttrFloat(node, "bias", onnxLRNBias))

	return lrn.NewParam(int(size), alpha/float64(size), beta, bias)
}

// handleLRN runs local response normalization on the node's single input.
func handleLRN(ctx *Context, node *Node, inputs []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("LRN requires 1 input, got %d", len(inputs))
	}
	x := inputs[0]

	p, err := LRNParamFromNode(node)
	if err != nil {
		return nil, err
	}

	op, err := ctx.factory().Create(p, []tensor.Shape{x.Shape()}, []tensor.DataType{x.DType()}, ctx.Exec)
	if err != nil {
		return nil, fmt.Errorf("LRN %s: %w", node.Name, err)
	}
	defer op.Release()

	output, _ := op.Forward(x)
	return []*tensor.RawTensor{output}, nil
}
