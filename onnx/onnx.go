// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onnx maps ONNX graph nodes onto the Born LRN operator.
//
// ONNX defines LRN with alpha divided by the window size and a bias term:
//
//	y = x / (bias + alpha/size * square_sum)^beta
//
// Node attributes are converted accordingly (bias becomes knorm), then the
// node runs through the same backend selection as lrn.CreateOperator.
//
// # Example Usage
//
//	reg := onnx.NewRegistry()
//	node := &onnx.Node{
//	    OpType: "LRN",
//	    Attributes: []onnx.Attribute{
//	        {Name: "size", Type: onnx.AttrInt, I: 5},
//	        {Name: "alpha", Type: onnx.AttrFloat, F: 1e-4},
//	    },
//	}
//	outputs, err := reg.Execute(onnx.NewContext(tensor.CPU), node, []*tensor.RawTensor{x})
//	if err != nil {
//	    log.Fatal(err)
//	}
package onnx

import (
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/onnx/operators"
	"github.com/born-ml/born-lrn/internal/operator"
	"github.com/born-ml/born-lrn/tensor"
)

// Node represents an ONNX operation node.
type Node = operators.Node

// Attribute represents a node attribute.
type Attribute = operators.Attribute

// Registry maps ONNX operator types to handlers.
type Registry = operators.Registry

// Context carries the execution context handlers run in.
type Context = operators.Context

// OpHandler processes an ONNX node and returns output tensors.
type OpHandler = operators.OpHandler

// ONNX attribute types.
const (
	AttrFloat  = operators.AttrFloat
	AttrInt    = operators.AttrInt
	AttrString = operators.AttrString
)

// NewRegistry creates a registry with every supported operator.
func NewRegistry() *Registry {
	return operators.NewRegistry()
}

// NewContext returns a handler context for device with the detected
// capabilities and the default backend registry.
func NewContext(device tensor.Device) *Context {
	return &Context{Exec: operator.DefaultContext(device)}
}

// LRNParam converts an ONNX LRN node's attributes to LRN parameters.
func LRNParam(node *Node) (lrn.Param, error) {
	return operators.LRNParamFromNode(node)
}
