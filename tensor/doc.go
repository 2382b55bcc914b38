// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor descriptors and host buffers the Born
// LRN operator consumes.
//
// # Overview
//
// The graph engine owns tensors; operators borrow them. This package exposes:
//   - Shape and DataType descriptors used for shape/type inference
//   - Device kinds used to build an execution context
//   - RawTensor, a row-major host buffer with typed views
//
// # Basic Usage
//
//	x, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3, 1}, tensor.CPU)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := x.AsFloat32()
package tensor
