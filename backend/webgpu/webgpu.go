// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu reports on the WebGPU accelerator backend of the LRN
// operator.
//
// WebGPU kernels are never constructed directly: the operator selects them
// for contexts on the WebGPU device that advertise lrn.CapWebGPU, and falls
// back to the reference kernel otherwise.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    ctx := lrn.ExecutionContext{Device: tensor.WebGPU, Capabilities: lrn.CapWebGPU}
//	    op, err := lrn.CreateOperator(p, shapes, types, ctx)
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/born-lrn/internal/backend/webgpu"
	"github.com/born-ml/born-lrn/tensor"
)

// Kind names the WebGPU backend, as reported by Operator.Kind.
const Kind = internalwebgpu.Kind

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify
// that a compatible GPU and drivers are present. It always reports false
// on platforms the bindings are not built for.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// SupportedTypes returns the element types the WebGPU kernels implement.
func SupportedTypes() []tensor.DataType {
	return append([]tensor.DataType(nil), internalwebgpu.SupportedTypes...)
}
