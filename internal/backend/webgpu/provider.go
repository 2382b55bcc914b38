// Package webgpu implements the WebGPU accelerator backend for the LRN
// operator. Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// WebGPU bindings; on platforms without them the provider always falls
// through.
package webgpu

import (
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// Kind names the WebGPU backend in the provider registry.
const Kind = "webgpu"

// Priority ranks the accelerator above every CPU backend.
const Priority = 200

// SupportedTypes is the set of element types the shaders implement.
var SupportedTypes = []tensor.DataType{tensor.Float32}

func supports(device tensor.Device, dtype tensor.DataType) bool {
	if device != tensor.WebGPU {
		return false
	}
	for _, t := range SupportedTypes {
		if t == dtype {
			return true
		}
	}
	return false
}

// Provider returns the WebGPU provider. It is eligible only for WebGPU
// contexts advertising lrn.CapWebGPU and for types in SupportedTypes;
// anything else falls through to the next provider.
func Provider() lrn.Provider {
	return lrn.Provider{
		Kind:     Kind,
		Priority: Priority,
		Requires: lrn.CapWebGPU,
		Supports: supports,
		New:      newKernel,
	}
}
