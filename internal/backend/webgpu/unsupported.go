//go:build !windows

package webgpu

import (
	"errors"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// ErrUnsupported reports that the WebGPU backend is not built for this platform.
var ErrUnsupported = errors.New("webgpu: not supported on this platform")

// IsAvailable reports false: the go-webgpu bindings are built for windows only.
func IsAvailable() bool {
	return false
}

func newKernel(lrn.Param, tensor.DataType, lrn.ExecutionContext) (lrn.Kernel, error) {
	return nil, ErrUnsupported
}
