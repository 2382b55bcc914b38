// Package native implements the vendor math library backend: a shared
// library loaded at runtime with purego (no cgo) that exports the LRN
// kernels through a plain C ABI:
//
//	int32_t born_lrn_forward_f32(const float *in, float *out, float *scale,
//	        int64_t outer, int64_t channels, int64_t inner, int64_t nsize,
//	        double alpha, double beta, double knorm);
//
//	int32_t born_lrn_backward_f32(const float *grad, const float *in,
//	        const float *out, const float *scale, float *in_grad,
//	        int64_t outer, int64_t channels, int64_t inner, int64_t nsize,
//	        double alpha, double beta);
//
// Both return 0 on success. Tensors are contiguous row-major
// [outer, channels, inner] blocks; the library must implement the same
// clipped-window semantics as the reference kernel.
//
// The library path is taken from the BORN_LRN_NATIVE_LIB environment
// variable and defaults to libbornlrn.so on the loader search path.
package native

import (
	"os"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// Kind names the native backend in the provider registry.
const Kind = "native"

// Priority ranks the native library between the accelerator and the
// reference kernel.
const Priority = 100

// EnvLibrary is the environment variable naming the library path.
const EnvLibrary = "BORN_LRN_NATIVE_LIB"

// DefaultLibrary is loaded when EnvLibrary is unset.
const DefaultLibrary = "libbornlrn.so"

// Exported symbol names.
const (
	symForward  = "born_lrn_forward_f32"
	symBackward = "born_lrn_backward_f32"
)

// SupportedTypes is the set of element types the library ABI covers.
// Other types fall through to the next provider.
var SupportedTypes = []tensor.DataType{tensor.Float32}

// LibraryPath returns the library path from the environment.
func LibraryPath() string {
	if path := os.Getenv(EnvLibrary); path != "" {
		return path
	}
	return DefaultLibrary
}

func supports(device tensor.Device, dtype tensor.DataType) bool {
	if device != tensor.CPU {
		return false
	}
	for _, t := range SupportedTypes {
		if t == dtype {
			return true
		}
	}
	return false
}

// Provider returns the native provider. It is eligible only for CPU
// contexts advertising lrn.CapNative and for types in SupportedTypes.
func Provider() lrn.Provider {
	return lrn.Provider{
		Kind:     Kind,
		Priority: Priority,
		Requires: lrn.CapNative,
		Supports: supports,
		New: func(p lrn.Param, dtype tensor.DataType, _ lrn.ExecutionContext) (lrn.Kernel, error) {
			lib, err := Default()
			if err != nil {
				return nil, err
			}
			return NewLRNKernel(lib, p, dtype)
		},
	}
}

// IsAvailable reports whether the default library loads.
func IsAvailable() bool {
	_, err := Default()
	return err == nil
}
