//go:build darwin || linux

package native

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Library is a loaded native LRN library.
type Library struct {
	path   string
	handle uintptr

	forward func(in, out, scale unsafe.Pointer,
		outer, channels, inner, nsize int64,
		alpha, beta, knorm float64) int32

	backward func(grad, in, out, scale, inGrad unsafe.Pointer,
		outer, channels, inner, nsize int64,
		alpha, beta float64) int32
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// Default loads the library named by LibraryPath once per process.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = Open(LibraryPath())
	})
	return defaultLib, defaultErr
}

// Open loads the library at path and resolves its LRN symbols.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("native: failed to load %s: %w", path, err)
	}

	lib := &Library{path: path, handle: handle}
	for _, sym := range []struct {
		name string
		fn   any
	}{
		{symForward, &lib.forward},
		{symBackward, &lib.backward},
	} {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("native: %s: missing symbol %s: %w", path, sym.name, err)
		}
		purego.RegisterFunc(sym.fn, addr)
	}
	return lib, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Forward calls born_lrn_forward_f32.
func (l *Library) Forward(in, out, scale []float32, outer, channels, inner int, nsize int, alpha, beta, knorm float64) error {
	status := l.forward(
		unsafe.Pointer(&in[0]), unsafe.Pointer(&out[0]), unsafe.Pointer(&scale[0]),
		int64(outer), int64(channels), int64(inner), int64(nsize),
		alpha, beta, knorm,
	)
	if status != 0 {
		return fmt.Errorf("native: %s returned status %d", symForward, status)
	}
	return nil
}

// Backward calls born_lrn_backward_f32.
func (l *Library) Backward(grad, in, out, scale, inGrad []float32, outer, channels, inner int, nsize int, alpha, beta float64) error {
	status := l.backward(
		unsafe.Pointer(&grad[0]), unsafe.Pointer(&in[0]), unsafe.Pointer(&out[0]),
		unsafe.Pointer(&scale[0]), unsafe.Pointer(&inGrad[0]),
		int64(outer), int64(channels), int64(inner), int64(nsize),
		alpha, beta,
	)
	if status != 0 {
		return fmt.Errorf("native: %s returned status %d", symBackward, status)
	}
	return nil
}
