package native

import (
	"path/filepath"
	"testing"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryPath(t *testing.T) {
	t.Setenv(EnvLibrary, "")
	assert.Equal(t, DefaultLibrary, LibraryPath())

	t.Setenv(EnvLibrary, "/opt/born/libbornlrn.so")
	assert.Equal(t, "/opt/born/libbornlrn.so", LibraryPath())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "libmissing.so"))
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	prov := Provider()

	assert.Equal(t, Kind, prov.Kind)
	assert.Equal(t, Priority, prov.Priority)
	assert.Equal(t, lrn.CapNative, prov.Requires)

	assert.True(t, prov.Supports(tensor.CPU, tensor.Float32))
	assert.False(t, prov.Supports(tensor.CPU, tensor.Float64), "float64 falls through")
	assert.False(t, prov.Supports(tensor.CUDA, tensor.Float32), "host memory only")
	assert.False(t, prov.Supports(tensor.WebGPU, tensor.Float32))
}

func TestNewLRNKernel(t *testing.T) {
	p, err := lrn.NewParam(5, 1e-4, 0.75, 2)
	require.NoError(t, err)

	_, err = NewLRNKernel(nil, p, tensor.Float64)
	assert.Error(t, err)

	k, err := NewLRNKernel(nil, p, tensor.Float32)
	require.NoError(t, err)
	assert.Equal(t, Kind, k.Kind())
	assert.Equal(t, tensor.Float32, k.DType())
}
