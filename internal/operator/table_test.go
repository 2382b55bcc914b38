package operator

import (
	"errors"
	"testing"

	"github.com/born-ml/born-lrn/internal/backend/cpu"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	e, ok := Lookup("LRN")
	require.True(t, ok)
	assert.Equal(t, "LRN", e.Schema.Name)
	assert.Equal(t, []string{"LRN"}, Names())

	_, ok = Lookup("BatchNorm")
	assert.False(t, ok)
}

func TestCreate_FromKwargs(t *testing.T) {
	ctx := lrn.ExecutionContext{Device: tensor.CPU}
	shapes := []tensor.Shape{{1, 3, 1}}
	types := []tensor.DataType{tensor.Float32}

	op, err := Create("LRN", map[string]string{"nsize": "3", "alpha": "1", "beta": "1", "knorm": "1"}, shapes, types, ctx)
	require.NoError(t, err)
	defer op.Release()

	assert.Equal(t, cpu.ReferenceKind, op.Kind())
	assert.Equal(t, lrn.Param{NSize: 3, Alpha: 1, Beta: 1, Knorm: 1}, op.Param())

	_, err = Create("LRN", map[string]string{"alpha": "1"}, shapes, types, ctx)
	assert.True(t, errors.Is(err, lrn.ErrInvalidParam), "got %v", err)

	_, err = Create("Unknown", nil, shapes, types, ctx)
	assert.Error(t, err)
}
