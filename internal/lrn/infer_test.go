package lrn

import (
	"errors"
	"testing"

	"github.com/born-ml/born-lrn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferShape(t *testing.T) {
	t.Run("PreservesShape", func(t *testing.T) {
		in := tensor.Shape{2, 16, 7, 7}
		out, err := InferShape([]tensor.Shape{in})
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, in, out[OutputData])
		assert.Equal(t, in, out[OutputScale])

		// Outputs must not alias the input.
		out[OutputData][0] = 99
		assert.Equal(t, 2, in[0])
	})

	t.Run("RankThree", func(t *testing.T) {
		_, err := InferShape([]tensor.Shape{{1, 3, 5}})
		assert.NoError(t, err)
	})

	errorCases := map[string][]tensor.Shape{
		"NoInputs":    nil,
		"TwoInputs":   {{1, 3, 4}, {1, 3, 4}},
		"RankTwo":     {{4, 3}},
		"RankOne":     {{3}},
		"ZeroDim":     {{1, 0, 4}},
		"NegativeDim": {{1, 3, -1}},
	}
	for name, shapes := range errorCases {
		t.Run(name, func(t *testing.T) {
			_, err := InferShape(shapes)
			assert.True(t, errors.Is(err, ErrShape), "got %v", err)
		})
	}
}

func TestInferType(t *testing.T) {
	for _, dt := range []tensor.DataType{tensor.Float32, tensor.Float64} {
		out, err := InferType([]tensor.DataType{dt})
		require.NoError(t, err)
		assert.Equal(t, []tensor.DataType{dt, dt}, out)
	}

	for _, dt := range []tensor.DataType{tensor.Int32, tensor.Int64, tensor.Uint8, tensor.Bool} {
		_, err := InferType([]tensor.DataType{dt})
		assert.True(t, errors.Is(err, ErrType), "%s: got %v", dt, err)
	}

	_, err := InferType([]tensor.DataType{tensor.Float32, tensor.Float32})
	assert.True(t, errors.Is(err, ErrType))
}

func TestInfer(t *testing.T) {
	shapes, types, err := Infer([]tensor.Shape{{1, 3, 2}}, []tensor.DataType{tensor.Float64})
	require.NoError(t, err)
	assert.Len(t, shapes, 2)
	assert.Len(t, types, 2)

	_, _, err = Infer([]tensor.Shape{{3}}, []tensor.DataType{tensor.Float64})
	assert.True(t, errors.Is(err, ErrShape))

	_, _, err = Infer([]tensor.Shape{{1, 3, 2}}, []tensor.DataType{tensor.Int32})
	assert.True(t, errors.Is(err, ErrType))
}
