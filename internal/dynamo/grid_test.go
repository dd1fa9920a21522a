package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepSize(t *testing.T) {
	h, err := StepSize([]float64{0, 0.5, 1.0, 1.5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, h)
}

func TestStepSize_Negative(t *testing.T) {
	h, err := StepSize([]float64{3, 2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, -1.0, h)
}

func TestStepSize_LargeOffset(t *testing.T) {
	grid, err := Linspace(1e9, 1e9+10, 1001)
	require.NoError(t, err)

	h, err := StepSize(grid)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, h, 1e-6)

	_, err = StepSize([]float64{1e9, 1e9 + 1, 1e9 + 3})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestStepSize_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		grid  []float64
		index int
	}{
		{"nil", nil, -1},
		{"empty", []float64{}, -1},
		{"single", []float64{1.0}, -1},
		{"zero spacing", []float64{1.0, 1.0, 1.0}, 1},
		{"non-uniform", []float64{0, 1, 3}, 2},
		{"reversed tail", []float64{0, 1, 2, 1}, 3},
		{"nan", []float64{0, math.NaN(), 2}, 1},
		{"inf", []float64{0, 1, math.Inf(1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StepSize(tt.grid)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGrid))

			var gridErr *InvalidGridError
			require.True(t, errors.As(err, &gridErr))
			assert.Equal(t, tt.index, gridErr.Index)
			assert.Equal(t, len(tt.grid), gridErr.Len)
		})
	}
}

func TestStepSize_RoundingTolerated(t *testing.T) {
	grid, err := Linspace(0, 10, 1000)
	require.NoError(t, err)

	h, err := StepSize(grid)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/999.0, h, 1e-12)
}

func TestLinspace(t *testing.T) {
	grid, err := Linspace(0, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, grid)

	_, err = Linspace(0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Linspace(2, 2, 5)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestInvalidGridError_Message(t *testing.T) {
	err := &InvalidGridError{Len: 1, Index: -1, Reason: "need at least 2 points"}
	assert.Equal(t, "dynamo: invalid time grid: need at least 2 points (len=1)", err.Error())

	err = &InvalidGridError{Len: 3, Index: 2, Reason: "non-uniform spacing"}
	assert.Contains(t, err.Error(), "at index 2")
}
