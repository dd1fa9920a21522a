package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forward is a plain Euler step so the driver can be tested without
// importing the integrators package.
type forward struct{}

func (forward) Step(f Func, x, t, h float64) float64 { return x + h*f(x, t) }
func (forward) Name() string                         { return "forward" }
func (forward) Order() int                           { return 1 }
func (forward) Stages() int                          { return 1 }

func TestIntegrate(t *testing.T) {
	grid := []float64{0, 1, 2, 3}
	x, err := Integrate(forward{}, func(x, t float64) float64 { return 1 }, 0, grid)
	require.NoError(t, err)
	assert.Equal(t, Trajectory{0, 1, 2, 3}, x)
}

func TestIntegrate_UsesPreviousPoint(t *testing.T) {
	var seen []float64
	f := func(x, t float64) float64 {
		seen = append(seen, t)
		return 0
	}

	_, err := Integrate(forward{}, f, 1, []float64{0, 0.5, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5}, seen)
}

func TestIntegrate_InvalidGridSkipsEvaluation(t *testing.T) {
	called := false
	f := func(x, t float64) float64 {
		called = true
		return x
	}

	for _, grid := range [][]float64{nil, {0}, {1, 1}} {
		x, err := Integrate(forward{}, f, 1, grid)
		assert.ErrorIs(t, err, ErrInvalidGrid)
		assert.Nil(t, x)
	}
	assert.False(t, called)
}

func TestIntegrate_NilArguments(t *testing.T) {
	_, err := Integrate(nil, func(x, t float64) float64 { return 0 }, 0, []float64{0, 1})
	assert.ErrorIs(t, err, ErrNilStepper)

	_, err = Integrate(forward{}, nil, 0, []float64{0, 1})
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestIntegrate_NaNPropagates(t *testing.T) {
	f := func(x, t float64) float64 {
		if t >= 1 {
			return math.NaN()
		}
		return 1
	}
	x, err := Integrate(forward{}, f, 0, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, x[1])
	assert.True(t, math.IsNaN(x[2]))
	assert.True(t, math.IsNaN(x[3]))
}

func TestIntegrate_PanicPropagates(t *testing.T) {
	f := func(x, t float64) float64 { panic("boom") }
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = Integrate(forward{}, f, 0, []float64{0, 1})
	})
}

func TestIntegrateE(t *testing.T) {
	f := func(x, t float64) (float64, error) { return -x, nil }
	x, err := IntegrateE(forward{}, f, 1, []float64{0, 0.5, 1.0})
	require.NoError(t, err)
	assert.Equal(t, Trajectory{1, 0.5, 0.25}, x)
}

func TestIntegrateE_ErrorReturnedUnchanged(t *testing.T) {
	errDomain := errors.New("log of negative")
	calls := 0
	f := func(x, t float64) (float64, error) {
		calls++
		if t >= 2 {
			return 0, errDomain
		}
		return 1, nil
	}

	x, err := IntegrateE(forward{}, f, 0, []float64{0, 1, 2, 3, 4})
	assert.Same(t, errDomain, err)
	assert.Nil(t, x)
	assert.Equal(t, 3, calls)
}

func TestIntegrateE_InvalidGrid(t *testing.T) {
	f := func(x, t float64) (float64, error) { return 0, nil }
	_, err := IntegrateE(forward{}, f, 0, []float64{0})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestRunAll(t *testing.T) {
	decay := func(x, t float64) float64 { return -x }
	grid := []float64{0, 0.1, 0.2, 0.3}

	problems := []Problem{
		{Stepper: forward{}, F: decay, X0: 1, Grid: grid},
		{Stepper: forward{}, F: decay, X0: 2, Grid: grid},
		{Stepper: forward{}, F: decay, X0: 3, Grid: grid},
	}

	results, err := RunAll(context.Background(), problems, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, p := range problems {
		want, err := Integrate(p.Stepper, p.F, p.X0, p.Grid)
		require.NoError(t, err)
		assert.Equal(t, want, results[i])
	}
}

func TestRunAll_Error(t *testing.T) {
	f := func(x, t float64) float64 { return 0 }
	problems := []Problem{
		{Stepper: forward{}, F: f, X0: 1, Grid: []float64{0, 1}},
		{Stepper: forward{}, F: f, X0: 1, Grid: []float64{0}},
	}

	results, err := RunAll(context.Background(), problems, 0)
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.Nil(t, results)
}

func TestRunAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := func(x, t float64) float64 { return 0 }
	_, err := RunAll(ctx, []Problem{{Stepper: forward{}, F: f, Grid: []float64{0, 1}}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrajectory(t *testing.T) {
	tr := Trajectory{1, 2, 3}
	c := tr.Clone()
	c[0] = 9
	assert.Equal(t, 1.0, tr[0])
	assert.Equal(t, 3.0, tr.Last())
	assert.Equal(t, 0.0, Trajectory{}.Last())
}
