package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/models"
)

var (
	ErrNoExactSolution = errors.New("analysis: equation has no exact solution")
	ErrTooFewLevels    = errors.New("analysis: need at least 2 refinement levels")
	ErrTooManySteps    = errors.New("analysis: finest grid exceeds the step limit")
)

// MaxSteps bounds the finest grid of a convergence study. All levels are held
// in memory at once.
const MaxSteps = 1 << 22

// Level is one refinement of a convergence study.
type Level struct {
	Steps int
	H     float64
	Error float64
	// Ratio is Error of the previous level divided by this one; 0 on the
	// first level.
	Ratio         float64
	ObservedOrder float64
}

type Study struct {
	Method   string
	Equation string
	Order    int
	Levels   []Level
}

// EstimatedOrder is the observed order of the finest level.
func (s *Study) EstimatedOrder() float64 {
	if len(s.Levels) == 0 {
		return 0
	}
	return s.Levels[len(s.Levels)-1].ObservedOrder
}

// Convergence integrates eq from x0 over [t0, t1] with baseSteps, 2*baseSteps,
// 4*baseSteps, ... steps and compares the final state with the exact solution.
// The levels run concurrently.
func Convergence(ctx context.Context, s dynamo.Stepper, eq *models.Equation, x0, t0, t1 float64, baseSteps, levels int) (*Study, error) {
	if !eq.HasExact() {
		return nil, fmt.Errorf("%w: %s", ErrNoExactSolution, eq.Name)
	}
	if levels < 2 {
		return nil, ErrTooFewLevels
	}
	if baseSteps < 1 {
		return nil, fmt.Errorf("analysis: base steps must be positive, got %d", baseSteps)
	}
	if levels > 32 || baseSteps > MaxSteps>>(levels-1) {
		return nil, fmt.Errorf("%w: %d steps over %d levels (max %d)", ErrTooManySteps, baseSteps, levels, MaxSteps)
	}

	problems := make([]dynamo.Problem, levels)
	steps := make([]int, levels)
	for i := range problems {
		steps[i] = baseSteps << i
		grid, err := dynamo.Linspace(t0, t1, steps[i]+1)
		if err != nil {
			return nil, err
		}
		problems[i] = dynamo.Problem{Stepper: s, F: eq.F, X0: x0, Grid: grid}
	}

	results, err := dynamo.RunAll(ctx, problems, 0)
	if err != nil {
		return nil, err
	}

	exact := eq.Exact(x0, t0, t1)
	study := &Study{
		Method:   s.Name(),
		Equation: eq.Name,
		Order:    s.Order(),
		Levels:   make([]Level, levels),
	}
	for i, x := range results {
		lvl := Level{
			Steps: steps[i],
			H:     (t1 - t0) / float64(steps[i]),
			Error: math.Abs(x.Last() - exact),
		}
		if i > 0 && lvl.Error > 0 {
			lvl.Ratio = study.Levels[i-1].Error / lvl.Error
			lvl.ObservedOrder = math.Log2(lvl.Ratio)
		}
		study.Levels[i] = lvl
	}
	return study, nil
}
