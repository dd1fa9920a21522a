package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odestep/internal/experiment"
	"github.com/san-kum/odestep/internal/metrics"
)

var ErrNoCandidate = errors.New("optim: no method and grid meet the tolerance")

// MaxLevels caps DoublingPoints at grids of 2^24+1 points.
const MaxLevels = 24

// Candidate is one evaluated (method, points) pair.
type Candidate struct {
	Method      string
	Points      int
	Error       float64
	Evaluations int
}

// StepSearch walks every method over every grid size and keeps the cheapest
// run whose max abs error is within tolerance. Cost is counted in rhs
// evaluations.
type StepSearch struct {
	methods []string
	points  []int
}

func NewStepSearch(methods []string, points []int) *StepSearch {
	return &StepSearch{methods: methods, points: points}
}

// DoublingPoints returns 2^k+1 for k = 1..levels, so each grid halves the
// step of the previous one. Callers keep levels <= MaxLevels.
func DoublingPoints(levels int) []int {
	out := make([]int, 0, levels)
	for k := 1; k <= levels; k++ {
		out = append(out, 1<<k+1)
	}
	return out
}

// Search returns the best candidate and every candidate it evaluated.
// build must return an experiment for the given method and grid size whose
// equation has an exact solution.
func (s *StepSearch) Search(
	ctx context.Context,
	build func(method string, points int) (*experiment.Experiment, error),
	tol float64,
) (*Candidate, []Candidate, error) {
	var best *Candidate
	all := make([]Candidate, 0, len(s.methods)*len(s.points))

	for _, method := range s.methods {
		for _, n := range s.points {
			if err := ctx.Err(); err != nil {
				return nil, all, err
			}

			exp, err := build(method, n)
			if err != nil {
				return nil, all, err
			}
			result, err := exp.Run()
			if err != nil {
				return nil, all, err
			}

			errVal, ok := result.Metrics[metrics.MaxAbsErrorName]
			if !ok {
				return nil, all, fmt.Errorf("optim: %s has no exact solution", exp.Equation().Name)
			}

			c := Candidate{
				Method:      exp.Stepper().Name(),
				Points:      n,
				Error:       errVal,
				Evaluations: int(result.Metrics[metrics.EvaluationsName]),
			}
			all = append(all, c)

			if math.IsNaN(errVal) || errVal > tol {
				continue
			}
			if best == nil || c.Evaluations < best.Evaluations ||
				(c.Evaluations == best.Evaluations && c.Error < best.Error) {
				picked := c
				best = &picked
			}
			// larger grids for this method only cost more
			break
		}
	}

	if best == nil {
		return nil, all, ErrNoCandidate
	}
	return best, all, nil
}
