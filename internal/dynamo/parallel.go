package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Problem is one independent initial value problem.
type Problem struct {
	Stepper Stepper
	F       Func
	X0      float64
	Grid    []float64
}

// RunAll integrates every problem concurrently, at most limit at a time
// (limit <= 0 means no limit). Results are aligned with problems. The first
// failure cancels problems that have not started yet.
func RunAll(ctx context.Context, problems []Problem, limit int) ([]Trajectory, error) {
	results := make([]Trajectory, len(problems))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, p := range problems {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x, err := Integrate(p.Stepper, p.F, p.X0, p.Grid)
			if err != nil {
				return err
			}
			results[i] = x
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
