package dynamo

// Func is the right-hand side f(x, t) of dx/dt = f(x, t).
type Func func(x, t float64) float64

// FallibleFunc is a right-hand side that can fail to evaluate.
type FallibleFunc func(x, t float64) (float64, error)

// Trajectory holds x(t[i]) for each point of the grid it was computed on.
type Trajectory []float64

func (tr Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

// Last returns the final state, or 0 for an empty trajectory.
func (tr Trajectory) Last() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1]
}

// Stepper advances the state by one fixed step h from (x, t).
type Stepper interface {
	Step(f Func, x, t, h float64) float64
	Name() string
	// Order is the global order of accuracy.
	Order() int
	// Stages is the number of right-hand side evaluations per step.
	Stages() int
}
