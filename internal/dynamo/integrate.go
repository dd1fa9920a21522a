package dynamo

// Integrate solves dx/dt = f(x, t) with x(t[0]) = x0 on the grid t using s.
// The grid is validated before any evaluation of f; on error no trajectory
// is returned. A panic raised by f is not recovered.
func Integrate(s Stepper, f Func, x0 float64, t []float64) (Trajectory, error) {
	if s == nil {
		return nil, ErrNilStepper
	}
	if f == nil {
		return nil, ErrNilFunc
	}
	h, err := StepSize(t)
	if err != nil {
		return nil, err
	}

	x := make(Trajectory, len(t))
	x[0] = x0
	for i := 1; i < len(t); i++ {
		x[i] = s.Step(f, x[i-1], t[i-1], h)
	}
	return x, nil
}

// IntegrateE is Integrate for a right-hand side that can fail. The first
// error returned by f aborts the run and is returned as is.
func IntegrateE(s Stepper, f FallibleFunc, x0 float64, t []float64) (Trajectory, error) {
	if s == nil {
		return nil, ErrNilStepper
	}
	if f == nil {
		return nil, ErrNilFunc
	}
	h, err := StepSize(t)
	if err != nil {
		return nil, err
	}

	var evalErr error
	wrapped := func(xi, ti float64) float64 {
		if evalErr != nil {
			return 0
		}
		v, err := f(xi, ti)
		if err != nil {
			evalErr = err
			return 0
		}
		return v
	}

	x := make(Trajectory, len(t))
	x[0] = x0
	for i := 1; i < len(t); i++ {
		x[i] = s.Step(wrapped, x[i-1], t[i-1], h)
		if evalErr != nil {
			return nil, evalErr
		}
	}
	return x, nil
}
