package integrators

import (
	"errors"
	"fmt"

	"github.com/san-kum/odestep/internal/dynamo"
)

var ErrUnknownMethod = errors.New("integrators: unknown method")

var constructors = map[string]func() dynamo.Stepper{
	"euler":    func() dynamo.Stepper { return NewEuler() },
	"rk2":      func() dynamo.Stepper { return NewRK2() },
	"midpoint": func() dynamo.Stepper { return NewRK2() },
	"rk4":      func() dynamo.Stepper { return NewRK4() },
}

// New returns the stepper registered under name.
func New(name string) (dynamo.Stepper, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownMethod, name, Names())
	}
	return fn(), nil
}

// Names lists the canonical method names, lowest order first. Aliases are
// accepted by New but not listed.
func Names() []string {
	return []string{"euler", "rk2", "rk4"}
}

// SolveEuler integrates dx/dt = f(x, t) from x0 over t with forward Euler.
func SolveEuler(f dynamo.Func, x0 float64, t []float64) (dynamo.Trajectory, error) {
	return dynamo.Integrate(NewEuler(), f, x0, t)
}

// SolveRK2 integrates dx/dt = f(x, t) from x0 over t with the midpoint method.
func SolveRK2(f dynamo.Func, x0 float64, t []float64) (dynamo.Trajectory, error) {
	return dynamo.Integrate(NewRK2(), f, x0, t)
}

// SolveRK4 integrates dx/dt = f(x, t) from x0 over t with classic RK4.
func SolveRK4(f dynamo.Func, x0 float64, t []float64) (dynamo.Trajectory, error) {
	return dynamo.Integrate(NewRK4(), f, x0, t)
}
