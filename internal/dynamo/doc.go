// Package dynamo provides the core primitives for fixed-step integration of
// scalar ordinary differential equations dx/dt = f(x, t).
//
// The package defines the contracts shared by every stepping method:
//
//   - [Func]: right-hand side of the equation, f(x, t)
//   - [Stepper]: one explicit step formula (Euler, RK2, RK4, ...)
//   - [Trajectory]: the approximate solution on a time grid
//   - [Integrate]: the driver that validates a grid and scans it with a Stepper
//
// # Example
//
//	t, _ := dynamo.Linspace(0, 10, 20)
//	x, err := dynamo.Integrate(integrators.NewRK4(), f, 0, t)
//
// # Numerics
//
// Integration never inspects the values it produces. NaN and ±Inf returned by
// the right-hand side propagate through the trajectory like any other float.
//
// # Thread Safety
//
// Integrate holds no state between calls and may be called from any number of
// goroutines. A single call is sequential since step i depends on step i-1.
// Use [RunAll] to fan independent problems out across goroutines.
package dynamo
