package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// Euler is the explicit forward Euler method, x' = x + h*f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Func, x, t, h float64) float64 {
	return x + h*f(x, t)
}

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }
func (e *Euler) Stages() int  { return 1 }
