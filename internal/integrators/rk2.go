package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// RK2 is the second-order midpoint Runge-Kutta method. The first stage only
// locates the midpoint; the update uses the midpoint slope alone.
type RK2 struct{}

func NewRK2() *RK2 {
	return &RK2{}
}

func (r *RK2) Step(f dynamo.Func, x, t, h float64) float64 {
	k1 := h * f(x, t)
	k2 := h * f(x+0.5*k1, t+0.5*h)
	return x + k2
}

func (r *RK2) Name() string { return "rk2" }
func (r *RK2) Order() int   { return 2 }
func (r *RK2) Stages() int  { return 2 }
