package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Func, x, t, h float64) float64 {
	halfH := 0.5 * h

	k1 := h * f(x, t)
	k2 := h * f(x+0.5*k1, t+halfH)
	// k3 is perturbed by k2, not k1.
	k3 := h * f(x+0.5*k2, t+halfH)
	k4 := h * f(x+k3, t+h)

	return x + (k1+2*k2+2*k3+k4)/6
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }
func (r *RK4) Stages() int  { return 4 }
