package analysis

import (
	"math"

	"github.com/san-kum/odestep/internal/dynamo"
)

// Sensitivity estimates the finite-time exponent lambda of dx/dt = f(x, t)
// along the trajectory from x0 on grid t: a perturbation d0 grows roughly as
// d0*exp(lambda*(t-t0)). The perturbed copy is pulled back to distance d0
// after every step so the separation never overflows.
func Sensitivity(s dynamo.Stepper, f dynamo.Func, x0 float64, t []float64, d0 float64) (float64, error) {
	h, err := dynamo.StepSize(t)
	if err != nil {
		return 0, err
	}
	if d0 <= 0 {
		d0 = 1e-8
	}

	x, xp := x0, x0+d0
	sumLog := 0.0
	for i := 1; i < len(t); i++ {
		x = s.Step(f, x, t[i-1], h)
		xp = s.Step(f, xp, t[i-1], h)

		sep := xp - x
		if sep == 0 {
			return math.Inf(-1), nil
		}
		sumLog += math.Log(math.Abs(sep) / d0)

		xp = x + math.Copysign(d0, sep)
	}

	return sumLog / (t[len(t)-1] - t[0]), nil
}
