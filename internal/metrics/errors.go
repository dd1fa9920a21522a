package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/models"
)

// Metric names as stored with a run.
const (
	MaxAbsErrorName = "max_abs_error"
	RMSErrorName    = "rms_error"
	FinalErrorName  = "final_error"
	FinalValueName  = "final_value"
	EvaluationsName = "rhs_evaluations"
	NonFiniteName   = "non_finite"
)

// Reference samples the exact solution on the grid.
func Reference(eq *models.Equation, x0 float64, t []float64) []float64 {
	ref := make([]float64, len(t))
	for i, ti := range t {
		ref[i] = eq.Exact(x0, t[0], ti)
	}
	return ref
}

// MaxAbsError is the largest pointwise deviation from ref.
func MaxAbsError(x dynamo.Trajectory, ref []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Distance(x, ref, math.Inf(1))
}

// RMSError is the root mean square deviation from ref.
func RMSError(x dynamo.Trajectory, ref []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Distance(x, ref, 2) / math.Sqrt(float64(len(x)))
}

// FinalError is the absolute deviation at the last grid point.
func FinalError(x dynamo.Trajectory, ref []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Abs(x.Last() - ref[len(ref)-1])
}

// NonFinite counts NaN and infinite states. Integration never stops on
// them, so this is how a diverging run shows up.
func NonFinite(x dynamo.Trajectory) int {
	n := 0
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			n++
		}
	}
	return n
}

// Compute collects the run metrics for a trajectory. Error metrics are only
// present when eq has a closed-form solution.
func Compute(eq *models.Equation, s dynamo.Stepper, x0 float64, t []float64, x dynamo.Trajectory) map[string]float64 {
	out := map[string]float64{
		FinalValueName:  x.Last(),
		EvaluationsName: float64(s.Stages() * (len(t) - 1)),
		NonFiniteName:   float64(NonFinite(x)),
	}
	if !eq.HasExact() {
		return out
	}
	ref := Reference(eq, x0, t)
	out[MaxAbsErrorName] = MaxAbsError(x, ref)
	out[RMSErrorName] = RMSError(x, ref)
	out[FinalErrorName] = FinalError(x, ref)
	return out
}
