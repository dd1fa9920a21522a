package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// spacingTol is the relative tolerance on |t[i+1]-t[i]-h| for a grid to count
// as equally spaced. Rounding of the time values themselves adds a few ulps
// of the largest magnitude involved on top of it.
const (
	spacingTol = 1e-6
	ulpSlack   = 4
)

// epsilon is the float64 machine epsilon, 2^-52.
var epsilon = math.Nextafter(1, 2) - 1

// StepSize validates t and returns its constant spacing h = t[1]-t[0].
// The grid needs at least two finite points and a nonzero spacing that holds
// for every interval. Negative spacing is allowed.
func StepSize(t []float64) (float64, error) {
	n := len(t)
	if n < 2 {
		return 0, &InvalidGridError{Len: n, Index: -1, Reason: "need at least 2 points"}
	}
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &InvalidGridError{Len: n, Index: i, Reason: "non-finite time"}
		}
	}

	h := t[1] - t[0]
	if h == 0 || math.IsInf(h, 0) {
		return 0, &InvalidGridError{Len: n, Index: 1, Reason: "zero step size"}
	}

	base := spacingTol * math.Abs(h)
	hMag := math.Max(math.Abs(t[0]), math.Abs(t[1]))
	for i := 1; i < n-1; i++ {
		mag := math.Max(hMag, math.Max(math.Abs(t[i]), math.Abs(t[i+1])))
		tol := base + ulpSlack*epsilon*mag
		if math.Abs(t[i+1]-t[i]-h) > tol {
			return 0, &InvalidGridError{Len: n, Index: i + 1, Reason: "non-uniform spacing"}
		}
	}
	return h, nil
}

// Linspace returns n evenly spaced points over [start, stop], both included.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, &InvalidGridError{Len: n, Index: -1, Reason: "need at least 2 points"}
	}
	if start == stop {
		return nil, &InvalidGridError{Len: n, Index: 1, Reason: "zero step size"}
	}
	return floats.Span(make([]float64, n), start, stop), nil
}
