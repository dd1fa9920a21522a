package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/odestep/internal/dynamo"
)

// Equation is a scalar right-hand side together with its closed-form
// solution when one is known.
type Equation struct {
	Name        string
	Description string
	F           dynamo.Func
	// Exact returns x(t) for x(t0) = x0. Nil when no closed form exists.
	Exact  func(x0, t0, t float64) float64
	Params map[string]float64
}

// HasExact reports whether the equation carries a closed-form solution.
func (e *Equation) HasExact() bool { return e.Exact != nil }

type constructor func(params map[string]float64) *Equation

var registry = map[string]constructor{
	"cubic_sine":  NewCubicSine,
	"decay":       NewDecay,
	"constant":    NewConstant,
	"zero":        NewZero,
	"logistic":    NewLogistic,
	"oscillating": NewOscillating,
}

// DefaultParams holds the parameter defaults per equation.
var DefaultParams = map[string]map[string]float64{
	"decay":    {"k": 1.0},
	"constant": {"c": 1.0},
	"logistic": {"r": 1.0, "cap": 1.0},
}

// New builds the named equation. Missing params fall back to defaults,
// unknown params are rejected.
func New(name string, params map[string]float64) (*Equation, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown equation: %s", name)
	}
	defaults := DefaultParams[name]
	merged := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("equation %s has no parameter %q", name, k)
		}
		merged[k] = v
	}
	return fn(merged), nil
}

// Names lists the registered equations alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCubicSine is dx/dt = -x^3 + sin(t). No closed form.
func NewCubicSine(params map[string]float64) *Equation {
	return &Equation{
		Name:        "cubic_sine",
		Description: "dx/dt = -x^3 + sin(t)",
		F: func(x, t float64) float64 {
			return -(x * x * x) + math.Sin(t)
		},
		Params: params,
	}
}

// NewDecay is dx/dt = -k*x.
func NewDecay(params map[string]float64) *Equation {
	k := params["k"]
	return &Equation{
		Name:        "decay",
		Description: "dx/dt = -k*x",
		F: func(x, t float64) float64 {
			return -k * x
		},
		Exact: func(x0, t0, t float64) float64 {
			return x0 * math.Exp(-k*(t-t0))
		},
		Params: params,
	}
}

// NewConstant is dx/dt = c.
func NewConstant(params map[string]float64) *Equation {
	c := params["c"]
	return &Equation{
		Name:        "constant",
		Description: "dx/dt = c",
		F: func(x, t float64) float64 {
			return c
		},
		Exact: func(x0, t0, t float64) float64 {
			return x0 + c*(t-t0)
		},
		Params: params,
	}
}

// NewZero is dx/dt = 0.
func NewZero(params map[string]float64) *Equation {
	return &Equation{
		Name:        "zero",
		Description: "dx/dt = 0",
		F: func(x, t float64) float64 {
			return 0
		},
		Exact: func(x0, t0, t float64) float64 {
			return x0
		},
		Params: params,
	}
}

// NewLogistic is dx/dt = r*x*(1 - x/cap).
func NewLogistic(params map[string]float64) *Equation {
	r, capacity := params["r"], params["cap"]
	return &Equation{
		Name:        "logistic",
		Description: "dx/dt = r*x*(1 - x/cap)",
		F: func(x, t float64) float64 {
			return r * x * (1 - x/capacity)
		},
		Exact: func(x0, t0, t float64) float64 {
			if x0 == 0 {
				return 0
			}
			return capacity / (1 + (capacity/x0-1)*math.Exp(-r*(t-t0)))
		},
		Params: params,
	}
}

// NewOscillating is dx/dt = cos(t).
func NewOscillating(params map[string]float64) *Equation {
	return &Equation{
		Name:        "oscillating",
		Description: "dx/dt = cos(t)",
		F: func(x, t float64) float64 {
			return math.Cos(t)
		},
		Exact: func(x0, t0, t float64) float64 {
			return x0 + math.Sin(t) - math.Sin(t0)
		},
		Params: params,
	}
}
