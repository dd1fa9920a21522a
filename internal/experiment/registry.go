package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/models"
)

type Registry struct {
	equations   map[string]func(map[string]float64) (*models.Equation, error)
	integrators map[string]func() dynamo.Stepper
	aliases     map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		equations:   make(map[string]func(map[string]float64) (*models.Equation, error)),
		integrators: make(map[string]func() dynamo.Stepper),
		aliases:     map[string]string{"midpoint": "rk2"},
	}

	for _, name := range models.Names() {
		r.equations[name] = func(params map[string]float64) (*models.Equation, error) {
			return models.New(name, params)
		}
	}

	r.integrators["euler"] = func() dynamo.Stepper { return integrators.NewEuler() }
	r.integrators["rk2"] = func() dynamo.Stepper { return integrators.NewRK2() }
	r.integrators["rk4"] = func() dynamo.Stepper { return integrators.NewRK4() }

	return r
}

// RegisterEquation adds or replaces an equation constructor.
func (r *Registry) RegisterEquation(name string, fn func(map[string]float64) (*models.Equation, error)) {
	r.equations[name] = fn
}

// RegisterIntegrator adds or replaces a stepper constructor.
func (r *Registry) RegisterIntegrator(name string, fn func() dynamo.Stepper) {
	r.integrators[name] = fn
}

func (r *Registry) GetEquation(name string, params map[string]float64) (*models.Equation, error) {
	fn, ok := r.equations[name]
	if !ok {
		return nil, fmt.Errorf("unknown equation: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", integrators.ErrUnknownMethod, name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListEquations() []string {
	return sortedNames(r.equations)
}

// ListIntegrators returns canonical method names; aliases are resolved by
// GetIntegrator but not listed.
func (r *Registry) ListIntegrators() []string {
	return sortedNames(r.integrators)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
