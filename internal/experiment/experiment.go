package experiment

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/metrics"
	"github.com/san-kum/odestep/internal/models"
)

type Result struct {
	Times   []float64
	States  dynamo.Trajectory
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg      *config.Config
	equation *models.Equation
	stepper  dynamo.Stepper
	logger   *zap.Logger
}

// New resolves the equation and method named in cfg. A nil logger discards
// output.
func New(cfg *config.Config, registry *Registry, logger *zap.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	eq, err := registry.GetEquation(cfg.Equation, cfg.Params)
	if err != nil {
		return nil, err
	}
	stepper, err := registry.GetIntegrator(cfg.Method)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:      cfg,
		equation: eq,
		stepper:  stepper,
		logger:   logger.With(zap.String("equation", eq.Name), zap.String("method", stepper.Name())),
	}, nil
}

func (e *Experiment) Equation() *models.Equation { return e.equation }
func (e *Experiment) Stepper() dynamo.Stepper    { return e.stepper }

// Grid builds the time grid from the config.
func (e *Experiment) Grid() ([]float64, error) {
	return dynamo.Linspace(e.cfg.T0, e.cfg.T1, e.cfg.Points)
}

func (e *Experiment) Run() (*Result, error) {
	grid, err := e.Grid()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("integrating",
		zap.Float64("x0", e.cfg.X0),
		zap.Float64("t0", e.cfg.T0),
		zap.Float64("t1", e.cfg.T1),
		zap.Int("points", len(grid)),
	)

	start := time.Now()
	x, err := dynamo.Integrate(e.stepper, e.equation.F, e.cfg.X0, grid)
	if err != nil {
		return nil, fmt.Errorf("integrate %s with %s: %w", e.equation.Name, e.stepper.Name(), err)
	}
	elapsed := time.Since(start)

	result := &Result{
		Times:   grid,
		States:  x,
		Metrics: metrics.Compute(e.equation, e.stepper, e.cfg.X0, grid, x),
		Elapsed: elapsed,
	}

	if n := result.Metrics[metrics.NonFiniteName]; n > 0 {
		e.logger.Warn("trajectory contains non-finite states", zap.Int("count", int(n)))
	}
	e.logger.Debug("integration finished",
		zap.Duration("elapsed", elapsed),
		zap.Float64("final", x.Last()),
	)

	return result, nil
}
