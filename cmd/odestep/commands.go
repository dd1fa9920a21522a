package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/metrics"
	"github.com/san-kum/odestep/internal/models"
	"github.com/san-kum/odestep/internal/optim"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/san-kum/odestep/internal/viz"
)

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order. Flags are shared between commands, so only Changed flags
// are read.
func buildConfig(cmd *cobra.Command, equation string, base *config.Config) (*config.Config, error) {
	cfg := base
	cfg.Equation = equation

	if preset != "" && cmd.Flags().Lookup("preset") != nil {
		p := config.GetPreset(equation, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(equation))
		}
		cfg = p
	}

	if configFile != "" && cmd.Flags().Lookup("config") != nil {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Equation != equation {
			logger.Warn("config file names a different equation",
				zap.String("file", fileCfg.Equation),
				zap.String("arg", equation),
			)
			fileCfg.Equation = equation
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("t1") {
		cfg.T1 = t1
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("param") {
		parsed, err := parseParams(params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(parsed))
		}
		for k, v := range parsed {
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid param %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid param %q: %w", kv, err)
		}
		out[name] = v
	}
	return out, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0], config.DefaultConfig())
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "integrating %s with %s...\n", exp.Equation().Description, exp.Stepper().Name())

	result, err := exp.Run()
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Equation: cfg.Equation,
		Method:   exp.Stepper().Name(),
		X0:       cfg.X0,
		T0:       cfg.T0,
		T1:       cfg.T1,
		Params:   exp.Equation().Params,
	}, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("run_id", runID), zap.String("dir", dataDir))

	fmt.Fprintf(out, "completed in %v\n", result.Elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "points: %d (h=%g)\n", len(result.States), cfg.Step())
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(out, "  %s: %g\n", name, result.Metrics[name])
	}

	if showPlot {
		graph, err := viz.Plot(result.States, "x vs t", 80, 10)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0], config.DefaultConfig())
	if err != nil {
		return err
	}

	names := args[1:]
	if len(names) == 0 {
		names = integrators.Names()
	}

	registry := experiment.NewRegistry()
	eq, err := registry.GetEquation(cfg.Equation, cfg.Params)
	if err != nil {
		return err
	}

	grid, err := dynamo.Linspace(cfg.T0, cfg.T1, cfg.Points)
	if err != nil {
		return err
	}

	steppers := make([]dynamo.Stepper, len(names))
	problems := make([]dynamo.Problem, len(names))
	for i, name := range names {
		s, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}
		steppers[i] = s
		problems[i] = dynamo.Problem{Stepper: s, F: eq.F, X0: cfg.X0, Grid: grid}
	}

	logger.Debug("comparing methods", zap.Strings("methods", names), zap.Int("points", len(grid)))
	results, err := dynamo.RunAll(contextOf(cmd), problems, 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing methods for %s (h=%g, points=%d)\n\n", eq.Description, cfg.Step(), len(grid))

	headers := []string{"method", "order", "evals", "final_x"}
	if eq.HasExact() {
		headers = append(headers, "final_error", "max_error")
	}
	rows := make([][]string, len(results))
	series := make([]viz.Series, len(results))
	states := make([][]float64, len(results))
	for i, x := range results {
		m := metrics.Compute(eq, steppers[i], cfg.X0, grid, x)
		row := []string{
			steppers[i].Name(),
			strconv.Itoa(steppers[i].Order()),
			strconv.Itoa(int(m[metrics.EvaluationsName])),
			fmt.Sprintf("%.8g", x.Last()),
		}
		if eq.HasExact() {
			row = append(row,
				fmt.Sprintf("%.3e", m[metrics.FinalErrorName]),
				fmt.Sprintf("%.3e", m[metrics.MaxAbsErrorName]),
			)
		}
		rows[i] = row
		series[i] = viz.Series{Name: steppers[i].Name(), Times: grid, States: x}
		states[i] = x
	}
	fmt.Fprintln(out, viz.Table(headers, rows))

	if showPlot {
		graph, err := viz.PlotMany(states, "x vs t ("+strings.Join(names, ", ")+")", 80, 12)
		if err != nil {
			logger.Warn("skipping terminal plot", zap.Error(err))
		} else {
			fmt.Fprintln(out, graph)
		}
	}

	if pngPath != "" {
		if err := viz.SavePNG(pngPath, eq.Description, series...); err != nil {
			return err
		}
		fmt.Fprintf(out, "plot written to %s\n", pngPath)
	}
	return nil
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0], convergeDefaults())
	if err != nil {
		return err
	}

	names := args[1:]
	if len(names) == 0 {
		names = integrators.Names()
	}

	registry := experiment.NewRegistry()
	eq, err := registry.GetEquation(cfg.Equation, cfg.Params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		s, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}

		study, err := analysis.Convergence(contextOf(cmd), s, eq, cfg.X0, cfg.T0, cfg.T1, baseSteps, levels)
		if err != nil {
			return err
		}

		rows := make([][]string, len(study.Levels))
		for i, lvl := range study.Levels {
			ratio, order := "-", "-"
			if lvl.Ratio > 0 {
				ratio = fmt.Sprintf("%.3f", lvl.Ratio)
				order = fmt.Sprintf("%.3f", lvl.ObservedOrder)
			}
			rows[i] = []string{
				strconv.Itoa(lvl.Steps),
				fmt.Sprintf("%.4g", lvl.H),
				fmt.Sprintf("%.3e", lvl.Error),
				ratio,
				order,
			}
		}

		fmt.Fprintf(out, "%s (expected order %d, observed %.2f)\n", study.Method, study.Order, study.EstimatedOrder())
		fmt.Fprintln(out, viz.Table([]string{"steps", "h", "error", "ratio", "order"}, rows))
	}
	return nil
}

func tuneStep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0], convergeDefaults())
	if err != nil {
		return err
	}

	if maxLevels < 1 || maxLevels > optim.MaxLevels {
		return fmt.Errorf("levels must be between 1 and %d, got %d", optim.MaxLevels, maxLevels)
	}

	names := args[1:]
	if len(names) == 0 {
		names = integrators.Names()
	}

	registry := experiment.NewRegistry()
	build := func(method string, n int) (*experiment.Experiment, error) {
		c := cfg.Clone()
		c.Method = method
		c.Points = n
		return experiment.New(c, registry, logger)
	}

	search := optim.NewStepSearch(names, optim.DoublingPoints(maxLevels))
	best, all, err := search.Search(contextOf(cmd), build, tolerance)

	out := cmd.OutOrStdout()
	if len(all) > 0 {
		rows := make([][]string, len(all))
		for i, c := range all {
			rows[i] = []string{
				c.Method,
				strconv.Itoa(c.Points),
				strconv.Itoa(c.Evaluations),
				fmt.Sprintf("%.3e", c.Error),
			}
		}
		fmt.Fprintln(out, viz.Table([]string{"method", "points", "evals", "max_error"}, rows))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "best: %s with %d points (%d evaluations, max error %.3e <= %g)\n",
		best.Method, best.Points, best.Evaluations, best.Error, tolerance)
	return nil
}

func sensitivityEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0], config.DefaultConfig())
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}
	grid, err := exp.Grid()
	if err != nil {
		return err
	}

	lambda, err := analysis.Sensitivity(exp.Stepper(), exp.Equation().F, cfg.X0, grid, perturb)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s with %s over [%g, %g], %d points\n",
		exp.Equation().Description, exp.Stepper().Name(), cfg.T0, cfg.T1, len(grid))
	fmt.Fprintf(out, "lambda: %.4f\n", lambda)
	switch {
	case lambda < 0:
		fmt.Fprintln(out, "nearby trajectories converge")
	case lambda > 0:
		fmt.Fprintln(out, "nearby trajectories diverge")
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEQUATION\tMETHOD\tTIME\tINTERVAL\tPOINTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%d\n",
			run.ID,
			run.Equation,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T0,
			run.T1,
			run.Points,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	title := fmt.Sprintf("%s (%s)", meta.Equation, meta.Method)

	if pngPath != "" {
		if err := viz.SavePNG(pngPath, title, viz.Series{Name: meta.Method, Times: times, States: states}); err != nil {
			return err
		}
		fmt.Fprintf(out, "plot written to %s\n", pngPath)
		return nil
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "samples: %d\n\n", len(states))

	graph, err := viz.Plot(states, title, 80, 10)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, graph)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	m := viz.NewReplay(fmt.Sprintf("%s · %s", meta.Equation, meta.Method), times, states, frameRate)
	p := tea.NewProgram(m, tea.WithContext(contextOf(cmd)))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(cmd.OutOrStdout(), args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for equation: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", args[0])
	for _, p := range presets {
		cfg := config.GetPreset(args[0], p)
		fmt.Fprintf(out, "  %-10s %s, x0=%g, [%g, %g], %d points\n", p, cfg.Method, cfg.X0, cfg.T0, cfg.T1, cfg.Points)
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tORDER\tSTAGES")
	for _, name := range integrators.Names() {
		s, err := integrators.New(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", s.Name(), s.Order(), s.Stages())
	}
	return w.Flush()
}

func listEquations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EQUATION\tFORM\tEXACT\tPARAMS")
	for _, name := range models.Names() {
		eq, err := models.New(name, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", eq.Name, eq.Description, eq.HasExact(), formatParams(eq.Params))
	}
	return w.Flush()
}

func formatParams(p map[string]float64) string {
	if len(p) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(p))
	for _, k := range sortedKeys(p) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, p[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
