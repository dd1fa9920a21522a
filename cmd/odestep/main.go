package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/odestep/internal/config"
)

var (
	dataDir    string
	verbose    bool
	method     string
	x0         float64
	t0         float64
	t1         float64
	points     int
	params     []string
	configFile string
	preset     string
	showPlot   bool
	pngPath    string
	baseSteps  int
	levels     int
	frameRate  int
	tolerance  float64
	maxLevels  int
	perturb    float64

	logger = zap.NewNop()
)

// main is the entry point for the odestep CLI; it exits with status 1 if the
// command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odestep",
		Short:         "fixed-step integrators for scalar ODEs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odestep", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [equation]",
		Short: "integrate an equation and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runIntegration,
	}
	addGridFlags(runCmd, config.DefaultConfig())
	addPointsFlag(runCmd)
	runCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "integration method (euler, rk2, rk4)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the trajectory after the run")

	compareCmd := &cobra.Command{
		Use:   "compare [equation] [method...]",
		Short: "integrate the same problem with several methods",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addGridFlags(compareCmd, config.DefaultConfig())
	addPointsFlag(compareCmd)
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	compareCmd.Flags().StringVar(&pngPath, "png", "", "also write an overlay plot to this file")
	compareCmd.Flags().BoolVar(&showPlot, "plot", false, "overlay the trajectories in the terminal")

	convergeCmd := &cobra.Command{
		Use:   "converge [equation] [method...]",
		Short: "measure the observed order of accuracy",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convergenceStudy,
	}
	addGridFlags(convergeCmd, convergeDefaults())
	convergeCmd.Flags().IntVar(&baseSteps, "base", 10, "steps on the coarsest grid")
	convergeCmd.Flags().IntVar(&levels, "levels", 4, "number of grids, each halving the step")

	tuneCmd := &cobra.Command{
		Use:   "tune [equation] [method...]",
		Short: "find the cheapest method and grid within an error tolerance",
		Args:  cobra.MinimumNArgs(1),
		RunE:  tuneStep,
	}
	addGridFlags(tuneCmd, convergeDefaults())
	tuneCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "max abs error allowed over the grid")
	tuneCmd.Flags().IntVar(&maxLevels, "levels", 10, "try grids of 2^k+1 points for k up to this")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [equation]",
		Short: "estimate how fast nearby trajectories separate",
		Args:  cobra.ExactArgs(1),
		RunE:  sensitivityEstimate,
	}
	addGridFlags(sensitivityCmd, config.DefaultConfig())
	addPointsFlag(sensitivityCmd)
	sensitivityCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "integration method (euler, rk2, rk4)")
	sensitivityCmd.Flags().Float64Var(&perturb, "d0", 1e-8, "initial separation of the twin trajectory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write the plot to this file instead of the terminal")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play a stored trajectory back in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().IntVar(&frameRate, "fps", 30, "points per second")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [equation]",
		Short: "list available presets for an equation",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	equationsCmd := &cobra.Command{
		Use:   "equations",
		Short: "list built-in equations",
		Args:  cobra.NoArgs,
		RunE:  listEquations,
	}

	rootCmd.AddCommand(runCmd, compareCmd, convergeCmd, tuneCmd, sensitivityCmd, listCmd, plotCmd, replayCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, methodsCmd, equationsCmd)

	return rootCmd
}

// addGridFlags binds the grid flags. The variables are shared between
// commands, so only the help text carries the per-command defaults and
// buildConfig reads a flag only when it was Changed.
func addGridFlags(cmd *cobra.Command, defaults *config.Config) {
	cmd.Flags().Float64Var(&x0, "x0", defaults.X0, "initial value")
	cmd.Flags().Float64Var(&t0, "t0", defaults.T0, "start time")
	cmd.Flags().Float64Var(&t1, "t1", defaults.T1, "end time")
	cmd.Flags().StringArrayVar(&params, "param", nil, "equation parameter name=value (repeatable)")
}

// addPointsFlag is bound only on commands that integrate a single grid;
// converge and tune pick their own grid sizes.
func addPointsFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "number of grid points (including t0 and t1)")
}

// convergeDefaults uses a short interval and a nonzero start so that
// decay-like equations have a measurable error.
func convergeDefaults() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Equation = "decay"
	cfg.X0 = 1
	cfg.T1 = 1
	return cfg
}
