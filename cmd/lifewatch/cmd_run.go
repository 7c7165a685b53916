package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nvandessel/lifewatch/internal/config"
	"github.com/nvandessel/lifewatch/internal/constants"
	"github.com/nvandessel/lifewatch/internal/life"
	"github.com/nvandessel/lifewatch/internal/logging"
	"github.com/nvandessel/lifewatch/internal/pathutil"
	"github.com/nvandessel/lifewatch/internal/render"
	"github.com/nvandessel/lifewatch/internal/simulation"
	"github.com/nvandessel/lifewatch/internal/stability"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation until it dies out or settles",
		Long: `Seed a grid and step it until every cell is dead, the board repeats
with a short period, the generation limit is reached, or the run is
interrupted with Ctrl+C. A summary is printed when the run ends.

Flags override the config file and LIFEWATCH_* environment variables.

Examples:
  lifewatch run                                  # random board, default settings
  lifewatch run --seed 42 --density 0.3          # reproducible run
  lifewatch run --pattern r-pentomino --fps 30   # start from a named pattern
  lifewatch run --renderer none --json           # headless, JSON report`,
		RunE: runSimulation,
	}

	cmd.Flags().Int("width", constants.GridWidth, "Grid width in cells")
	cmd.Flags().Int("height", constants.GridHeight, "Grid height in cells")
	cmd.Flags().Float64("density", constants.DefaultDensity, "Probability a cell starts alive (0-1)")
	cmd.Flags().Float64("fps", constants.DefaultFPS, "Target generations per second")
	cmd.Flags().Int64("seed", 0, "Random seed (default: derived from the clock)")
	cmd.Flags().Int("max-generations", constants.DefaultMaxGenerations, "Stop after this many generations (0 = unlimited)")
	cmd.Flags().Int("max-period", constants.DefaultMaxPeriod, "Longest cycle period treated as stable")
	cmd.Flags().Int("min-repeats", constants.DefaultMinRepeats, "Cycle recurrences required before stopping")
	cmd.Flags().String("renderer", string(constants.RenderAuto), "Renderer: auto, terminal, none")
	cmd.Flags().Int("trend-width", constants.DefaultTrendWidth, "Generations shown in the report trend")
	cmd.Flags().String("log-level", "", "Log level: warn, info, debug, trace")
	cmd.Flags().String("pattern", "", "Start from a named pattern instead of a random board")
	cmd.Flags().String("decisions", "", "Append JSONL decision events to this file")

	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	patternName, _ := cmd.Flags().GetString("pattern")
	decisionsPath, _ := cmd.Flags().GetString("decisions")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyRunFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	// The report owns stdout in JSON mode.
	if jsonOut && cfg.Display.Renderer == constants.RenderAuto {
		cfg.Display.Renderer = constants.RenderNone
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sim := cfg.Simulation
	seed := time.Now().UnixNano()
	if sim.Seed != nil {
		seed = *sim.Seed
	}

	var initial *life.Grid
	if patternName != "" {
		initial, err = simulation.Pattern(patternName, sim.Width, sim.Height)
		if err != nil {
			return err
		}
	}

	var decisions *logging.DecisionLogger
	if decisionsPath != "" {
		path, err := pathutil.ExpandHome(decisionsPath)
		if err != nil {
			return fmt.Errorf("invalid --decisions path: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open decisions log: %w", err)
		}
		defer f.Close()
		decisions = logging.NewDecisionLogger(f)
		defer decisions.Close()
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	if jsonOut && cfg.Display.Renderer == constants.RenderTerminal {
		logger.Warn("terminal frames share stdout with the JSON report; use --renderer none for clean JSON")
	}
	logger.Info("starting simulation",
		"seed", seed,
		"density", sim.Density,
		"fps", sim.FPS,
		"grid", fmt.Sprintf("%dx%d", sim.Width, sim.Height),
		"pattern", patternName,
		"renderer", cfg.Display.Renderer)

	out := cmd.OutOrStdout()
	loop, err := simulation.New(simulation.Options{
		Width:          sim.Width,
		Height:         sim.Height,
		Density:        sim.Density,
		Seed:           seed,
		FPS:            sim.FPS,
		MaxGenerations: sim.MaxGenerations,
		Stability: stability.Config{
			MaxPeriod:  cfg.Stability.MaxPeriod,
			MinRepeats: cfg.Stability.MinRepeats,
		},
		TrendWidth:   cfg.Report.TrendWidth,
		Initial:      initial,
		OpenRenderer: render.OpenerFor(cfg.Display.Renderer, out),
		Logger:       logger,
		Decisions:    decisions,
	})
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context(), logger)
	defer stop()

	report, err := loop.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.WriteText(out)
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(flags *pflag.FlagSet, cfg *config.LifewatchConfig) error {
	var err error
	setInt := func(name string, dst *int) {
		if err == nil && flags.Changed(name) {
			*dst, err = flags.GetInt(name)
		}
	}
	setFloat := func(name string, dst *float64) {
		if err == nil && flags.Changed(name) {
			*dst, err = flags.GetFloat64(name)
		}
	}

	setInt("width", &cfg.Simulation.Width)
	setInt("height", &cfg.Simulation.Height)
	setFloat("density", &cfg.Simulation.Density)
	setFloat("fps", &cfg.Simulation.FPS)
	setInt("max-generations", &cfg.Simulation.MaxGenerations)
	setInt("max-period", &cfg.Stability.MaxPeriod)
	setInt("min-repeats", &cfg.Stability.MinRepeats)
	setInt("trend-width", &cfg.Report.TrendWidth)
	if err != nil {
		return err
	}

	if flags.Changed("seed") {
		seed, err := flags.GetInt64("seed")
		if err != nil {
			return err
		}
		cfg.Simulation.Seed = &seed
	}
	if flags.Changed("renderer") {
		mode, _ := flags.GetString("renderer")
		cfg.Display.Renderer = constants.RenderMode(mode)
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	return nil
}

// interruptContext returns a context cancelled by SIGINT (and SIGTERM where
// available). The returned stop func releases the signal handler.
func interruptContext(parent context.Context, logger *slog.Logger) (context.Context, func()) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("interrupted", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
