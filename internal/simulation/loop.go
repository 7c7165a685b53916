package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nvandessel/lifewatch/internal/constants"
	"github.com/nvandessel/lifewatch/internal/life"
	"github.com/nvandessel/lifewatch/internal/logging"
	"github.com/nvandessel/lifewatch/internal/pacing"
	"github.com/nvandessel/lifewatch/internal/render"
	"github.com/nvandessel/lifewatch/internal/stability"
	"github.com/nvandessel/lifewatch/internal/stats"
)

const tracerName = "github.com/nvandessel/lifewatch/internal/simulation"

// Termination reasons.
const (
	ReasonExtinction      = "extinction"
	ReasonInterrupt       = "user-interrupt"
	ReasonGenerationLimit = "generation-limit"
)

// StabilityReason formats the reason recorded for a confirmed cycle.
func StabilityReason(period int) string {
	return fmt.Sprintf("stability(period=%d)", period)
}

// ErrEmptySeed is returned when both the initial board and its single
// reseed have no live cells.
var ErrEmptySeed = errors.New("seeded board has no live cells")

// State is a phase of the loop lifecycle.
type State int

const (
	StateSeeding State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Loop.
type Options struct {
	// Width and Height size a randomly seeded grid. Ignored when Initial is set.
	Width  int
	Height int

	// Density is the probability a cell starts alive, clamped into [0, 1].
	Density float64

	// Seed initializes the random source and is echoed in the report.
	Seed int64

	// FPS is the target generation rate.
	FPS float64

	// Stability configures the cycle detector.
	Stability stability.Config

	// MaxGenerations ends the run after this many generations (0 = unlimited).
	MaxGenerations int

	// TrendWidth is the number of recent generations in the report trend.
	// Default: 64.
	TrendWidth int

	// Initial, when non-nil, replaces random seeding with a fixed board.
	Initial *life.Grid

	// OpenRenderer initializes the display. Nil means headless.
	OpenRenderer render.Opener

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// Decisions receives JSONL decision events. Nil disables them.
	Decisions *logging.DecisionLogger

	// TracerProvider creates the run span. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// Loop owns the grid, statistics, detector and renderer for one run. It is
// single-use and not safe for concurrent use.
type Loop struct {
	opts     Options
	state    State
	rng      *rand.Rand
	pacer    *pacing.Pacer
	logger   *slog.Logger
	tracer   trace.Tracer
	grid     *life.Grid
	stats    *stats.RunStats
	detector *stability.Detector
	renderer render.Renderer
	reseeds  int
}

// New validates opts and creates a loop in the Seeding state.
func New(opts Options) (*Loop, error) {
	if opts.Initial == nil && (opts.Width < 1 || opts.Height < 1) {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.MaxGenerations < 0 {
		return nil, fmt.Errorf("max generations must be non-negative, got %d", opts.MaxGenerations)
	}
	if err := opts.Stability.Validate(); err != nil {
		return nil, err
	}
	pacer, err := pacing.NewPacer(opts.FPS)
	if err != nil {
		return nil, err
	}
	if opts.TrendWidth <= 0 {
		opts.TrendWidth = constants.DefaultTrendWidth
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Loop{
		opts:     opts,
		state:    StateSeeding,
		rng:      rand.New(rand.NewPCG(uint64(opts.Seed), 0)),
		pacer:    pacer,
		logger:   logger,
		tracer:   tp.Tracer(tracerName),
		renderer: render.Nop{},
	}, nil
}

// Run seeds the board, steps it until a termination condition holds, and
// returns the final report. Cancelling ctx ends the run with reason
// ReasonInterrupt and still yields a full report. The only error is a
// failure to seed a non-empty board.
func (l *Loop) Run(ctx context.Context) (*Report, error) {
	if l.state != StateSeeding {
		return nil, fmt.Errorf("loop already %s", l.state)
	}

	ctx, span := l.tracer.Start(ctx, "simulation.run", trace.WithAttributes(
		attribute.Int64("lifewatch.seed", l.opts.Seed),
		attribute.Float64("lifewatch.density", l.opts.Density),
		attribute.Float64("lifewatch.fps", l.opts.FPS),
	))
	defer span.End()

	if err := l.seed(ctx); err != nil {
		l.state = StateTerminated
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reason := l.run(ctx)
	report := l.terminate(ctx, reason)

	span.SetAttributes(
		attribute.String("lifewatch.reason", report.Reason),
		attribute.Int("lifewatch.generations", report.Generations),
		attribute.Int("lifewatch.peak_population", report.PeakPopulation),
		attribute.Int("lifewatch.distinct_states", report.DistinctStates),
	)
	return report, nil
}

// seed performs the Seeding state.
func (l *Loop) seed(ctx context.Context) error {
	grid, err := l.newBoard()
	if err != nil {
		return err
	}

	population := grid.Population()
	if population == 0 {
		if l.opts.Initial != nil {
			return fmt.Errorf("%w: initial pattern is empty", ErrEmptySeed)
		}
		l.reseeds++
		l.logger.Info("initial board extinct; reseeding", "density", l.opts.Density)
		l.opts.Decisions.Log(map[string]any{"event": "reseed", "density": l.opts.Density, "seed": l.opts.Seed})
		trace.SpanFromContext(ctx).AddEvent("reseed")

		grid, err = l.newBoard()
		if err != nil {
			return err
		}
		population = grid.Population()
		if population == 0 {
			return fmt.Errorf("%w after reseed (density %v)", ErrEmptySeed, l.opts.Density)
		}
	}

	detector, err := stability.NewDetector(l.opts.Stability)
	if err != nil {
		return err
	}

	l.grid = grid
	l.stats = stats.New()
	l.detector = detector
	l.record(ctx, population)
	l.detector.Observe(grid.Hash(), l.stats.Generation())

	l.renderer = l.openRenderer()
	l.draw()
	return nil
}

func (l *Loop) newBoard() (*life.Grid, error) {
	if l.opts.Initial != nil {
		return l.opts.Initial, nil
	}
	return life.Seed(l.opts.Width, l.opts.Height, l.opts.Density, l.rng)
}

func (l *Loop) openRenderer() render.Renderer {
	if l.opts.OpenRenderer == nil {
		return render.Nop{}
	}
	r, err := l.opts.OpenRenderer()
	if err == nil && r != nil {
		return r
	}
	if err == nil {
		err = errors.New("opener returned no renderer")
	}
	level := slog.LevelWarn
	if errors.Is(err, render.ErrNotTerminal) {
		level = slog.LevelDebug
	}
	l.logger.Log(context.Background(), level, "renderer unavailable; running headless", "error", err)
	l.opts.Decisions.Log(map[string]any{"event": "headless", "error": err.Error()})
	return render.Nop{}
}

// run performs the Running state and returns the termination reason.
func (l *Loop) run(ctx context.Context) string {
	l.state = StateRunning
	for {
		if ctx.Err() != nil {
			return ReasonInterrupt
		}
		if l.opts.MaxGenerations > 0 && l.stats.Generation() >= l.opts.MaxGenerations {
			return ReasonGenerationLimit
		}

		start := l.pacer.Now()
		next, population := life.Step(l.grid)
		l.grid = next
		l.record(ctx, population)
		stable := l.detector.Observe(next.Hash(), l.stats.Generation())
		l.draw()

		if population == 0 {
			return ReasonExtinction
		}
		if stable {
			result, _ := l.detector.Result()
			return StabilityReason(result.Period)
		}

		if err := l.pacer.Wait(ctx, start); err != nil {
			return ReasonInterrupt
		}
	}
}

func (l *Loop) record(ctx context.Context, population int) {
	l.stats.Update(population)
	l.logger.Log(ctx, logging.LevelTrace, "generation",
		"generation", l.stats.Generation(), "population", population)
}

func (l *Loop) draw() {
	err := l.renderer.DrawFrame(l.grid, render.Status(l.stats.Generation(), l.stats.Population()))
	if err == nil {
		return
	}
	l.logger.Warn("renderer failed; continuing headless", "error", err)
	l.opts.Decisions.Log(map[string]any{"event": "headless", "error": err.Error(), "generation": l.stats.Generation()})
	l.renderer = render.Nop{}
}

// terminate performs the Terminated state.
func (l *Loop) terminate(ctx context.Context, reason string) *Report {
	l.state = StateTerminated
	l.stats.SetReason(reason)

	if err := l.renderer.Clear(); err != nil {
		l.logger.Warn("clearing renderer failed", "error", err)
	}

	report := l.report()
	l.logger.Info("simulation terminated",
		"reason", report.Reason,
		"generations", report.Generations,
		"population", report.FinalPopulation)
	l.opts.Decisions.Log(map[string]any{
		"event":       "terminated",
		"reason":      report.Reason,
		"generation":  report.Generations,
		"population":  report.FinalPopulation,
		"seed":        report.Seed,
		"stable_hash": stableHash(report),
	})
	trace.SpanFromContext(ctx).AddEvent("terminated", trace.WithAttributes(
		attribute.String("lifewatch.reason", report.Reason),
	))
	return report
}

func stableHash(r *Report) string {
	if r.Stability == nil {
		return ""
	}
	return r.Stability.Hash.String()
}
