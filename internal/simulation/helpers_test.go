package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/nvandessel/lifewatch/internal/life"
	"github.com/nvandessel/lifewatch/internal/render"
	"github.com/nvandessel/lifewatch/internal/stability"
)

// fastFPS keeps pacing waits negligible in tests.
const fastFPS = 1e6

// frame is one DrawFrame call captured by recordingRenderer.
type frame struct {
	status     string
	population int
	hash       life.Hash
}

// recordingRenderer captures frames. When failAt > 0, the failAt-th
// DrawFrame call returns an error.
type recordingRenderer struct {
	frames []frame
	clears int
	failAt int
}

func (r *recordingRenderer) DrawFrame(g *life.Grid, status string) error {
	r.frames = append(r.frames, frame{status: status, population: g.Population(), hash: g.Hash()})
	if r.failAt > 0 && len(r.frames) == r.failAt {
		return errors.New("display write failed")
	}
	return nil
}

func (r *recordingRenderer) Clear() error {
	r.clears++
	return nil
}

func (r *recordingRenderer) opener() render.Opener {
	return func() (render.Renderer, error) { return r, nil }
}

// newTestLoop builds a loop with fast pacing, failing the test on error.
func newTestLoop(t *testing.T, opts Options) *Loop {
	t.Helper()
	if opts.FPS == 0 {
		opts.FPS = fastFPS
	}
	if opts.Stability == (stability.Config{}) {
		opts.Stability = stability.DefaultConfig()
	}
	l, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

// mustPattern returns a named pattern centered in a width x height grid.
func mustPattern(t *testing.T, name string, width, height int) *life.Grid {
	t.Helper()
	g, err := Pattern(name, width, height)
	if err != nil {
		t.Fatalf("Pattern(%q): %v", name, err)
	}
	return g
}

// AssertReason asserts the report ended for the given reason.
func AssertReason(t *testing.T, r *Report, want string) {
	t.Helper()
	if r.Reason != want {
		t.Errorf("AssertReason: reason = %q, want %q (after %d generations)", r.Reason, want, r.Generations)
	}
}

// AssertAverageMatchesHistory asserts the average equals sum(history)/N.
func AssertAverageMatchesHistory(t *testing.T, r *Report) {
	t.Helper()
	if len(r.History) != r.Generations {
		t.Fatalf("AssertAverageMatchesHistory: %d history entries for %d generations", len(r.History), r.Generations)
	}
	sum := 0
	for _, p := range r.History {
		sum += p
	}
	want := float64(sum) / float64(r.Generations)
	if math.Abs(r.AveragePopulation-want) > 1e-9 {
		t.Errorf("AssertAverageMatchesHistory: average %.6f, want %.6f", r.AveragePopulation, want)
	}
}

// AssertFramesConsistent asserts every drawn status line reports the true
// population of the grid it was drawn with, and generations count up from 1.
func AssertFramesConsistent(t *testing.T, frames []frame) {
	t.Helper()
	for i, f := range frames {
		want := render.Status(i+1, f.population)
		if f.status != want {
			t.Errorf("AssertFramesConsistent: frame %d status %q, want %q", i, f.status, want)
		}
	}
}
