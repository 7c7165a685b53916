// Package render presents simulation frames on a monochrome surface.
//
// A Renderer is chosen once at startup. Headless runs use Nop, so callers
// never branch on whether a display exists.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/nvandessel/lifewatch/internal/constants"
	"github.com/nvandessel/lifewatch/internal/life"
)

// ErrNotTerminal is returned by Open in auto mode when the output is not a TTY.
var ErrNotTerminal = errors.New("output is not a terminal")

// Renderer draws grid frames with a one-line status region.
type Renderer interface {
	// DrawFrame replaces the visible frame with g and status.
	DrawFrame(g *life.Grid, status string) error

	// Clear blanks the surface.
	Clear() error
}

// Opener initializes a renderer. A failing Opener means the run is headless.
type Opener func() (Renderer, error)

// Nop is the headless renderer. All methods succeed without output.
type Nop struct{}

// DrawFrame does nothing.
func (Nop) DrawFrame(*life.Grid, string) error { return nil }

// Clear does nothing.
func (Nop) Clear() error { return nil }

// IsHeadless reports whether r is the no-op renderer.
func IsHeadless(r Renderer) bool {
	_, ok := r.(Nop)
	return ok
}

// Status formats the status line shown beneath the grid.
func Status(generation, population int) string {
	return fmt.Sprintf("G:%d P:%d", generation, population)
}

// OpenerFor returns an Opener for the given mode writing to out.
func OpenerFor(mode constants.RenderMode, out io.Writer) Opener {
	return func() (Renderer, error) {
		return Open(mode, out)
	}
}

// Open initializes the renderer for mode.
func Open(mode constants.RenderMode, out io.Writer) (Renderer, error) {
	switch mode {
	case constants.RenderNone:
		return Nop{}, nil
	case constants.RenderTerminal:
	case constants.RenderAuto:
		if !isTerminal(out) {
			return nil, ErrNotTerminal
		}
	default:
		return nil, fmt.Errorf("unknown render mode: %q", mode)
	}

	t, err := NewTerminal(out)
	if err != nil {
		return nil, err
	}
	return t, nil
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
