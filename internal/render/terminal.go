package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvandessel/lifewatch/internal/life"
)

const (
	escClear     = "\x1b[2J"
	escHome      = "\x1b[H"
	escEraseLine = "\x1b[K" // clears what a longer previous row left behind
)

// halfBlocks maps (top, bottom) pixel pairs onto one character cell.
var halfBlocks = [2][2]rune{
	{' ', '▄'},
	{'▀', '█'},
}

// Terminal draws frames on an ANSI terminal, packing two pixel rows into
// each text row with half-block characters.
type Terminal struct {
	out         io.Writer
	statusStyle lipgloss.Style
}

// NewTerminal initializes a terminal renderer by clearing the screen.
func NewTerminal(out io.Writer) (*Terminal, error) {
	if out == nil {
		return nil, fmt.Errorf("terminal output is required")
	}
	t := &Terminal{
		out:         out,
		statusStyle: lipgloss.NewStyle().Bold(true),
	}
	if _, err := io.WriteString(out, escClear+escHome); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return t, nil
}

// DrawFrame writes g and status starting at the top-left of the screen.
func (t *Terminal) DrawFrame(g *life.Grid, status string) error {
	w := bufio.NewWriter(t.out)
	w.WriteString(escHome)
	for y := 0; y < g.Height(); y += 2 {
		for x := 0; x < g.Width(); x++ {
			top, bottom := 0, 0
			if g.Alive(x, y) {
				top = 1
			}
			if g.Alive(x, y+1) {
				bottom = 1
			}
			w.WriteRune(halfBlocks[top][bottom])
		}
		w.WriteString(escEraseLine)
		w.WriteByte('\n')
	}
	w.WriteString(t.statusStyle.Render(status))
	w.WriteString(escEraseLine)
	w.WriteByte('\n')
	if err := w.Flush(); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	return nil
}

// Clear blanks the screen.
func (t *Terminal) Clear() error {
	if _, err := io.WriteString(t.out, escClear+escHome); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	return nil
}
