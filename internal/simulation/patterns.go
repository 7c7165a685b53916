package simulation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nvandessel/lifewatch/internal/life"
)

// patterns are well-known boards usable instead of a random seed.
var patterns = map[string][]string{
	"blinker": {"###"},
	"block": {
		"##",
		"##",
	},
	"beacon": {
		"##..",
		"##..",
		"..##",
		"..##",
	},
	"toad": {
		".###",
		"###.",
	},
	"glider": {
		".#.",
		"..#",
		"###",
	},
	"r-pentomino": {
		".##",
		"##.",
		".#.",
	},
}

// PatternNames returns the known pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pattern returns the named pattern centered in a width x height grid.
func Pattern(name string, width, height int) (*life.Grid, error) {
	rows, ok := patterns[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q (known: %s)", name, strings.Join(PatternNames(), ", "))
	}
	p, err := life.Parse(rows...)
	if err != nil {
		return nil, fmt.Errorf("parsing pattern %q: %w", name, err)
	}
	return life.Embed(width, height, p, (width-p.Width())/2, (height-p.Height())/2)
}
