// Package stability detects when a deterministic simulation has locked into
// a short cycle.
//
// The detector remembers the last generation at which each grid state was
// seen. When a state recurs within MaxPeriod generations, the (state, period)
// pair gains a confirmation; once a pair reaches MinRepeats confirmations
// the run is declared stable. Requiring repeated confirmations keeps a
// single coincidental recurrence from ending a run.
package stability

import (
	"fmt"

	"github.com/nvandessel/lifewatch/internal/constants"
	"github.com/nvandessel/lifewatch/internal/life"
)

// Config holds the detector tunables.
type Config struct {
	// MaxPeriod is the longest period counted as stable. Default: 10.
	MaxPeriod int

	// MinRepeats is the number of confirmations needed. Default: 3.
	MinRepeats int
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		MaxPeriod:  constants.DefaultMaxPeriod,
		MinRepeats: constants.DefaultMinRepeats,
	}
}

// Validate checks that both tunables are at least 1.
func (c Config) Validate() error {
	if c.MaxPeriod < 1 {
		return fmt.Errorf("max_period must be at least 1, got %d", c.MaxPeriod)
	}
	if c.MinRepeats < 1 {
		return fmt.Errorf("min_repeats must be at least 1, got %d", c.MinRepeats)
	}
	return nil
}

// Result describes the recurrence that triggered a stability declaration.
type Result struct {
	Hash          life.Hash `json:"-"`
	Period        int       `json:"period"`
	Confirmations int       `json:"confirmations"`
	Generation    int       `json:"generation"`
}

type cycleKey struct {
	hash   life.Hash
	period int
}

// Detector tracks grid-state recurrences. It is not safe for concurrent use;
// the simulation loop owns it exclusively.
type Detector struct {
	config        Config
	lastSeen      map[life.Hash]int
	confirmations map[cycleKey]int
	result        *Result
}

// NewDetector creates a detector. It returns an error if config is invalid.
func NewDetector(config Config) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		config:        config,
		lastSeen:      make(map[life.Hash]int),
		confirmations: make(map[cycleKey]int),
	}, nil
}

// Observe records that the grid with the given hash was seen at generation
// and reports whether the run is now considered stable. Once stable, every
// later call keeps returning true and the first Result is kept.
func (d *Detector) Observe(hash life.Hash, generation int) bool {
	if d.result != nil {
		return true
	}

	stable := false
	if prev, ok := d.lastSeen[hash]; ok {
		period := generation - prev
		if period > 0 && period <= d.config.MaxPeriod {
			key := cycleKey{hash: hash, period: period}
			d.confirmations[key]++
			if count := d.confirmations[key]; count >= d.config.MinRepeats {
				d.result = &Result{
					Hash:          hash,
					Period:        period,
					Confirmations: count,
					Generation:    generation,
				}
				stable = true
			}
		}
	}
	d.lastSeen[hash] = generation
	return stable
}

// Result returns the triggering recurrence, if stability was declared.
func (d *Detector) Result() (Result, bool) {
	if d.result == nil {
		return Result{}, false
	}
	return *d.result, true
}

// Seen returns the number of distinct states observed.
func (d *Detector) Seen() int {
	return len(d.lastSeen)
}
