package simulation

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nvandessel/lifewatch/internal/render"
	"github.com/nvandessel/lifewatch/internal/stability"
)

// Report summarizes a finished run.
type Report struct {
	Reason            string            `json:"reason"`
	Seed              int64             `json:"seed"`
	Width             int               `json:"width"`
	Height            int               `json:"height"`
	InitialPopulation int               `json:"initial_population"`
	Generations       int               `json:"generations"`
	FinalPopulation   int               `json:"final_population"`
	PeakPopulation    int               `json:"peak_population"`
	AveragePopulation float64           `json:"average_population"`
	Runtime           time.Duration     `json:"-"`
	RuntimeSeconds    float64           `json:"runtime_seconds"`
	StdDev            *float64          `json:"population_stddev,omitempty"`
	Trend             string            `json:"trend"`
	Stability         *stability.Result `json:"stability,omitempty"`
	DistinctStates    int               `json:"distinct_states"`
	Reseeds           int               `json:"reseeds"`
	Headless          bool              `json:"headless"`
	History           []int             `json:"-"`
}

func (l *Loop) report() *Report {
	s := l.stats
	r := &Report{
		Reason:            s.Reason(),
		Seed:              l.opts.Seed,
		Width:             l.grid.Width(),
		Height:            l.grid.Height(),
		InitialPopulation: s.Initial(),
		Generations:       s.Generation(),
		FinalPopulation:   s.Population(),
		PeakPopulation:    s.Peak(),
		AveragePopulation: s.Average(),
		Runtime:           s.Runtime(),
		Trend:             s.Trend(l.opts.TrendWidth),
		DistinctStates:    l.detector.Seen(),
		Reseeds:           l.reseeds,
		Headless:          render.IsHeadless(l.renderer),
		History:           s.History(),
	}
	r.RuntimeSeconds = r.Runtime.Seconds()
	if sd, ok := s.StdDev(); ok {
		r.StdDev = &sd
	}
	if res, ok := l.detector.Result(); ok {
		r.Stability = &res
	}
	return r
}

type reportLine struct {
	label string
	value string
}

// WriteText writes the human-readable summary to w.
func (r *Report) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.English)

	lines := []reportLine{
		{"Reason", r.Reason},
		{"Seed", strconv.FormatInt(r.Seed, 10)},
		{"Grid", fmt.Sprintf("%d x %d", r.Width, r.Height)},
		{"Initial population", p.Sprintf("%d", r.InitialPopulation)},
		{"Generations", p.Sprintf("%d", r.Generations)},
		{"Final population", p.Sprintf("%d", r.FinalPopulation)},
		{"Peak population", p.Sprintf("%d", r.PeakPopulation)},
		{"Average population", p.Sprintf("%.2f", r.AveragePopulation)},
		{"Runtime (s)", p.Sprintf("%.2f", r.RuntimeSeconds)},
		{"Distinct states", p.Sprintf("%d", r.DistinctStates)},
	}
	if r.Stability != nil {
		lines = append(lines, reportLine{"Confirmations", strconv.Itoa(r.Stability.Confirmations)})
	}
	if r.StdDev != nil {
		lines = append(lines, reportLine{"Population stdev", p.Sprintf("%.2f", *r.StdDev)})
	}
	if r.Trend != "" {
		lines = append(lines, reportLine{"Recent pop trend", r.Trend})
	}

	if _, err := fmt.Fprintln(w, "Game of Life Run Stats"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-20s%s\n", line.label+":", line.value); err != nil {
			return err
		}
	}
	return nil
}
