// Package constants provides named constants used throughout the lifewatch codebase.
// This centralizes display geometry and simulation defaults.
package constants

// Display geometry of the target monochrome panel.
const (
	// DisplayWidth is the pixel width of the target panel.
	DisplayWidth = 128

	// DisplayHeight is the pixel height of the target panel.
	DisplayHeight = 64

	// StatusBarHeight is the number of pixel rows reserved for one line of status text.
	StatusBarHeight = 8

	// GridWidth is the default grid width: one cell per pixel column.
	GridWidth = DisplayWidth

	// GridHeight is the default grid height: the panel minus the status bar.
	GridHeight = DisplayHeight - StatusBarHeight
)

// Simulation defaults
const (
	// DefaultDensity is the probability that a cell starts alive.
	DefaultDensity = 0.25

	// DefaultFPS is the target number of generations per second.
	DefaultFPS = 12.0

	// DefaultMaxGenerations caps a run. Zero means unlimited.
	DefaultMaxGenerations = 0
)

// Stability detection defaults
const (
	// DefaultMaxPeriod is the longest oscillation period treated as stable.
	DefaultMaxPeriod = 10

	// DefaultMinRepeats is the number of confirmations of the same
	// (state, period) pair required before declaring stability.
	DefaultMinRepeats = 3
)

// Reporting defaults
const (
	// DefaultTrendWidth is the number of recent generations shown in the trend.
	DefaultTrendWidth = 64
)
