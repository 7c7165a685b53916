package constants

// RenderMode selects how frames are presented.
type RenderMode string

const (
	// RenderNone runs fully headless.
	RenderNone RenderMode = "none"

	// RenderTerminal draws frames on the output terminal.
	RenderTerminal RenderMode = "terminal"

	// RenderAuto draws on the terminal only when the output is a TTY.
	RenderAuto RenderMode = "auto"
)

// Valid returns true if the mode is a recognized value.
func (m RenderMode) Valid() bool {
	switch m {
	case RenderNone, RenderTerminal, RenderAuto:
		return true
	}
	return false
}

// String returns the string representation of the mode.
func (m RenderMode) String() string {
	return string(m)
}
