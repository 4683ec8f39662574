package progress

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// FetchMessage is shown next to the spinner while the log is read.
const FetchMessage = "Reading commits..."

const spinnerInterval = 100 * time.Millisecond

// Spinner wraps briandowns/spinner. The zero value, and any Spinner created
// for a non-terminal, does nothing.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner returns a spinner drawing on f. It is inert when enabled is
// false or f is not a terminal.
func NewSpinner(f *os.File, message string, enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}
	caps := DetectTerminalCapabilities(f)
	if !caps.IsTTY {
		return &Spinner{}
	}

	s := spinner.New(spinner.CharSets[SpinnerSet(caps)], spinnerInterval, spinner.WithWriterFile(f))
	s.Suffix = " " + message
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	return &Spinner{s: s}
}

// Enabled reports whether the spinner will draw anything.
func (sp *Spinner) Enabled() bool {
	return sp != nil && sp.s != nil
}

// Start begins drawing.
func (sp *Spinner) Start() {
	if sp.Enabled() {
		sp.s.Start()
	}
}

// Stop clears the spinner line.
func (sp *Spinner) Stop() {
	if sp.Enabled() {
		sp.s.Stop()
	}
}
