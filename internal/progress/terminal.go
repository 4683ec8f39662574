// Package progress shows a spinner on stderr while commits are being read.
// Nothing is drawn unless stderr is a terminal, so piped and redirected runs
// see byte-identical output.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the diagnostic stream can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities inspects f (normally os.Stderr).
// Checks: isatty, NO_COLOR env, RELNOTES_ASCII env, terminal width.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	if f == nil {
		return TerminalCapabilities{}
	}
	isTTY := term.IsTerminal(int(f.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELNOTES_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SpinnerSet returns the briandowns/spinner character set index to use.
// Unicode: braille dots (set 14). ASCII: | / - \ (set 9).
func SpinnerSet(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return 14
	}
	return 9
}
