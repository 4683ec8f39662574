// Package logging configures the process-wide zerolog logger.
//
// Diagnostics always go to stderr so stdout carries nothing but the release
// notes. Without --debug only warnings and errors are emitted.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Setup points the global logger at w and sets the level. A nil w means stderr.
func Setup(w io.Writer, debug bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// Debugf is handed to packages that accept a printf-style debug hook.
func Debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
