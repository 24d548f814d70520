// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable consulted when no level flag is given.
const EnvLevel = "CERTLAB_LOG_LEVEL"

// Logger is the global logger used by every package.
var Logger = newLogger(os.Stderr, log.InfoLevel)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	return l
}

// Configure replaces Logger according to the CLI flags. Level precedence is
// flag, then CERTLAB_LOG_LEVEL, then info. When file is non-empty logs are
// appended to it; the returned closer releases the file.
func Configure(level, file string) (io.Closer, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	Logger = newLogger(out, ParseLevel(level))
	if file != "" {
		Logger.SetReportTimestamp(true)
	}
	return closer, nil
}

// Discard silences Logger. The TUI owns the terminal, so it calls this
// unless logs are redirected to a file.
func Discard() {
	Logger = newLogger(io.Discard, Logger.GetLevel())
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// With returns a child logger carrying a component prefix.
func With(component string) *log.Logger {
	return Logger.WithPrefix(component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
