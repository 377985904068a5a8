// Package logger builds the leveled loggers used across the suite.
//
// Every component asks the factory for a logger scoped to its name
// ("runner", "fixture", "rod", "playwright"), so verbosity can be raised for
// one component without flooding the rest.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

// Scopes used by the suite's components.
const (
	ScopeRunner     = "runner"
	ScopeFixture    = "fixture"
	ScopeRod        = "rod"
	ScopePlaywright = "playwright"
	ScopeCLI        = "cli"
)

// ParseLevel maps a level name to a log level. The empty string is "info".
func ParseLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return logging.LogLevelInfo, nil
	case "disabled", "off", "none":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	}
	return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
}

// NewFactory returns a factory writing to w at the named level.
func NewFactory(w io.Writer, level string) (*logging.DefaultLoggerFactory, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f := logging.NewDefaultLoggerFactory()
	f.Writer = w
	f.DefaultLogLevel = lvl
	return f, nil
}

// Discard returns a factory whose loggers drop everything.
func Discard() logging.LoggerFactory {
	f := logging.NewDefaultLoggerFactory()
	f.Writer = io.Discard
	f.DefaultLogLevel = logging.LogLevelDisabled
	return f
}
