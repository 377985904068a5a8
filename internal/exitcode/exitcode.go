// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates every scenario passed or was skipped.
	Success = 0

	// Failure indicates at least one scenario or suite setup failed.
	Failure = 1

	// ConfigError indicates invalid flags, environment or config file.
	ConfigError = 2

	// InfraError indicates the browser, driver or fixture server could not
	// be started.
	InfraError = 3
)
