package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/thesyncim/todomvc-e2e/cmd/todomvc-fixture/server"
	"github.com/thesyncim/todomvc-e2e/internal/config"
	"github.com/thesyncim/todomvc-e2e/internal/exitcode"
	"github.com/thesyncim/todomvc-e2e/internal/logger"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/scenario"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/suites"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/testutil"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/words"
)

// Report formats accepted by --format.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// openSession builds the opener for a run; tests replace it.
var openSession = testutil.Opener

func newRunCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:       "run [suite...]",
		Short:     "Run scenario suites (default: all)",
		ValidArgs: suites.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(cmd, args, format, output)
		},
	}

	def := config.Default()
	f := cmd.Flags()
	f.String("base-url", def.BaseURL, "TodoMVC application URL")
	f.String("driver", def.Driver, "browser driver (rod or playwright)")
	f.Bool("headless", def.Headless, "run the browser without a window")
	f.Duration("timeout", def.Timeout, "timeout for each browser operation")
	f.Duration("slow-motion", def.SlowMotion, "delay inserted between input actions")
	f.String("screenshots", def.Screenshots, "directory for failure screenshots (empty disables)")
	f.String("log-level", def.LogLevel, "log level (disabled, error, warn, info, debug, trace)")
	f.Int("words", def.Words, "words in a generated task label")
	f.Uint64("seed", def.Seed, "label generator seed (0 picks one at random)")
	f.Int("parallel", def.Parallel, "suites run concurrently, each in its own browser")
	f.Bool("fixture", def.Fixture, "serve the bundled TodoMVC fixture and run against it")
	f.StringVarP(&format, "format", "f", formatText, "report format (text, yaml, json)")
	f.StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

func runSuites(cmd *cobra.Command, args []string, format, output string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return withCode(exitcode.ConfigError, err)
	}
	write, err := reportWriter(format)
	if err != nil {
		return withCode(exitcode.ConfigError, err)
	}
	factory, err := logger.NewFactory(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return withCode(exitcode.ConfigError, err)
	}
	log := factory.NewLogger(logger.ScopeCLI)

	baseURL := cfg.BaseURL
	if cfg.Fixture {
		srv, err := startFixture(factory)
		if err != nil {
			return withCode(exitcode.InfraError, err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warnf("fixture shutdown: %v", err)
			}
		}()
		baseURL = srv.URL()
	}

	built, err := suites.Build(suites.Options{
		URL:    baseURL,
		Labels: words.New(cfg.Seed),
		Words:  cfg.Words,
	}, args...)
	if err != nil {
		return withCode(exitcode.ConfigError, err)
	}

	out := cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return withCode(exitcode.ConfigError, fmt.Errorf("creating report file: %w", err))
		}
		defer file.Close()
		out = file
	}

	runner, err := scenario.NewRunner(
		openSession(testutil.BrowserConfig{
			Driver:        cfg.Driver,
			Headless:      cfg.Headless,
			Timeout:       cfg.Timeout,
			SlowMotion:    cfg.SlowMotion,
			LoggerFactory: factory,
		}),
		scenario.WithLoggerFactory(factory),
		scenario.WithScreenshotDir(cfg.Screenshots),
	)
	if err != nil {
		return withCode(exitcode.ConfigError, err)
	}

	log.Infof("running %d suite(s) against %s with %s", len(built), baseURL, cfg.Driver)
	reports := runner.RunAll(cmd.Context(), built, cfg.Parallel)
	if err := write(out, reports); err != nil {
		return withCode(exitcode.InfraError, fmt.Errorf("writing report: %w", err))
	}
	return outcome(reports)
}

func reportWriter(format string) (func(io.Writer, []*scenario.Report) error, error) {
	switch format {
	case formatText:
		return scenario.WriteText, nil
	case formatYAML:
		return scenario.WriteYAML, nil
	case formatJSON:
		return scenario.WriteJSON, nil
	}
	return nil, fmt.Errorf("unknown report format %q (want %s, %s or %s)", format, formatText, formatYAML, formatJSON)
}

// outcome converts reports into the command's error: infrastructure failures
// take precedence over failing scenarios.
func outcome(reports []*scenario.Report) error {
	var infra, failed int
	for _, r := range reports {
		if r.InfraFailed() {
			infra++
			continue
		}
		if r.Failed() {
			failed++
		}
	}
	switch {
	case infra > 0:
		return withCode(exitcode.InfraError, fmt.Errorf("%d suite(s) could not open a browser session", infra))
	case failed > 0:
		return withCode(exitcode.Failure, fmt.Errorf("%d suite(s) failed", failed))
	}
	return nil
}

func startFixture(f logging.LoggerFactory) (*server.Server, error) {
	cfg := server.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.LoggerFactory = f
	srv, err := server.NewServer(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := srv.Start(); err != nil {
		return nil, fmt.Errorf("starting fixture: %w", err)
	}
	return srv, nil
}
