package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pion/logging"
	"golang.org/x/sync/errgroup"

	"github.com/thesyncim/todomvc-e2e/internal/logger"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/internal"
)

// Skip reasons recorded by the runner.
const (
	ReasonSerialFailure = "previous scenario in serial group failed"
	ReasonSetupFailure  = "suite setup failed"
	ReasonCancelled     = "run cancelled"
)

// Option configures a Runner.
type Option func(*Runner) error

// WithLoggerFactory sets the factory the runner takes its logger from.
// Default: a factory that discards everything.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(r *Runner) error {
		if f == nil {
			return errors.New("logger factory is nil")
		}
		r.log = f.NewLogger(logger.ScopeRunner)
		return nil
	}
}

// WithScreenshotDir captures a PNG of the page into dir whenever a scenario
// or a suite setup fails. Default: no screenshots.
func WithScreenshotDir(dir string) Option {
	return func(r *Runner) error {
		r.shotDir = dir
		return nil
	}
}

// WithClock sets the clock used for durations. Default: system clock.
func WithClock(c internal.Clock) Option {
	return func(r *Runner) error {
		if c == nil {
			return errors.New("clock is nil")
		}
		r.clock = c
		return nil
	}
}

// Runner executes suites, one fresh session per suite.
type Runner struct {
	open    Opener
	log     logging.LeveledLogger
	clock   internal.Clock
	shotDir string
}

// NewRunner returns a runner that obtains sessions from open.
func NewRunner(open Opener, opts ...Option) (*Runner, error) {
	if open == nil {
		return nil, errors.New("opener is nil")
	}
	r := &Runner{
		open:  open,
		clock: internal.SystemClock{},
	}
	r.log = logger.Discard().NewLogger(logger.ScopeRunner)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RunAll runs suites with at most parallel of them in flight. Reports are
// returned in the order of suites.
func (r *Runner) RunAll(ctx context.Context, suites []Suite, parallel int) []*Report {
	if parallel <= 0 {
		parallel = 1
	}
	reports := make([]*Report, len(suites))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, suite := range suites {
		g.Go(func() error {
			reports[i] = r.Run(ctx, suite)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// Run executes suite on a new session and closes the session afterwards.
func (r *Runner) Run(ctx context.Context, suite Suite) *Report {
	started := r.clock.Now()
	rep := &Report{Suite: suite.Name, Started: started}
	defer func() { rep.Duration = r.clock.Since(started) }()

	if err := suite.Validate(); err != nil {
		rep.setupFailed(suite, fmt.Errorf("invalid suite: %w", err))
		return rep
	}

	r.log.Infof("suite %q: opening session", suite.Name)
	s, err := r.open(ctx)
	if err != nil {
		r.log.Errorf("suite %q: %v", suite.Name, err)
		rep.setupFailed(suite, fmt.Errorf("open session: %w", err))
		rep.infra = true
		return rep
	}
	defer func() {
		if err := s.Close(); err != nil {
			r.log.Warnf("suite %q: close session: %v", suite.Name, err)
		}
	}()

	if suite.Setup != nil {
		if err := call(ctx, s, suite.Setup); err != nil {
			r.log.Errorf("suite %q: setup: %v", suite.Name, err)
			rep.setupFailed(suite, err)
			rep.SetupScreenshot = r.screenshot(ctx, s, suite.Name, "setup")
			return rep
		}
	}

	for _, g := range suite.Groups {
		broken := false
		for _, sc := range g.Scenarios {
			res := Result{Group: g.Name, Scenario: sc.Name}
			switch {
			case sc.Skip != "":
				res.Status, res.Reason = Skipped, sc.Skip
			case broken:
				res.Status, res.Reason = Skipped, ReasonSerialFailure
			case ctx.Err() != nil:
				res.Status, res.Reason = Skipped, ReasonCancelled
			default:
				t0 := r.clock.Now()
				err := call(ctx, s, sc.Run)
				res.Duration = r.clock.Since(t0)
				if err != nil {
					res.Status, res.Error, res.err = Failed, err.Error(), err
					res.Screenshot = r.screenshot(ctx, s, suite.Name, sc.Name)
					broken = g.Serial
				} else {
					res.Status = Passed
				}
			}
			r.logResult(suite.Name, res)
			rep.Results = append(rep.Results, res)
		}
	}
	return rep
}

func (r *Runner) logResult(suite string, res Result) {
	switch res.Status {
	case Passed:
		r.log.Infof("PASS %s > %s > %s (%s)", suite, res.Group, res.Scenario, res.Duration)
	case Failed:
		r.log.Errorf("FAIL %s > %s > %s: %s", suite, res.Group, res.Scenario, res.Error)
	case Skipped:
		r.log.Infof("SKIP %s > %s > %s: %s", suite, res.Group, res.Scenario, res.Reason)
	}
}

// screenshot stores a PNG of the page and returns its path, or "" when
// screenshots are off or capture fails.
func (r *Runner) screenshot(ctx context.Context, s todomvc.Session, suite, name string) string {
	if r.shotDir == "" {
		return ""
	}
	data, err := s.Screenshot(ctx)
	if err != nil {
		r.log.Warnf("screenshot %s/%s: %v", suite, name, err)
		return ""
	}
	if err := os.MkdirAll(r.shotDir, 0o755); err != nil {
		r.log.Warnf("screenshot dir: %v", err)
		return ""
	}
	file := fmt.Sprintf("%s-%s-%s.png", slug.Make(suite), slug.Make(name), uuid.NewString()[:8])
	path := filepath.Join(r.shotDir, file)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.log.Warnf("screenshot %s: %v", path, err)
		return ""
	}
	return path
}

// call runs fn, turning a panic into an error so one broken scenario cannot
// take down the other suites of a run.
func call(ctx context.Context, s todomvc.Session, fn Func) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx, s)
}
