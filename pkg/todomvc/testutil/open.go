package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/scenario"
)

// Open launches the browser named by cfg.Driver and returns it as a Session.
func Open(ctx context.Context, cfg BrowserConfig) (todomvc.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case "", DriverRod:
		c, err := NewBrowserClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverPlaywright:
		c, err := NewPlaywrightClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown driver %q (want %s or %s)", cfg.Driver, DriverRod, DriverPlaywright)
}

// Opener returns a scenario.Opener that launches a fresh browser per suite.
func Opener(cfg BrowserConfig) scenario.Opener {
	return func(ctx context.Context) (todomvc.Session, error) {
		return Open(ctx, cfg)
	}
}

// RunSuite runs suite and mirrors every scenario outcome as a subtest named
// "<group>/<scenario>". Skipped scenarios are reported with t.Skip.
func RunSuite(t *testing.T, r *scenario.Runner, suite scenario.Suite) *scenario.Report {
	t.Helper()
	rep := r.Run(t.Context(), suite)
	if rep.SetupError != "" {
		t.Errorf("suite %q setup: %s", suite.Name, rep.SetupError)
	}
	for _, res := range rep.Results {
		t.Run(res.Group+"/"+res.Scenario, func(t *testing.T) {
			switch res.Status {
			case scenario.Failed:
				if res.Screenshot != "" {
					t.Logf("screenshot: %s", res.Screenshot)
				}
				t.Fatal(res.Error)
			case scenario.Skipped:
				t.Skip(res.Reason)
			}
		})
	}
	return rep
}
