//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/testutil"
)

func browserConfig() testutil.BrowserConfig {
	cfg := testutil.DefaultBrowserConfig()
	if d := os.Getenv("E2E_DRIVER"); d != "" {
		cfg.Driver = d
	}
	return cfg
}

// openSession launches a browser for the test and closes it on cleanup.
func openSession(t *testing.T) todomvc.Session {
	t.Helper()
	s, err := testutil.Open(context.Background(), browserConfig())
	require.NoError(t, err, "failed to launch browser")
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	return s
}

// TestChrome_CanConnect verifies the complete E2E test infrastructure:
// 1. The application is reachable
// 2. Browser can launch in headless mode
// 3. The page object finds the new-task input
// 4. A screenshot can be captured
// 5. Cleanup works (no orphaned processes)
//
// This is a smoke test - it validates infrastructure, not TodoMVC behavior.
func TestChrome_CanConnect(t *testing.T) {
	ctx := context.Background()
	s := openSession(t)

	t.Logf("Navigating to %s", baseURL)
	require.NoError(t, todomvc.Navigate(ctx, s, baseURL))

	n, err := s.Count(ctx, todomvc.SelRows)
	require.NoError(t, err)
	assert.Zero(t, n, "fresh browser context should start with no tasks")

	shot, err := s.Screenshot(ctx)
	require.NoError(t, err)
	assert.Greater(t, len(shot), 8)
	assert.Equal(t, "\x89PNG", string(shot[:4]))
}
