package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/internal"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/todomvctest"
)

func navigate(ctx context.Context, s todomvc.Session) error {
	return todomvc.Navigate(ctx, s, "http://fixture.test/#/")
}

func pass(context.Context, todomvc.Session) error { return nil }

func fail(msg string) Func {
	return func(context.Context, todomvc.Session) error { return errors.New(msg) }
}

// fakeOpener hands out in-memory sessions and remembers them.
type fakeOpener struct {
	sessions []*todomvctest.Session
	err      error
	opened   atomic.Int32
}

func (f *fakeOpener) open(context.Context) (todomvc.Session, error) {
	f.opened.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	s := todomvctest.NewSession()
	f.sessions = append(f.sessions, s)
	return s, nil
}

func statuses(r *Report) []Status {
	var out []Status
	for _, res := range r.Results {
		out = append(out, res.Status)
	}
	return out
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)

	op := &fakeOpener{}
	_, err = NewRunner(op.open, WithClock(nil))
	assert.Error(t, err)

	_, err = NewRunner(op.open, WithLoggerFactory(nil))
	assert.Error(t, err)
}

func TestRun_SerialGroupSkipsAfterFailure(t *testing.T) {
	op := &fakeOpener{}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	suite := Suite{
		Name:  "serial",
		Setup: navigate,
		Groups: []Group{
			{Name: "dependent", Serial: true, Scenarios: []Scenario{
				{Name: "first", Run: pass},
				{Name: "second", Run: fail("boom")},
				{Name: "third", Run: pass},
			}},
			{Name: "independent", Scenarios: []Scenario{
				{Name: "a", Run: fail("nope")},
				{Name: "b", Run: pass},
			}},
		},
	}

	rep := r.Run(context.Background(), suite)
	assert.Equal(t, []Status{Passed, Failed, Skipped, Failed, Passed}, statuses(rep))
	assert.Equal(t, ReasonSerialFailure, rep.Results[2].Reason)
	assert.Equal(t, "boom", rep.Results[1].Error)
	assert.EqualError(t, rep.Results[1].Err(), "boom")
	assert.True(t, rep.Failed())
	assert.Equal(t, Summary{Passed: 2, Failed: 2, Skipped: 1}, rep.Summary())

	require.Len(t, op.sessions, 1)
	assert.True(t, op.sessions[0].Closed(), "session closed after suite")
}

func TestRun_ExplicitSkip(t *testing.T) {
	op := &fakeOpener{}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name: "skips",
		Groups: []Group{{Name: "g", Serial: true, Scenarios: []Scenario{
			{Name: "pending", Skip: "waiting on product decision"},
			{Name: "runs", Run: pass},
		}}},
	})
	assert.Equal(t, []Status{Skipped, Passed}, statuses(rep))
	assert.Equal(t, "waiting on product decision", rep.Results[0].Reason)
	assert.False(t, rep.Failed(), "skips do not fail a suite")
}

func TestRun_OpenFailureSkipsEverything(t *testing.T) {
	op := &fakeOpener{err: errors.New("chrome not found")}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name: "no browser",
		Groups: []Group{{Name: "g", Scenarios: []Scenario{
			{Name: "a", Run: pass},
			{Name: "b", Skip: "own reason"},
		}}},
	})
	assert.True(t, rep.Failed())
	assert.True(t, rep.InfraFailed())
	assert.Contains(t, rep.SetupError, "chrome not found")
	assert.Equal(t, []Status{Skipped, Skipped}, statuses(rep))
	assert.Equal(t, ReasonSetupFailure, rep.Results[0].Reason)
	assert.Equal(t, "own reason", rep.Results[1].Reason)
}

func TestRun_SetupFailureTakesScreenshot(t *testing.T) {
	op := &fakeOpener{}
	dir := t.TempDir()
	r, err := NewRunner(op.open, WithScreenshotDir(dir))
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name:   "Broken Setup",
		Setup:  func(ctx context.Context, s todomvc.Session) error { return errors.New("page never rendered") },
		Groups: []Group{{Name: "g", Scenarios: []Scenario{{Name: "a", Run: pass}}}},
	})
	assert.True(t, rep.Failed())
	assert.Equal(t, "page never rendered", rep.SetupError)
	assert.False(t, rep.InfraFailed())
	require.NotEmpty(t, rep.SetupScreenshot)
	assert.True(t, strings.HasPrefix(filepath.Base(rep.SetupScreenshot), "broken-setup-setup-"))
}

func TestRun_FailureScreenshot(t *testing.T) {
	op := &fakeOpener{}
	dir := filepath.Join(t.TempDir(), "shots")
	r, err := NewRunner(op.open, WithScreenshotDir(dir))
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name:  "Sanity Suite",
		Setup: navigate,
		Groups: []Group{{Name: "g", Scenarios: []Scenario{
			{Name: "user can add an item", Run: fail("mismatch")},
			{Name: "fine", Run: pass},
		}}},
	})

	shot := rep.Results[0].Screenshot
	require.NotEmpty(t, shot)
	assert.True(t, strings.HasPrefix(filepath.Base(shot), "sanity-suite-user-can-add-an-item-"), shot)
	data, err := os.ReadFile(shot)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	assert.Empty(t, rep.Results[1].Screenshot, "no screenshot for passing scenarios")
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	op := &fakeOpener{}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name: "panics",
		Groups: []Group{{Name: "g", Scenarios: []Scenario{
			{Name: "explodes", Run: func(context.Context, todomvc.Session) error { panic("nil map") }},
		}}},
	})
	require.Len(t, rep.Results, 1)
	assert.Equal(t, Failed, rep.Results[0].Status)
	assert.Contains(t, rep.Results[0].Error, "nil map")
}

func TestRun_CancelledContextSkips(t *testing.T) {
	op := &fakeOpener{}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	rep := r.Run(ctx, Suite{
		Name: "cancel",
		Groups: []Group{{Name: "g", Scenarios: []Scenario{
			{Name: "cancels", Run: func(context.Context, todomvc.Session) error { cancel(); return nil }},
			{Name: "never", Run: pass},
		}}},
	})
	assert.Equal(t, []Status{Passed, Skipped}, statuses(rep))
	assert.Equal(t, ReasonCancelled, rep.Results[1].Reason)
}

func TestRun_InvalidSuite(t *testing.T) {
	op := &fakeOpener{}
	r, err := NewRunner(op.open)
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name:   "invalid",
		Groups: []Group{{Name: "g", Scenarios: []Scenario{{Name: "no body"}}}},
	})
	assert.True(t, rep.Failed())
	assert.Contains(t, rep.SetupError, "no body")
	assert.Zero(t, op.opened.Load(), "no session for an invalid suite")
}

func TestRun_Durations(t *testing.T) {
	op := &fakeOpener{}
	clock := internal.NewStepClock(time.Time{}, 100*time.Millisecond)
	r, err := NewRunner(op.open, WithClock(clock))
	require.NoError(t, err)

	rep := r.Run(context.Background(), Suite{
		Name:   "timed",
		Groups: []Group{{Name: "g", Scenarios: []Scenario{{Name: "a", Run: pass}}}},
	})
	assert.Equal(t, 100*time.Millisecond, rep.Results[0].Duration)
	assert.Equal(t, 300*time.Millisecond, rep.Duration)
}

func TestRunAll_IndependentSessions(t *testing.T) {
	var opened atomic.Int32
	open := func(context.Context) (todomvc.Session, error) {
		opened.Add(1)
		return todomvctest.NewSession(), nil
	}
	r, err := NewRunner(open)
	require.NoError(t, err)

	mk := func(name, label string) Suite {
		return Suite{
			Name:  name,
			Setup: navigate,
			Groups: []Group{{Name: "g", Serial: true, Scenarios: []Scenario{
				{Name: "add", Run: func(ctx context.Context, s todomvc.Session) error {
					return todomvc.AddTask(ctx, s, label)
				}},
				{Name: "count is one", Run: func(ctx context.Context, s todomvc.Session) error {
					n, err := todomvc.TaskCountRemaining(ctx, s)
					if err != nil {
						return err
					}
					return ExpectEqual("remaining", "1", n)
				}},
			}}},
		}
	}
	suites := []Suite{mk("s1", "one"), mk("s2", "two"), mk("s3", "three"), mk("s4", "four")}

	reports := r.RunAll(context.Background(), suites, 3)
	require.Len(t, reports, 4)
	for i, rep := range reports {
		assert.Equal(t, suites[i].Name, rep.Suite, "order preserved")
		assert.False(t, rep.Failed(), "suite %s: %+v", rep.Suite, rep.Results)
	}
	assert.EqualValues(t, 4, opened.Load())
	assert.False(t, AnyFailed(reports))
}

func TestExpect(t *testing.T) {
	assert.NoError(t, ExpectEqual("count", "1", "1"))
	assert.NoError(t, ExpectTrue("present", true))
	assert.NoError(t, ExpectFalse("present", false))

	err := ExpectEqual("count", "1", "2")
	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "count: want 1, got 2", ae.Error())

	assert.Error(t, ExpectTrue("present", false))
	assert.Error(t, ExpectFalse("present", true))
}

func sampleReports() []*Report {
	return []*Report{
		{
			Suite:    "BDD Suite",
			Duration: 2 * time.Second,
			Results: []Result{
				{Group: "Add", Scenario: "Given I am a user", Status: Passed, Duration: time.Second},
				{Group: "Add", Scenario: "Then it appears", Status: Failed, Error: "remaining: want 1, got 2", Screenshot: "shots/x.png"},
				{Group: "Clear", Scenario: "moved to Completed", Status: Skipped, Reason: "disputed"},
			},
		},
		{Suite: "Broken", SetupError: "open session: no chrome"},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReports()))

	out := buf.String()
	for _, want := range []string{
		"BDD Suite", "Add", "PASS", "Given I am a user",
		"FAIL", "remaining: want 1, got 2", "screenshot: shots/x.png",
		"SKIP", "disputed", "setup: open session: no chrome",
		"3 scenarios: 1 passed, 1 failed, 1 skipped",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReports()))

	var doc struct {
		Summary Summary `json:"summary"`
		Suites  []struct {
			Suite      string `json:"suite"`
			SetupError string `json:"setup_error"`
		} `json:"suites"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Summary{Passed: 1, Failed: 1, Skipped: 1}, doc.Summary)
	require.Len(t, doc.Suites, 2)
	assert.Equal(t, "open session: no chrome", doc.Suites[1].SetupError)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleReports()))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	summary, ok := doc["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, summary["failed"])
	assert.Contains(t, buf.String(), "reason: disputed")
}
