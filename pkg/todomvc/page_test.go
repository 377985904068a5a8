package todomvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/todomvctest"
)

const testURL = "http://fixture.test/#/"

func newPage(t *testing.T, labels ...string) (*todomvctest.Session, context.Context) {
	t.Helper()
	ctx := context.Background()
	s := todomvctest.NewSession()
	require.NoError(t, todomvc.Navigate(ctx, s, testURL))
	for _, l := range labels {
		require.NoError(t, todomvc.AddTask(ctx, s, l))
	}
	return s, ctx
}

func TestAddTask_AppearsLastAndCounts(t *testing.T) {
	s, ctx := newPage(t)

	require.NoError(t, todomvc.AddTask(ctx, s, "Test task to do"))
	n, err := todomvc.TaskCountRemaining(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "1", n)

	require.NoError(t, todomvc.AddTask(ctx, s, "Task"))
	require.NoError(t, todomvc.AddTask(ctx, s, "alpha beta gamma"))

	last, err := todomvc.LastTaskLabel(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "alpha beta gamma", last)

	present, err := todomvc.IsTaskPresent(ctx, s, "alpha beta gamma")
	require.NoError(t, err)
	assert.True(t, present)

	n, err = todomvc.TaskCountRemaining(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "3", n)
}

func TestTaskCountRemaining_EmptyListHasNoCounter(t *testing.T) {
	s, ctx := newPage(t)

	_, err := todomvc.TaskCountRemaining(ctx, s)
	assert.ErrorIs(t, err, todomvc.ErrNotRendered)
	_, err = todomvc.SelectedFilter(ctx, s)
	assert.ErrorIs(t, err, todomvc.ErrNotRendered)
	assert.NotContains(t, s.Calls(), "Text", "absent footer must not be waited on")

	require.NoError(t, todomvc.AddTask(ctx, s, "only"))
	n, err := todomvc.TaskCountRemaining(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "1", n)

	require.NoError(t, todomvc.RemoveTask(ctx, s, "only"))
	_, err = todomvc.TaskCountRemaining(ctx, s)
	assert.ErrorIs(t, err, todomvc.ErrNotRendered)
}

func TestTaskCountRemaining_UnexpectedText(t *testing.T) {
	s := &counterSession{Session: todomvctest.NewSession(), text: "many items left"}
	_, err := todomvc.TaskCountRemaining(context.Background(), s)
	assert.ErrorIs(t, err, todomvc.ErrUnexpectedCounter)

	s.text = "   "
	_, err = todomvc.TaskCountRemaining(context.Background(), s)
	assert.ErrorIs(t, err, todomvc.ErrUnexpectedCounter)
}

// counterSession overrides the counter text of an in-memory page.
type counterSession struct {
	*todomvctest.Session
	text string
}

func (c *counterSession) Text(ctx context.Context, selector string) (string, error) {
	if selector == todomvc.SelTodoCount {
		return c.text, nil
	}
	return c.Session.Text(ctx, selector)
}

func TestUpdateTask(t *testing.T) {
	s, ctx := newPage(t, "old name", "other")

	require.NoError(t, todomvc.UpdateTask(ctx, s, "old name", "new name"))

	present, err := todomvc.IsTaskPresent(ctx, s, "old name")
	require.NoError(t, err)
	assert.False(t, present, "old label should be gone")

	present, err = todomvc.IsTaskPresent(ctx, s, "new name")
	require.NoError(t, err)
	assert.True(t, present, "new label should be rendered")

	tasks, err := todomvc.Tasks(ctx, s)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "new name", tasks[0].Label, "edit keeps position")
}

func TestCancelEdit_KeepsLabel(t *testing.T) {
	s, ctx := newPage(t, "keep me")

	require.NoError(t, todomvc.CancelEdit(ctx, s, "keep me", "discarded"))

	tasks, err := todomvc.Tasks(ctx, s)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep me", tasks[0].Label)
}

func TestRemoveTask_HoversBeforeClicking(t *testing.T) {
	s, ctx := newPage(t, "first", "doomed", "last")

	require.NoError(t, todomvc.RemoveTask(ctx, s, "doomed"))

	present, err := todomvc.IsTaskPresent(ctx, s, "doomed")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Len(t, s.Items(), 2)

	calls := s.Calls()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, []string{"Hover", "Click"}, calls[len(calls)-2:])
}

func TestRemoveTask_DestroyHiddenWithoutHover(t *testing.T) {
	s, ctx := newPage(t, "task")

	// The destroy button is only clickable on a hovered row.
	err := s.Click(ctx, "ul.todo-list li:nth-child(1) button.destroy")
	assert.ErrorIs(t, err, todomvctest.ErrNotVisible)
}

func TestToggleTask_CompletesAndFilters(t *testing.T) {
	s, ctx := newPage(t, "active one", "done one")

	require.NoError(t, todomvc.ToggleTask(ctx, s, "done one"))

	checked, err := todomvc.IsTaskChecked(ctx, s, "done one")
	require.NoError(t, err)
	assert.True(t, checked)

	struck, err := todomvc.IsTaskStruckThrough(ctx, s, "done one")
	require.NoError(t, err)
	assert.True(t, struck)

	struck, err = todomvc.IsTaskStruckThrough(ctx, s, "active one")
	require.NoError(t, err)
	assert.False(t, struck)

	n, err := todomvc.TaskCountRemaining(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "1", n)

	require.NoError(t, todomvc.GoToActive(ctx, s))
	present, err := todomvc.IsTaskPresent(ctx, s, "done one")
	require.NoError(t, err)
	assert.False(t, present, "completed task hidden under Active")

	require.NoError(t, todomvc.GoToCompleted(ctx, s))
	present, err = todomvc.IsTaskPresent(ctx, s, "done one")
	require.NoError(t, err)
	assert.True(t, present, "completed task shown under Completed")

	f, err := todomvc.SelectedFilter(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, todomvc.FilterCompleted, f)
}

func TestClearCompleted_RemovesFromEveryView(t *testing.T) {
	s, ctx := newPage(t, "stay", "go away")
	require.NoError(t, todomvc.ToggleTask(ctx, s, "go away"))

	require.NoError(t, todomvc.ClearCompleted(ctx, s))

	for _, f := range []todomvc.Filter{todomvc.FilterAll, todomvc.FilterActive, todomvc.FilterCompleted} {
		require.NoError(t, todomvc.GoTo(ctx, s, f))
		present, err := todomvc.IsTaskPresent(ctx, s, "go away")
		require.NoError(t, err)
		assert.False(t, present, "cleared task under %s", f)
	}
}

func TestToggleAll(t *testing.T) {
	s, ctx := newPage(t, "a", "b", "c")

	require.NoError(t, todomvc.ToggleAll(ctx, s))
	tasks, err := todomvc.Tasks(ctx, s)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.True(t, task.Completed, task.Label)
	}

	require.NoError(t, todomvc.ToggleAll(ctx, s))
	tasks, err = todomvc.Tasks(ctx, s)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.False(t, task.Completed, task.Label)
	}
}

func TestTasks_Positions(t *testing.T) {
	s, ctx := newPage(t, "one", "two", "three")
	require.NoError(t, todomvc.ToggleTask(ctx, s, "two"))

	tasks, err := todomvc.Tasks(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []todomvc.Task{
		{Label: "one", Position: 0},
		{Label: "two", Completed: true, Position: 1},
		{Label: "three", Position: 2},
	}, tasks)
}

func TestLabelLookup_Errors(t *testing.T) {
	s, ctx := newPage(t, "dup", "dup", "unique")

	present, err := todomvc.IsTaskPresent(ctx, s, "dup")
	require.NoError(t, err)
	assert.True(t, present, "duplicates still count as present")

	err = todomvc.ToggleTask(ctx, s, "dup")
	require.ErrorIs(t, err, todomvc.ErrAmbiguousLabel)
	var te *todomvc.TaskError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Matches)
	assert.Equal(t, "toggle", te.Op)

	err = todomvc.RemoveTask(ctx, s, "missing")
	assert.ErrorIs(t, err, todomvc.ErrTaskNotFound)

	err = todomvc.UpdateTask(ctx, s, "missing", "x")
	assert.ErrorIs(t, err, todomvc.ErrTaskNotFound)

	assert.Len(t, s.Items(), 3, "failed lookups must not mutate the list")
}

func TestNavigate_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")

	s := todomvctest.NewSession()
	s.FailOn("Navigate", "http://nowhere.test/", boom)
	err := todomvc.Navigate(ctx, s, "http://nowhere.test/")
	assert.ErrorIs(t, err, boom)

	s = todomvctest.NewSession()
	timeout := errors.New("context deadline exceeded")
	s.FailOn("WaitVisible", todomvc.SelNewTodo, timeout)
	err = todomvc.Navigate(ctx, s, testURL)
	assert.ErrorIs(t, err, timeout)
}

func TestOperations_PropagateDriverErrors(t *testing.T) {
	s, ctx := newPage(t, "task")
	boom := errors.New("driver failure")
	s.FailOn("Type", "", boom)

	err := todomvc.AddTask(ctx, s, "never added")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Items(), 1)
}

func TestOperations_RespectCancelledContext(t *testing.T) {
	s, _ := newPage(t, "task")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := todomvc.IsTaskPresent(ctx, s, "task")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFilter(t *testing.T) {
	for _, f := range []todomvc.Filter{todomvc.FilterAll, todomvc.FilterActive, todomvc.FilterCompleted} {
		got, err := todomvc.ParseFilter(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := todomvc.ParseFilter("all")
	assert.Error(t, err, "link text is case sensitive")
	assert.Equal(t, "Filter(7)", todomvc.Filter(7).String())
}
