package todomvc

import (
	"context"
	"fmt"
	"strings"
)

// Navigate loads url and waits until the new-todo input is visible.
func Navigate(ctx context.Context, s Session, url string) error {
	if err := s.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := s.WaitVisible(ctx, SelNewTodo); err != nil {
		return fmt.Errorf("wait for %s: %w", SelNewTodo, err)
	}
	return nil
}

// AddTask types label into the new-todo input and submits it. The task
// appears at the bottom of the current view.
func AddTask(ctx context.Context, s Session, label string) error {
	if err := s.Focus(ctx, SelNewTodo); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	if err := s.Type(ctx, SelNewTodo, label); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	if err := s.Press(ctx, KeyEnter); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

// TaskCountRemaining returns the leading count of the "<N> item(s) left"
// counter, e.g. "1". The counter is not rendered while the list is empty, in
// which case ErrNotRendered is returned.
func TaskCountRemaining(ctx context.Context, s Session) (string, error) {
	if err := rendered(ctx, s, SelTodoCount); err != nil {
		return "", fmt.Errorf("read counter: %w", err)
	}
	text, err := s.Text(ctx, SelTodoCount)
	if err != nil {
		return "", fmt.Errorf("read counter: %w", err)
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedCounter, text)
	}
	for _, r := range fields[0] {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrUnexpectedCounter, text)
		}
	}
	return fields[0], nil
}

// LastTaskLabel returns the label of the bottom row of the current view, as
// held by the row's edit input.
func LastTaskLabel(ctx context.Context, s Session) (string, error) {
	v, err := s.Value(ctx, within(lastRowSelector, partEdit))
	if err != nil {
		return "", fmt.Errorf("read last task: %w", err)
	}
	return v, nil
}

// UpdateTask renames the task labelled oldLabel to newLabel through the
// row's inline editor.
func UpdateTask(ctx context.Context, s Session, oldLabel, newLabel string) error {
	row, err := findRow(ctx, s, "update", oldLabel)
	if err != nil {
		return err
	}
	if err := s.DoubleClick(ctx, within(row, partLabel)); err != nil {
		return fmt.Errorf("update %q: %w", oldLabel, err)
	}
	if err := s.Fill(ctx, SelEditing, newLabel); err != nil {
		return fmt.Errorf("update %q: %w", oldLabel, err)
	}
	if err := s.Press(ctx, KeyEnter); err != nil {
		return fmt.Errorf("update %q: %w", oldLabel, err)
	}
	return nil
}

// CancelEdit opens the inline editor of label, types text and abandons the
// edit with Escape. The label stays unchanged.
func CancelEdit(ctx context.Context, s Session, label, text string) error {
	row, err := findRow(ctx, s, "cancel edit", label)
	if err != nil {
		return err
	}
	if err := s.DoubleClick(ctx, within(row, partLabel)); err != nil {
		return fmt.Errorf("cancel edit %q: %w", label, err)
	}
	if err := s.Fill(ctx, SelEditing, text); err != nil {
		return fmt.Errorf("cancel edit %q: %w", label, err)
	}
	if err := s.Press(ctx, KeyEscape); err != nil {
		return fmt.Errorf("cancel edit %q: %w", label, err)
	}
	return nil
}

// IsTaskPresent reports whether a row labelled label is rendered under the
// active filter. Duplicate labels are not an error here.
func IsTaskPresent(ctx context.Context, s Session, label string) (bool, error) {
	matches, err := matchRows(ctx, s, label)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// RemoveTask deletes the task labelled label. The destroy button is only
// rendered while the row is hovered, so the row is hovered first and the
// button clicked like a user would.
func RemoveTask(ctx context.Context, s Session, label string) error {
	row, err := findRow(ctx, s, "remove", label)
	if err != nil {
		return err
	}
	if err := s.Hover(ctx, row); err != nil {
		return fmt.Errorf("remove %q: %w", label, err)
	}
	if err := s.Click(ctx, within(row, partDestroy)); err != nil {
		return fmt.Errorf("remove %q: %w", label, err)
	}
	return nil
}

// ToggleTask flips the completed state of the task labelled label.
func ToggleTask(ctx context.Context, s Session, label string) error {
	row, err := findRow(ctx, s, "toggle", label)
	if err != nil {
		return err
	}
	if err := s.Click(ctx, within(row, partToggle)); err != nil {
		return fmt.Errorf("toggle %q: %w", label, err)
	}
	return nil
}

// ToggleAll flips every task, completing all of them unless all are already
// completed.
func ToggleAll(ctx context.Context, s Session) error {
	if err := s.Click(ctx, SelToggleAll); err != nil {
		return fmt.Errorf("toggle all: %w", err)
	}
	return nil
}

// IsTaskChecked reports whether the checkbox of the task labelled label is
// selected.
func IsTaskChecked(ctx context.Context, s Session, label string) (bool, error) {
	row, err := findRow(ctx, s, "checkbox", label)
	if err != nil {
		return false, err
	}
	checked, err := s.Checked(ctx, within(row, partToggle))
	if err != nil {
		return false, fmt.Errorf("checkbox %q: %w", label, err)
	}
	return checked, nil
}

// IsTaskStruckThrough reports whether the label of the task is rendered with
// a line-through decoration.
func IsTaskStruckThrough(ctx context.Context, s Session, label string) (bool, error) {
	row, err := findRow(ctx, s, "strikethrough", label)
	if err != nil {
		return false, err
	}
	deco, err := s.ComputedStyle(ctx, within(row, partLabel), "text-decoration-line")
	if err != nil {
		return false, fmt.Errorf("strikethrough %q: %w", label, err)
	}
	return strings.Contains(deco, "line-through"), nil
}

// GoTo switches the list to filter f.
func GoTo(ctx context.Context, s Session, f Filter) error {
	if err := s.ClickText(ctx, SelFilterLinks, f.String()); err != nil {
		return fmt.Errorf("go to %s: %w", f, err)
	}
	return nil
}

func GoToAll(ctx context.Context, s Session) error       { return GoTo(ctx, s, FilterAll) }
func GoToActive(ctx context.Context, s Session) error    { return GoTo(ctx, s, FilterActive) }
func GoToCompleted(ctx context.Context, s Session) error { return GoTo(ctx, s, FilterCompleted) }

// SelectedFilter returns the filter whose link is highlighted. The filter
// links are not rendered while the list is empty.
func SelectedFilter(ctx context.Context, s Session) (Filter, error) {
	if err := rendered(ctx, s, SelSelectedFilter); err != nil {
		return 0, fmt.Errorf("read selected filter: %w", err)
	}
	text, err := s.Text(ctx, SelSelectedFilter)
	if err != nil {
		return 0, fmt.Errorf("read selected filter: %w", err)
	}
	return ParseFilter(strings.TrimSpace(text))
}

// ClearCompleted clicks the "Clear completed" button.
func ClearCompleted(ctx context.Context, s Session) error {
	if err := s.Click(ctx, SelClearCompleted); err != nil {
		return fmt.Errorf("clear completed: %w", err)
	}
	return nil
}

// Tasks returns the rows rendered under the active filter, top to bottom.
func Tasks(ctx context.Context, s Session) ([]Task, error) {
	labels, err := s.Texts(ctx, SelRowLabels)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	tasks := make([]Task, 0, len(labels))
	for i, label := range labels {
		done, err := s.Checked(ctx, within(rowSelector(i), partToggle))
		if err != nil {
			return nil, fmt.Errorf("read task %d: %w", i, err)
		}
		tasks = append(tasks, Task{
			Label:     strings.TrimSpace(label),
			Completed: done,
			Position:  i,
		})
	}
	return tasks, nil
}

// rendered checks without waiting that selector is in the document, so an
// absent footer fails at once instead of after the driver timeout.
func rendered(ctx context.Context, s Session, selector string) error {
	n, err := s.Count(ctx, selector)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", selector, ErrNotRendered)
	}
	return nil
}

// matchRows returns the positions of the rows labelled label.
func matchRows(ctx context.Context, s Session, label string) ([]int, error) {
	labels, err := s.Texts(ctx, SelRowLabels)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var matches []int
	for i, l := range labels {
		if strings.TrimSpace(l) == label {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// findRow resolves label to the selector of its single row.
func findRow(ctx context.Context, s Session, op, label string) (string, error) {
	matches, err := matchRows(ctx, s, label)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", op, label, err)
	}
	switch len(matches) {
	case 0:
		return "", &TaskError{Op: op, Label: label, Err: ErrTaskNotFound}
	case 1:
		return rowSelector(matches[0]), nil
	default:
		return "", &TaskError{Op: op, Label: label, Matches: len(matches), Err: ErrAmbiguousLabel}
	}
}
