// Package todomvc is a page-object facade for the TodoMVC application.
//
// The facade is stateless: every operation is a function that takes a
// [Session] and re-resolves its target elements against the live page.
// Nothing is cached between calls, so a read always reflects what the
// browser currently renders under the active view filter.
//
// Tasks have no stable identifier. They are addressed by their visible
// label, and operations that act on a single task fail with
// [ErrAmbiguousLabel] when more than one row carries the same label.
//
// Usage:
//
//	if err := todomvc.Navigate(ctx, s, todomvc.DefaultURL); err != nil {
//		return err
//	}
//	if err := todomvc.AddTask(ctx, s, "buy milk"); err != nil {
//		return err
//	}
//	left, err := todomvc.TaskCountRemaining(ctx, s) // "1"
package todomvc
