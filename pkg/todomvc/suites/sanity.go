package suites

import (
	"context"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/scenario"
)

// Sanity is a single serial group walking one task through its lifecycle:
// add, reorder check, edit, delete, complete, clear.
func Sanity(opts Options) scenario.Suite {
	opts = opts.withDefaults()
	var last string

	return scenario.Suite{
		Name:  "Sanity Suite",
		Setup: navigateTo(opts.URL),
		Groups: []scenario.Group{{
			Name:   "sanity",
			Serial: true,
			Scenarios: []scenario.Scenario{
				{
					Name: "user can add a to do list item",
					Run: func(ctx context.Context, s todomvc.Session) error {
						if err := todomvc.AddTask(ctx, s, opts.label()); err != nil {
							return err
						}
						return expectRemaining(ctx, s, "1")
					},
				},
				{
					Name: "a item new to the list is always added at the bottom",
					Run: func(ctx context.Context, s todomvc.Session) error {
						last = opts.label()
						if err := addAll(ctx, s, "Task", last); err != nil {
							return err
						}
						return expectLast(ctx, s, last)
					},
				},
				{
					Name: "user can update an added item",
					Run: func(ctx context.Context, s todomvc.Session) error {
						updated := opts.label()
						if err := todomvc.UpdateTask(ctx, s, last, updated); err != nil {
							return err
						}
						if err := expectPresent(ctx, s, last, false); err != nil {
							return err
						}
						if err := expectPresent(ctx, s, updated, true); err != nil {
							return err
						}
						last = updated
						return nil
					},
				},
				{
					Name: "user can delete a task",
					Run: func(ctx context.Context, s todomvc.Session) error {
						if err := todomvc.RemoveTask(ctx, s, last); err != nil {
							return err
						}
						return expectPresent(ctx, s, last, false)
					},
				},
				{
					Name: "user can mark an item as complete successfully",
					Run: func(ctx context.Context, s todomvc.Session) error {
						last = opts.label()
						if err := todomvc.AddTask(ctx, s, last); err != nil {
							return err
						}
						if err := todomvc.ToggleTask(ctx, s, last); err != nil {
							return err
						}
						struck, err := todomvc.IsTaskStruckThrough(ctx, s, last)
						if err != nil {
							return err
						}
						if err := scenario.ExpectTrue("struck through", struck); err != nil {
							return err
						}
						if err := todomvc.GoToActive(ctx, s); err != nil {
							return err
						}
						return expectPresent(ctx, s, last, false)
					},
				},
				{
					Name: "user can clear completed list with one click",
					Run: func(ctx context.Context, s todomvc.Session) error {
						if err := todomvc.ClearCompleted(ctx, s); err != nil {
							return err
						}
						if err := todomvc.GoToAll(ctx, s); err != nil {
							return err
						}
						return expectPresent(ctx, s, last, false)
					},
				},
				{
					Name: "cleared completed tasks should be visible in the completed tab",
					Skip: ClearedStillCompletedReason,
					Run: func(ctx context.Context, s todomvc.Session) error {
						if err := todomvc.GoToCompleted(ctx, s); err != nil {
							return err
						}
						return expectPresent(ctx, s, last, true)
					},
				},
			},
		}},
	}
}
