package suites

import (
	"context"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/scenario"
)

// BDD phrases each feature as a serial Given/When/Then group. All groups
// share the suite's session, so later groups see the tasks (and the view
// filter) earlier groups left behind.
func BDD(opts Options) scenario.Suite {
	opts = opts.withDefaults()
	return scenario.Suite{
		Name:  "BDD Suite",
		Setup: navigateTo(opts.URL),
		Groups: []scenario.Group{
			addGroup(opts),
			editGroup(opts),
			deleteGroup(opts),
			completeGroup(opts),
			activeTabGroup(opts),
			clearCompletedGroup(opts),
		},
	}
}

func addGroup(opts Options) scenario.Group {
	task := opts.label()
	return scenario.Group{
		Name:   "Test: Add ToDo Item",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I am a user", Run: navigateTo(opts.URL)},
			{Name: "When I create a new todo item", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.AddTask(ctx, s, task)
			}},
			{Name: "Then it appears last on my todo list", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := expectRemaining(ctx, s, "1"); err != nil {
					return err
				}
				return expectLast(ctx, s, task)
			}},
		},
	}
}

func editGroup(opts Options) scenario.Group {
	task, edited := opts.label(), opts.longLabel()
	return scenario.Group{
		Name:   "Test: Edit ToDo Item",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I have created a todo item", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.AddTask(ctx, s, task)
			}},
			{Name: "When I edit a todo item", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.UpdateTask(ctx, s, task, edited)
			}},
			{Name: "Then the todo item gets updated with the new changes", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := expectPresent(ctx, s, task, false); err != nil {
					return err
				}
				return expectPresent(ctx, s, edited, true)
			}},
		},
	}
}

func deleteGroup(opts Options) scenario.Group {
	doomed, other := opts.label(), opts.label()
	return scenario.Group{
		Name:   "Test: Delete ToDo Item",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I have created a todo item", Run: func(ctx context.Context, s todomvc.Session) error {
				return addAll(ctx, s, doomed, other)
			}},
			{Name: "When I delete a todo item using the red X", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.RemoveTask(ctx, s, doomed)
			}},
			{Name: "Then the todo item is removed from my todo list", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := todomvc.GoToAll(ctx, s); err != nil {
					return err
				}
				return expectPresent(ctx, s, doomed, false)
			}},
		},
	}
}

func completeGroup(opts Options) scenario.Group {
	task := opts.label()
	return scenario.Group{
		Name:   "Test: Mark ToDo Item as Complete",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I have created a todo item", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.AddTask(ctx, s, task)
			}},
			{Name: "When I mark a todo item as completed", Run: func(ctx context.Context, s todomvc.Session) error {
				return todomvc.ToggleTask(ctx, s, task)
			}},
			{Name: "Then it is marked with a green check mark", Run: func(ctx context.Context, s todomvc.Session) error {
				checked, err := todomvc.IsTaskChecked(ctx, s, task)
				if err != nil {
					return err
				}
				return scenario.ExpectTrue("checkbox selected", checked)
			}},
			{Name: "And it is crossed off my todo list with a Strikethrough", Run: func(ctx context.Context, s todomvc.Session) error {
				struck, err := todomvc.IsTaskStruckThrough(ctx, s, task)
				if err != nil {
					return err
				}
				return scenario.ExpectTrue("struck through", struck)
			}},
		},
	}
}

func activeTabGroup(opts Options) scenario.Group {
	active, completed := opts.label(), opts.longLabel()
	return scenario.Group{
		Name:   "Test: Only Not Completed Tasks show in the active tab",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I have marked a todo item as complete", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := addAll(ctx, s, active, completed); err != nil {
					return err
				}
				return todomvc.ToggleTask(ctx, s, completed)
			}},
			{Name: "When I view the Active list", Run: todomvc.GoToActive},
			{Name: "Then only Active (Not Completed) todo items are shown", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := expectPresent(ctx, s, completed, false); err != nil {
					return err
				}
				return expectPresent(ctx, s, active, true)
			}},
		},
	}
}

func clearCompletedGroup(opts Options) scenario.Group {
	active, completed := opts.label(), opts.longLabel()
	return scenario.Group{
		Name:   "Test: Clear Completed",
		Serial: true,
		Scenarios: []scenario.Scenario{
			{Name: "Given I have marked a todo item as complete", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := addAll(ctx, s, active, completed); err != nil {
					return err
				}
				return todomvc.ToggleTask(ctx, s, completed)
			}},
			{Name: "When I click \"Clear Completed\"", Run: todomvc.ClearCompleted},
			{Name: "Then the completed todo item is removed from my todo list", Run: func(ctx context.Context, s todomvc.Session) error {
				if err := expectPresent(ctx, s, completed, false); err != nil {
					return err
				}
				if err := todomvc.GoToAll(ctx, s); err != nil {
					return err
				}
				return expectPresent(ctx, s, completed, false)
			}},
			{
				Name: "And the todo item is moved to the Completed list",
				Skip: ClearedStillCompletedReason,
				Run: func(ctx context.Context, s todomvc.Session) error {
					if err := todomvc.GoToCompleted(ctx, s); err != nil {
						return err
					}
					return expectPresent(ctx, s, completed, true)
				},
			},
		},
	}
}
