package todomvc

import "fmt"

// DefaultURL is the public TodoMVC React example.
const DefaultURL = "https://todomvc.com/examples/react/#/"

// Selectors of the TodoMVC markup. This is an unversioned contract with the
// application: a markup change on the page breaks the facade.
const (
	SelNewTodo        = "input.new-todo"
	SelTodoCount      = "footer span.todo-count"
	SelToggleAll      = "input.toggle-all"
	SelRows           = "ul.todo-list li"
	SelRowLabels      = "ul.todo-list li label"
	SelEditing        = "ul.todo-list li.editing input.edit"
	SelFilterLinks    = "footer ul.filters a"
	SelSelectedFilter = "footer ul.filters a.selected"
	SelClearCompleted = "button.clear-completed"

	// Row-relative parts, appended to a row selector.
	partLabel   = "label"
	partToggle  = "input.toggle"
	partDestroy = "button.destroy"
	partEdit    = "input.edit"
)

// rowSelector addresses the row at zero-based position i of the current view.
func rowSelector(i int) string {
	return fmt.Sprintf("%s:nth-child(%d)", SelRows, i+1)
}

const lastRowSelector = SelRows + ":last-child"

func within(row, part string) string {
	return row + " " + part
}
