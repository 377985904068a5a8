package todomvc

import "fmt"

// Task is a todo entry as observed in the rendered list.
type Task struct {
	Label     string `json:"label" yaml:"label"`
	Completed bool   `json:"completed" yaml:"completed"`
	// Position is the zero-based row index within the current view.
	Position int `json:"position" yaml:"position"`
}

// Filter is a view filter of the todo list.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// String returns the visible text of the filter link.
func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// ParseFilter parses the visible link text of a filter.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "All":
		return FilterAll, nil
	case "Active":
		return FilterActive, nil
	case "Completed":
		return FilterCompleted, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}
