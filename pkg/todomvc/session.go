package todomvc

import "context"

// Session is a live browser page the facade drives.
//
// Selector arguments are CSS selectors. Unless noted otherwise a method acts
// on the first element matching the selector and blocks until the element is
// available or the driver's default timeout expires. Implementations never
// retry on their own; a timeout is returned as an error.
type Session interface {
	// Navigate loads url in the page.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching selector is visible.
	WaitVisible(ctx context.Context, selector string) error

	// Count returns the number of elements currently matching selector.
	// It does not wait.
	Count(ctx context.Context, selector string) (int, error)

	// Texts returns the rendered text of every element currently matching
	// selector, in document order. It does not wait.
	Texts(ctx context.Context, selector string) ([]string, error)

	Text(ctx context.Context, selector string) (string, error)
	Value(ctx context.Context, selector string) (string, error)
	Checked(ctx context.Context, selector string) (bool, error)

	// ComputedStyle returns the computed value of a CSS property, e.g.
	// "text-decoration-line".
	ComputedStyle(ctx context.Context, selector, property string) (string, error)

	Focus(ctx context.Context, selector string) error

	// Type focuses the element and sends text as key strokes, one keydown
	// per printable character. Drivers may insert characters no US key
	// produces as text instead.
	Type(ctx context.Context, selector, text string) error

	// Fill clears the element's current value and types text.
	Fill(ctx context.Context, selector, text string) error

	// Press sends a single named key ("Enter", "Escape") to the focused
	// element.
	Press(ctx context.Context, key string) error

	Click(ctx context.Context, selector string) error
	DoubleClick(ctx context.Context, selector string) error
	Hover(ctx context.Context, selector string) error

	// ClickText clicks the first element matching selector whose visible
	// text equals text exactly.
	ClickText(ctx context.Context, selector, text string) error

	// Screenshot captures the current viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the page and its browser context.
	Close() error
}

// Named keys accepted by Session.Press.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)
