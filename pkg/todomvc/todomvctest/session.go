// Package todomvctest provides an in-memory todomvc.Session for tests that
// do not need a browser.
//
// Session models the TodoMVC markup contract: it understands the selectors
// the facade emits, keeps the todo list across navigations the way the
// application's local storage does, and hides elements the application does
// not render (the footer on an empty list, the destroy button of a row that
// is not hovered, the clear button when nothing is completed).
package todomvctest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
)

var (
	// ErrNoElement is returned when a selector matches nothing.
	ErrNoElement = errors.New("no element matches selector")

	// ErrNotVisible is returned when the element exists but is hidden.
	ErrNotVisible = errors.New("element is not visible")

	// ErrClosed is returned by every call after Close.
	ErrClosed = errors.New("session closed")

	// ErrUnsupported is returned for selectors the model does not know.
	ErrUnsupported = errors.New("unsupported selector")
)

var rowRe = regexp.MustCompile(`^ul\.todo-list li:(?:nth-child\((\d+)\)|(last-child))(?: (.+))?$`)

type focusTarget int

const (
	focusNone focusTarget = iota
	focusNewTodo
	focusEdit
)

type item struct {
	id    int
	title string
	done  bool
}

// Session is an in-memory TodoMVC page. It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	url      string
	loaded   bool
	closed   bool
	items    []item
	nextID   int
	filter   todomvc.Filter
	focus    focusTarget
	input    string
	editing  int
	editBuf  string
	hovered  int
	failures map[string]error
	calls    []string
}

// NewSession returns an empty, not yet navigated page.
func NewSession() *Session {
	return &Session{
		editing:  -1,
		hovered:  -1,
		failures: make(map[string]error),
	}
}

// FailOn makes every call of method (e.g. "Click") on selector return err.
// An empty selector matches every selector.
func (s *Session) FailOn(method, selector string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+"|"+selector] = err
}

// Items returns the whole list regardless of the active filter.
func (s *Session) Items() []todomvc.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todomvc.Task, len(s.items))
	for i, it := range s.items {
		out[i] = todomvc.Task{Label: it.title, Completed: it.done, Position: i}
	}
	return out
}

// Calls returns the method names invoked so far, in order.
func (s *Session) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// URL returns the last navigated URL, including the filter fragment.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) enter(ctx context.Context, method, selector string) error {
	s.calls = append(s.calls, method)
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return ErrClosed
	}
	if err, ok := s.failures[method+"|"+selector]; ok {
		return err
	}
	if err, ok := s.failures[method+"|"]; ok {
		return err
	}
	if method != "Navigate" && method != "Screenshot" && !s.loaded {
		return fmt.Errorf("%s %q: page not loaded: %w", method, selector, ErrNoElement)
	}
	return nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Navigate", url); err != nil {
		return err
	}
	s.url = url
	s.loaded = true
	s.focus = focusNone
	s.input = ""
	s.editing = -1
	s.hovered = -1
	s.filter = filterFromURL(url)
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "WaitVisible", selector); err != nil {
		return err
	}
	return s.visible(selector)
}

func (s *Session) Count(ctx context.Context, selector string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Count", selector); err != nil {
		return 0, err
	}
	switch selector {
	case todomvc.SelRows, todomvc.SelRowLabels:
		return len(s.view()), nil
	case todomvc.SelClearCompleted:
		// Hidden, not removed, while nothing is completed.
		if len(s.items) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	if s.visible(selector) != nil {
		return 0, nil
	}
	return 1, nil
}

func (s *Session) Texts(ctx context.Context, selector string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Texts", selector); err != nil {
		return nil, err
	}
	switch selector {
	case todomvc.SelRows, todomvc.SelRowLabels:
		view := s.view()
		out := make([]string, len(view))
		for i, it := range view {
			out[i] = it.title
		}
		return out, nil
	}
	return nil, fmt.Errorf("Texts %q: %w", selector, ErrUnsupported)
}

func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Text", selector); err != nil {
		return "", err
	}
	switch selector {
	case todomvc.SelTodoCount:
		if len(s.items) == 0 {
			return "", fmt.Errorf("Text %q: %w", selector, ErrNoElement)
		}
		n := 0
		for _, it := range s.items {
			if !it.done {
				n++
			}
		}
		noun := "items"
		if n == 1 {
			noun = "item"
		}
		return fmt.Sprintf("%d %s left", n, noun), nil
	case todomvc.SelSelectedFilter:
		if len(s.items) == 0 {
			return "", fmt.Errorf("Text %q: %w", selector, ErrNoElement)
		}
		return s.filter.String(), nil
	}
	it, part, err := s.row(selector)
	if err != nil {
		return "", err
	}
	if part != "label" {
		return "", fmt.Errorf("Text %q: %w", selector, ErrUnsupported)
	}
	return it.title, nil
}

func (s *Session) Value(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Value", selector); err != nil {
		return "", err
	}
	switch selector {
	case todomvc.SelNewTodo:
		return s.input, nil
	case todomvc.SelEditing:
		if s.editing < 0 {
			return "", fmt.Errorf("Value %q: %w", selector, ErrNoElement)
		}
		return s.editBuf, nil
	}
	it, part, err := s.row(selector)
	if err != nil {
		return "", err
	}
	if part != "input.edit" {
		return "", fmt.Errorf("Value %q: %w", selector, ErrUnsupported)
	}
	if it.id == s.editing {
		return s.editBuf, nil
	}
	return it.title, nil
}

func (s *Session) Checked(ctx context.Context, selector string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Checked", selector); err != nil {
		return false, err
	}
	if selector == todomvc.SelToggleAll {
		if len(s.items) == 0 {
			return false, fmt.Errorf("Checked %q: %w", selector, ErrNoElement)
		}
		return s.allDone(), nil
	}
	it, part, err := s.row(selector)
	if err != nil {
		return false, err
	}
	if part != "input.toggle" {
		return false, fmt.Errorf("Checked %q: %w", selector, ErrUnsupported)
	}
	return it.done, nil
}

func (s *Session) ComputedStyle(ctx context.Context, selector, property string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "ComputedStyle", selector); err != nil {
		return "", err
	}
	it, part, err := s.row(selector)
	if err != nil {
		return "", err
	}
	if part != "label" || property != "text-decoration-line" {
		return "", fmt.Errorf("ComputedStyle %q %s: %w", selector, property, ErrUnsupported)
	}
	if it.done {
		return "line-through", nil
	}
	return "none", nil
}

func (s *Session) Focus(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Focus", selector); err != nil {
		return err
	}
	switch selector {
	case todomvc.SelNewTodo:
		s.blur()
		s.focus = focusNewTodo
		return nil
	case todomvc.SelEditing:
		if s.editing < 0 {
			return fmt.Errorf("Focus %q: %w", selector, ErrNoElement)
		}
		s.focus = focusEdit
		return nil
	}
	return fmt.Errorf("Focus %q: %w", selector, ErrUnsupported)
}

func (s *Session) Type(ctx context.Context, selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Type", selector); err != nil {
		return err
	}
	return s.write(selector, text, false)
}

func (s *Session) Fill(ctx context.Context, selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Fill", selector); err != nil {
		return err
	}
	return s.write(selector, text, true)
}

func (s *Session) write(selector, text string, replace bool) error {
	switch selector {
	case todomvc.SelNewTodo:
		if s.focus != focusNewTodo {
			s.blur()
			s.focus = focusNewTodo
		}
		if replace {
			s.input = ""
		}
		s.input += text
		return nil
	case todomvc.SelEditing:
		if s.editing < 0 {
			return fmt.Errorf("write %q: %w", selector, ErrNoElement)
		}
		s.focus = focusEdit
		if replace {
			s.editBuf = ""
		}
		s.editBuf += text
		return nil
	}
	return fmt.Errorf("write %q: %w", selector, ErrUnsupported)
}

func (s *Session) Press(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Press", key); err != nil {
		return err
	}
	switch key {
	case todomvc.KeyEnter:
		switch s.focus {
		case focusNewTodo:
			if title := strings.TrimSpace(s.input); title != "" {
				s.items = append(s.items, item{id: s.nextID, title: title})
				s.nextID++
			}
			s.input = ""
		case focusEdit:
			s.commitEdit()
		}
	case todomvc.KeyEscape:
		if s.focus == focusEdit {
			s.editing = -1
			s.editBuf = ""
			s.focus = focusNone
		}
	default:
		return fmt.Errorf("Press %q: unsupported key", key)
	}
	return nil
}

func (s *Session) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Click", selector); err != nil {
		return err
	}
	switch selector {
	case todomvc.SelToggleAll:
		if len(s.items) == 0 {
			return fmt.Errorf("Click %q: %w", selector, ErrNotVisible)
		}
		s.blur()
		done := !s.allDone()
		for i := range s.items {
			s.items[i].done = done
		}
		return nil
	case todomvc.SelClearCompleted:
		if !s.anyDone() {
			return fmt.Errorf("Click %q: %w", selector, ErrNotVisible)
		}
		s.blur()
		kept := s.items[:0]
		for _, it := range s.items {
			if !it.done {
				kept = append(kept, it)
			}
		}
		s.items = kept
		return nil
	}
	it, part, err := s.row(selector)
	if err != nil {
		return err
	}
	switch part {
	case "input.toggle":
		s.blur()
		s.item(it.id).done = !it.done
		return nil
	case "button.destroy":
		if s.hovered != it.id {
			return fmt.Errorf("Click %q: %w", selector, ErrNotVisible)
		}
		s.blur()
		s.remove(it.id)
		s.hovered = -1
		return nil
	}
	return fmt.Errorf("Click %q: %w", selector, ErrUnsupported)
}

func (s *Session) DoubleClick(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "DoubleClick", selector); err != nil {
		return err
	}
	it, part, err := s.row(selector)
	if err != nil {
		return err
	}
	if part != "label" {
		return fmt.Errorf("DoubleClick %q: %w", selector, ErrUnsupported)
	}
	s.blur()
	s.editing = it.id
	s.editBuf = it.title
	s.focus = focusEdit
	return nil
}

func (s *Session) Hover(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Hover", selector); err != nil {
		return err
	}
	it, part, err := s.row(selector)
	if err != nil {
		return err
	}
	if part != "" {
		return fmt.Errorf("Hover %q: %w", selector, ErrUnsupported)
	}
	s.hovered = it.id
	return nil
}

func (s *Session) ClickText(ctx context.Context, selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "ClickText", selector); err != nil {
		return err
	}
	if selector != todomvc.SelFilterLinks {
		return fmt.Errorf("ClickText %q: %w", selector, ErrUnsupported)
	}
	if len(s.items) == 0 {
		return fmt.Errorf("ClickText %q %q: %w", selector, text, ErrNotVisible)
	}
	f, err := todomvc.ParseFilter(text)
	if err != nil {
		return fmt.Errorf("ClickText %q %q: %w", selector, text, ErrNoElement)
	}
	s.blur()
	s.filter = f
	s.url = withFragment(s.url, f)
	return nil
}

// pngHeader is the signature of a PNG file.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "Screenshot", ""); err != nil {
		return nil, err
	}
	return append([]byte(nil), pngHeader...), nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "Close")
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}

// view returns the items rendered under the active filter.
func (s *Session) view() []item {
	var out []item
	for _, it := range s.items {
		switch {
		case s.filter == todomvc.FilterActive && it.done:
		case s.filter == todomvc.FilterCompleted && !it.done:
		default:
			out = append(out, it)
		}
	}
	return out
}

// row resolves a row selector to the item and the row-relative part.
func (s *Session) row(selector string) (item, string, error) {
	m := rowRe.FindStringSubmatch(selector)
	if m == nil {
		return item{}, "", fmt.Errorf("%q: %w", selector, ErrUnsupported)
	}
	view := s.view()
	idx := len(view) - 1
	if m[2] == "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return item{}, "", fmt.Errorf("%q: %w", selector, ErrUnsupported)
		}
		idx = n - 1
	}
	if idx < 0 || idx >= len(view) {
		return item{}, "", fmt.Errorf("%q: %w", selector, ErrNoElement)
	}
	return view[idx], m[3], nil
}

func (s *Session) visible(selector string) error {
	switch selector {
	case todomvc.SelNewTodo:
		return nil
	case todomvc.SelTodoCount, todomvc.SelToggleAll, todomvc.SelFilterLinks, todomvc.SelSelectedFilter:
		if len(s.items) > 0 {
			return nil
		}
	case todomvc.SelClearCompleted:
		if s.anyDone() {
			return nil
		}
	case todomvc.SelEditing:
		if s.editing >= 0 {
			return nil
		}
	default:
		if _, _, err := s.row(selector); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("%q: %w", selector, ErrNotVisible)
}

// blur commits a pending inline edit, as the application does when the
// edit input loses focus.
func (s *Session) blur() {
	if s.editing >= 0 {
		s.commitEdit()
	}
}

func (s *Session) commitEdit() {
	title := strings.TrimSpace(s.editBuf)
	if title == "" {
		s.remove(s.editing)
	} else if it := s.item(s.editing); it != nil {
		it.title = title
	}
	s.editing = -1
	s.editBuf = ""
	s.focus = focusNone
}

func (s *Session) item(id int) *item {
	for i := range s.items {
		if s.items[i].id == id {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Session) remove(id int) {
	for i, it := range s.items {
		if it.id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Session) allDone() bool {
	for _, it := range s.items {
		if !it.done {
			return false
		}
	}
	return len(s.items) > 0
}

func (s *Session) anyDone() bool {
	for _, it := range s.items {
		if it.done {
			return true
		}
	}
	return false
}

func filterFromURL(url string) todomvc.Filter {
	switch {
	case strings.HasSuffix(url, "#/active"):
		return todomvc.FilterActive
	case strings.HasSuffix(url, "#/completed"):
		return todomvc.FilterCompleted
	}
	return todomvc.FilterAll
}

func withFragment(url string, f todomvc.Filter) string {
	if i := strings.Index(url, "#"); i >= 0 {
		url = url[:i]
	}
	switch f {
	case todomvc.FilterActive:
		return url + "#/active"
	case todomvc.FilterCompleted:
		return url + "#/completed"
	}
	return url + "#/"
}
