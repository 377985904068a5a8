package scenario

import "fmt"

// AssertionError reports an expectation that did not hold.
type AssertionError struct {
	What string
	Want any
	Got  any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: want %v, got %v", e.What, e.Want, e.Got)
}

// ExpectEqual returns an *AssertionError unless got equals want.
func ExpectEqual[T comparable](what string, want, got T) error {
	if want != got {
		return &AssertionError{What: what, Want: want, Got: got}
	}
	return nil
}

// ExpectTrue returns an *AssertionError unless got is true.
func ExpectTrue(what string, got bool) error {
	return ExpectEqual(what, true, got)
}

// ExpectFalse returns an *AssertionError unless got is false.
func ExpectFalse(what string, got bool) error {
	return ExpectEqual(what, false, got)
}
