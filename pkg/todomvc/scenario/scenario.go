// Package scenario runs groups of browser scenarios against one session per
// suite and reports a pass/fail outcome per scenario.
//
// A Suite owns one Session for its whole run. Its Groups run in order; inside
// a serial Group the first failure skips the remaining scenarios, mirroring
// the way a sequence of dependent steps stops making sense once one breaks.
// Independent suites never share a session and may run in parallel.
package scenario

import (
	"context"
	"fmt"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
)

// Func is a scenario body or a suite setup step.
type Func func(ctx context.Context, s todomvc.Session) error

// Scenario is a named step with its assertions.
type Scenario struct {
	Name string
	Run  Func
	// Skip, when non-empty, is the reason the scenario is not run.
	Skip string
}

// Group is a named list of scenarios sharing the suite's session.
type Group struct {
	Name      string
	Serial    bool
	Scenarios []Scenario
}

// Suite is a set of groups run against one session.
type Suite struct {
	Name string
	// Setup runs once on the fresh session before the first group.
	Setup  Func
	Groups []Group
}

// Opener creates the session a suite runs on.
type Opener func(ctx context.Context) (todomvc.Session, error)

// Len returns the number of scenarios in the suite.
func (s Suite) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Scenarios)
	}
	return n
}

// Validate rejects suites with unnamed or bodiless scenarios.
func (s Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("suite has no name")
	}
	for gi, g := range s.Groups {
		for si, sc := range g.Scenarios {
			if sc.Name == "" {
				return fmt.Errorf("suite %q group %d scenario %d has no name", s.Name, gi, si)
			}
			if sc.Run == nil && sc.Skip == "" {
				return fmt.Errorf("suite %q scenario %q has no body", s.Name, sc.Name)
			}
		}
	}
	return nil
}
