package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Status is the outcome of one scenario.
type Status string

const (
	Passed  Status = "passed"
	Failed  Status = "failed"
	Skipped Status = "skipped"
)

// Result is the outcome of one scenario.
type Result struct {
	Group      string        `json:"group" yaml:"group"`
	Scenario   string        `json:"scenario" yaml:"scenario"`
	Status     Status        `json:"status" yaml:"status"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Reason     string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Screenshot string        `json:"screenshot,omitempty" yaml:"screenshot,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`

	err error
}

// Err returns the scenario's error, nil unless Status is Failed.
func (r Result) Err() error { return r.err }

// Report is the outcome of one suite.
type Report struct {
	Suite           string        `json:"suite" yaml:"suite"`
	Started         time.Time     `json:"started" yaml:"started"`
	Duration        time.Duration `json:"duration" yaml:"duration"`
	SetupError      string        `json:"setup_error,omitempty" yaml:"setup_error,omitempty"`
	SetupScreenshot string        `json:"setup_screenshot,omitempty" yaml:"setup_screenshot,omitempty"`
	Results         []Result      `json:"results" yaml:"results"`

	infra bool
}

// InfraFailed reports whether the suite never ran because its session could
// not be opened.
func (r *Report) InfraFailed() bool { return r.infra }

// Summary counts results by status.
type Summary struct {
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Total returns the number of counted scenarios.
func (s Summary) Total() int { return s.Passed + s.Failed + s.Skipped }

func (s *Summary) add(o Summary) {
	s.Passed += o.Passed
	s.Failed += o.Failed
	s.Skipped += o.Skipped
}

// Summary counts the suite's results by status.
func (r *Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Status {
		case Passed:
			s.Passed++
		case Failed:
			s.Failed++
		case Skipped:
			s.Skipped++
		}
	}
	return s
}

// Failed reports whether the suite setup or any scenario failed.
func (r *Report) Failed() bool {
	return r.SetupError != "" || r.Summary().Failed > 0
}

// AnyFailed reports whether any report failed.
func AnyFailed(reports []*Report) bool {
	for _, r := range reports {
		if r.Failed() {
			return true
		}
	}
	return false
}

func (r *Report) setupFailed(suite Suite, err error) {
	r.SetupError = err.Error()
	for _, g := range suite.Groups {
		for _, sc := range g.Scenarios {
			reason := ReasonSetupFailure
			if sc.Skip != "" {
				reason = sc.Skip
			}
			r.Results = append(r.Results, Result{
				Group:    g.Name,
				Scenario: sc.Name,
				Status:   Skipped,
				Reason:   reason,
			})
		}
	}
}

type document struct {
	Summary Summary   `json:"summary" yaml:"summary"`
	Suites  []*Report `json:"suites" yaml:"suites"`
}

func newDocument(reports []*Report) document {
	d := document{Suites: reports}
	for _, r := range reports {
		d.Summary.add(r.Summary())
	}
	return d
}

// WriteJSON writes reports as an indented JSON document.
func WriteJSON(w io.Writer, reports []*Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(reports))
}

// WriteYAML writes reports as a YAML document.
func WriteYAML(w io.Writer, reports []*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(reports)); err != nil {
		return err
	}
	return enc.Close()
}

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
	headStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// WriteText writes a human readable report, styled when w is a terminal.
func WriteText(w io.Writer, reports []*Report) error {
	var total Summary
	for _, r := range reports {
		total.add(r.Summary())
		if _, err := fmt.Fprintf(w, "%s %s\n", headStyle.Render(r.Suite), dimStyle.Render("("+r.Duration.String()+")")); err != nil {
			return err
		}
		if r.SetupError != "" {
			if _, err := fmt.Fprintf(w, "  %s setup: %s\n", failStyle.Render("FAIL"), r.SetupError); err != nil {
				return err
			}
		}
		group := ""
		for _, res := range r.Results {
			if res.Group != group {
				group = res.Group
				if group != "" {
					if _, err := fmt.Fprintf(w, "  %s\n", group); err != nil {
						return err
					}
				}
			}
			if err := writeResult(w, res); err != nil {
				return err
			}
		}
	}
	line := fmt.Sprintf("%d scenarios: %d passed, %d failed, %d skipped", total.Total(), total.Passed, total.Failed, total.Skipped)
	if AnyFailed(reports) {
		line = failStyle.Render(line)
	} else {
		line = passStyle.Render(line)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func writeResult(w io.Writer, res Result) error {
	var err error
	switch res.Status {
	case Passed:
		_, err = fmt.Fprintf(w, "    %s %s %s\n", passStyle.Render("PASS"), res.Scenario, dimStyle.Render("("+res.Duration.String()+")"))
	case Failed:
		_, err = fmt.Fprintf(w, "    %s %s\n      %s\n", failStyle.Render("FAIL"), res.Scenario, res.Error)
		if err == nil && res.Screenshot != "" {
			_, err = fmt.Fprintf(w, "      screenshot: %s\n", res.Screenshot)
		}
	case Skipped:
		_, err = fmt.Fprintf(w, "    %s %s %s\n", skipStyle.Render("SKIP"), res.Scenario, dimStyle.Render("("+res.Reason+")"))
	}
	return err
}
