package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a replayable sequence of host events with interleaved
// expectations, loaded from YAML. Scenarios double as executable
// documentation of the convergence behavior.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action. The zero fields of the others stay unset.
type Step struct {
	// Open opens a document.
	Open *OpenStep `yaml:"open,omitempty"`

	// Close closes the named document.
	Close string `yaml:"close,omitempty"`

	// Lock locks the named document. No notification fires.
	Lock string `yaml:"lock,omitempty"`

	// Unlock unlocks the named document. No notification fires.
	Unlock string `yaml:"unlock,omitempty"`

	// Toggle writes a control's enabled flag directly, bypassing the
	// synchronizer, the way third-party host code does.
	Toggle *ToggleStep `yaml:"toggle,omitempty"`

	// Expect asserts a control's enabled flag after the preceding actions
	// have settled.
	Expect *ExpectStep `yaml:"expect,omitempty"`
}

// OpenStep opens a document, optionally locked.
type OpenStep struct {
	Name   string `yaml:"name"`
	Locked bool   `yaml:"locked"`
}

// ToggleStep is an external write to a control's enabled flag.
type ToggleStep struct {
	Container string `yaml:"container"`
	Control   string `yaml:"control"`
	Enabled   bool   `yaml:"enabled"`
}

// ExpectStep asserts a control's enabled flag.
type ExpectStep struct {
	Container string `yaml:"container"`
	Control   string `yaml:"control"`
	Enabled   bool   `yaml:"enabled"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing scenario: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	n := 0
	if s.Open != nil {
		n++
	}
	if s.Close != "" {
		n++
	}
	if s.Lock != "" {
		n++
	}
	if s.Unlock != "" {
		n++
	}
	if s.Toggle != nil {
		n++
	}
	if s.Expect != nil {
		n++
	}
	switch n {
	case 0:
		return fmt.Errorf("step has no action")
	case 1:
		return nil
	default:
		return fmt.Errorf("step has %d actions, want exactly one", n)
	}
}

// Runner replays scenarios against a host. The caller attaches whatever
// should be observing the host (normally the governor) before running.
type Runner struct {
	host *Host
}

// NewRunner creates a runner for the given host.
func NewRunner(h *Host) *Runner {
	return &Runner{host: h}
}

// Run executes every step in order. Expect steps report a failure with their
// step number; action steps fail when they reference unknown documents or
// controls.
func (r *Runner) Run(s *Scenario) error {
	for i, step := range s.Steps {
		if err := r.runStep(step); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

func (r *Runner) runStep(step Step) error {
	docs := r.host.Docs()
	switch {
	case step.Open != nil:
		_, err := docs.OpenDocument(step.Open.Name, step.Open.Locked)
		return err

	case step.Close != "":
		return docs.CloseDocument(step.Close)

	case step.Lock != "":
		d := docs.Document(step.Lock)
		if d == nil {
			return fmt.Errorf("document %q is not open", step.Lock)
		}
		d.SetLocked(true)
		return nil

	case step.Unlock != "":
		d := docs.Document(step.Unlock)
		if d == nil {
			return fmt.Errorf("document %q is not open", step.Unlock)
		}
		d.SetLocked(false)
		return nil

	case step.Toggle != nil:
		c, err := r.host.Control(step.Toggle.Container, step.Toggle.Control)
		if err != nil {
			return err
		}
		c.SetEnabled(step.Toggle.Enabled)
		return nil

	case step.Expect != nil:
		c, err := r.host.Control(step.Expect.Container, step.Expect.Control)
		if err != nil {
			return err
		}
		if c.Enabled() != step.Expect.Enabled {
			return fmt.Errorf("control %s/%s enabled = %v, want %v",
				step.Expect.Container, step.Expect.Control, c.Enabled(), step.Expect.Enabled)
		}
		return nil
	}
	return fmt.Errorf("step has no action")
}
