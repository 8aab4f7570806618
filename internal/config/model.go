package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Facilitators a step type may declare.
var Facilitators = []string{"SYNC", "TASK", "CHILD", "CHILDREN"}

// DefaultFacilitator is used for steps whose type does not set one.
const DefaultFacilitator = "SYNC"

// Model is the unified representation of the plan creator configuration.
type Model struct {
	Engine    Engine
	Logging   Logging
	StepTypes map[string]*StepType
}

// Engine holds the plan creation engine settings. Zero values mean "use the
// engine default".
type Engine struct {
	Workers      int
	RoundTimeout time.Duration
	MaxRounds    int
}

// Logging holds the logger settings. Empty values mean "use the default".
type Logging struct {
	Level  string
	Format string
}

// StepType describes a step type the reference creators accept.
type StepType struct {
	Name        string
	Facilitator string
	// Defaults is an object merged under the step's own parameters. It is
	// cty.NilVal when the type declares none.
	Defaults cty.Value
}

// New returns an empty model.
func New() *Model {
	return &Model{StepTypes: make(map[string]*StepType)}
}

// StepType returns the definition for name.
func (m *Model) StepType(name string) (*StepType, bool) {
	if m == nil {
		return nil, false
	}
	st, ok := m.StepTypes[name]
	return st, ok
}

// StepTypeNames returns the declared step types in sorted order.
func (m *Model) StepTypeNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.StepTypes))
	for name := range m.StepTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Merge overlays other onto m. Non-zero settings in other win; step types
// are replaced by name.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Engine.Workers != 0 {
		m.Engine.Workers = other.Engine.Workers
	}
	if other.Engine.RoundTimeout != 0 {
		m.Engine.RoundTimeout = other.Engine.RoundTimeout
	}
	if other.Engine.MaxRounds != 0 {
		m.Engine.MaxRounds = other.Engine.MaxRounds
	}
	if other.Logging.Level != "" {
		m.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		m.Logging.Format = other.Logging.Format
	}
	if m.StepTypes == nil {
		m.StepTypes = make(map[string]*StepType, len(other.StepTypes))
	}
	for name, st := range other.StepTypes {
		m.StepTypes[name] = st
	}
}

// Validate checks the settings that cannot be checked while decoding a
// single file.
func (m *Model) Validate() error {
	if m.Engine.Workers < 0 {
		return fmt.Errorf("engine workers must not be negative, got %d", m.Engine.Workers)
	}
	if m.Engine.RoundTimeout < 0 {
		return fmt.Errorf("engine round timeout must not be negative, got %s", m.Engine.RoundTimeout)
	}
	if m.Engine.MaxRounds < 0 {
		return fmt.Errorf("engine max rounds must not be negative, got %d", m.Engine.MaxRounds)
	}
	for _, name := range m.StepTypeNames() {
		st := m.StepTypes[name]
		if st.Facilitator != "" && !slices.Contains(Facilitators, st.Facilitator) {
			return fmt.Errorf("step type %q: unknown facilitator %q, expected one of %v", name, st.Facilitator, Facilitators)
		}
		if !st.Defaults.IsNull() && !st.Defaults.Type().IsObjectType() && !st.Defaults.Type().IsMapType() {
			return fmt.Errorf("step type %q: defaults must be an object, got %s", name, st.Defaults.Type().FriendlyName())
		}
	}
	return nil
}
