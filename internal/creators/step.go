package creators

import (
	"context"
	"fmt"

	"github.com/vk/plancreator/internal/config"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
	"github.com/zclconf/go-cty/cty"
)

// Step resolves a typed `step` element into a leaf node. Its parameters are
// the step's `spec` laid over the defaults of its step type.
type Step struct {
	types     creator.SupportedTypes
	stepTypes map[string]*config.StepType
}

// NewStep creates a step creator restricted to the step types in model. A
// nil model or one without step types accepts any step.
func NewStep(model *config.Model) *Step {
	s := &Step{stepTypes: make(map[string]*config.StepType)}
	names := model.StepTypeNames()
	if len(names) == 0 {
		s.types = creator.SupportedTypes{"step": {creator.AnyType}}
		return s
	}
	s.types = creator.SupportedTypes{"step": names}
	for _, name := range names {
		st, _ := model.StepType(name)
		s.stepTypes[name] = st
	}
	return s
}

func (*Step) String() string { return "step" }

func (s *Step) SupportsField(f *yamlfield.Field) bool {
	return s.types.Supports(f)
}

func (s *Step) CreatePlanForField(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	if err := requireMapping(f); err != nil {
		return nil, err
	}
	stepType := f.Type()
	if stepType == "" {
		return nil, fmt.Errorf("%s has no type", f.FQN())
	}

	facilitator := plan.FacilitatorSync
	defaults := cty.NilVal
	if st, ok := s.stepTypes[stepType]; ok {
		if st.Facilitator != "" {
			facilitator = st.Facilitator
		}
		defaults = st.Defaults
	}

	var spec cty.Value
	if specField := f.Node.Field("spec"); specField != nil {
		v, err := specField.Node.ToCty()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", specField.FQN(), err)
		}
		spec = v
	}
	params, err := mergeParams(defaults, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.FQN(), err)
	}

	n := newNode(f, stepType, GroupStep, facilitator)
	n.StepParameters = params
	chain(n, f)

	resp := plan.NewResponse()
	resp.AddNode(n)
	return resp, nil
}
