package creators

import (
	"fmt"

	"github.com/vk/plancreator/internal/config"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

// Groups assigned to the nodes the reference creators produce.
const (
	GroupPipeline = "PIPELINE"
	GroupStages   = "STAGES"
	GroupStage    = "STAGE"
	GroupSteps    = "STEPS"
	GroupStep     = "STEP"
)

// Default returns the reference creators in registration order. The step
// types declared in model restrict which steps are supported; with none
// declared every step type is accepted.
func Default(model *config.Model) *creator.Registry {
	return creator.NewRegistry(
		Pipeline{},
		Sequence{},
		Stage{},
		Execution{},
		Parallel{},
		NewStep(model),
	)
}

// newNode fills the attributes every reference node shares.
func newNode(f *yamlfield.Field, stepType, group, facilitator string) *plan.Node {
	name := f.Node.NodeName()
	if name == "" {
		name = f.Name
	}
	identifier := f.Node.Identifier()
	if identifier == "" {
		identifier = f.Name
	}
	return &plan.Node{
		UUID:        f.ID(),
		Name:        name,
		Identifier:  identifier,
		StepType:    stepType,
		Group:       group,
		Facilitator: facilitator,
	}
}

// elementFields returns the single field of every element of a sequence
// field.
func elementFields(f *yamlfield.Field) ([]*yamlfield.Field, error) {
	if f.Node.IsNull() {
		return nil, nil
	}
	if f.Node.Kind() != yamlfield.KindSequence {
		return nil, fmt.Errorf("%s must be a list, got %s", f.FQN(), f.Node.Kind())
	}
	elements := f.Node.Elements()
	out := make([]*yamlfield.Field, 0, len(elements))
	for i, el := range elements {
		fields := el.Fields()
		if el.Kind() != yamlfield.KindMapping || len(fields) != 1 {
			return nil, fmt.Errorf("%s[%d] must be a mapping with exactly one key", f.FQN(), i)
		}
		out = append(out, fields[0])
	}
	return out, nil
}

// chain adds a NEXT_STEP adviser towards the next sibling when the field is
// an element of a sequential array.
func chain(n *plan.Node, f *yamlfield.Field) {
	array, _, ok := f.EnclosingArray()
	if !ok || array.Name == "parallel" {
		return
	}
	if next := f.NextSibling(); next != nil {
		n.Advisers = append(n.Advisers, plan.AdviserObtainment{Type: plan.AdviserNextStep, NextNodeID: next.ID()})
	}
}

// requireMapping rejects fields whose value is not a mapping.
func requireMapping(f *yamlfield.Field) error {
	if f.Node.Kind() != yamlfield.KindMapping {
		return fmt.Errorf("%s must be a mapping, got %s", f.FQN(), f.Node.Kind())
	}
	return nil
}
