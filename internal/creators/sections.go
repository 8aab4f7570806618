package creators

import (
	"context"
	"fmt"

	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

var sequenceTypes = creator.SupportedTypes{
	"stages":        {creator.AnyType},
	"steps":         {creator.AnyType},
	"rollbackSteps": {creator.AnyType},
}

// Sequence resolves the `stages`, `steps` and `rollbackSteps` arrays. Its
// node runs the first element; the elements chain to each other.
type Sequence struct{}

func (Sequence) String() string { return "sequence" }

func (Sequence) SupportsField(f *yamlfield.Field) bool {
	return sequenceTypes.Supports(f)
}

func (Sequence) CreatePlanForField(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	children, err := elementFields(f)
	if err != nil {
		return nil, err
	}

	stepType, group := "STEPS_SECTION", GroupSteps
	if f.Name == "stages" {
		stepType, group = "STAGES_SECTION", GroupStages
	}
	n := newNode(f, stepType, group, plan.FacilitatorChild)
	n.SkipExpressionChain = true

	resp := plan.NewResponse()
	if len(children) > 0 {
		n.ChildNodeIDs = []string{children[0].ID()}
	}
	for _, child := range children {
		resp.AddDependency(child)
	}
	resp.AddNode(n)
	return resp, nil
}

var parallelTypes = creator.SupportedTypes{"parallel": {creator.AnyType}}

// Parallel resolves a `parallel` array. Every element is a child of its node.
type Parallel struct{}

func (Parallel) String() string { return "parallel" }

func (Parallel) SupportsField(f *yamlfield.Field) bool {
	return parallelTypes.Supports(f)
}

func (Parallel) CreatePlanForField(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	children, err := elementFields(f)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%s must not be empty", f.FQN())
	}

	n := newNode(f, "PARALLEL", GroupSteps, plan.FacilitatorChildren)
	n.SkipExpressionChain = true
	chain(n, f)

	resp := plan.NewResponse()
	for _, child := range children {
		n.ChildNodeIDs = append(n.ChildNodeIDs, child.ID())
		resp.AddDependency(child)
	}
	resp.AddNode(n)
	return resp, nil
}

var executionTypes = creator.SupportedTypes{"execution": {creator.AnyType}}

// Execution resolves the `execution` block of a stage: its child is the
// `steps` array, and `rollbackSteps`, when present, is reached on failure.
type Execution struct{}

func (Execution) String() string { return "execution" }

func (Execution) SupportsField(f *yamlfield.Field) bool {
	return executionTypes.Supports(f)
}

func (Execution) CreatePlanForField(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	if err := requireMapping(f); err != nil {
		return nil, err
	}
	steps := f.Node.Field("steps")
	if steps == nil {
		return nil, fmt.Errorf("%s has no steps", f.FQN())
	}

	n := newNode(f, "EXECUTION_SECTION", GroupSteps, plan.FacilitatorChild)
	n.SkipExpressionChain = true
	n.ChildNodeIDs = []string{steps.ID()}

	resp := plan.NewResponse()
	resp.AddDependency(steps)
	if rollback := f.Node.Field("rollbackSteps"); rollback != nil {
		n.Advisers = append(n.Advisers, plan.AdviserObtainment{Type: plan.AdviserOnFailure, NextNodeID: rollback.ID()})
		resp.AddDependency(rollback)
	}
	resp.AddNode(n)
	return resp, nil
}
