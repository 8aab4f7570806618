package creators

import (
	"context"
	"fmt"

	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

var stageTypes = creator.SupportedTypes{"stage": {creator.AnyType}}

// Stage resolves a `stage` element. Its child is `spec.execution`.
type Stage struct{}

func (Stage) String() string { return "stage" }

func (Stage) SupportsField(f *yamlfield.Field) bool {
	return stageTypes.Supports(f)
}

func (Stage) CreatePlanForField(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	if err := requireMapping(f); err != nil {
		return nil, err
	}
	execution := f.Node.Lookup("spec", "execution")
	if execution == nil {
		return nil, fmt.Errorf("%s has no spec.execution", f.FQN())
	}

	params, err := attributes(f.Node, "spec")
	if err != nil {
		return nil, err
	}

	stageType := f.Type()
	if stageType == "" {
		stageType = "Custom"
	}
	n := newNode(f, stageType, GroupStage, plan.FacilitatorChild)
	n.StepParameters = params
	n.ChildNodeIDs = []string{execution.ID()}
	chain(n, f)

	resp := plan.NewResponse()
	resp.AddNode(n)
	resp.AddDependency(execution)
	return resp, nil
}
