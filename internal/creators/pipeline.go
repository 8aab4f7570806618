package creators

import (
	"context"
	"fmt"

	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

var pipelineTypes = creator.SupportedTypes{"pipeline": {creator.AnyType}}

// Pipeline resolves the document root. Its node is the starting node of the
// plan and its only child is the `stages` section.
type Pipeline struct{}

func (Pipeline) String() string { return "pipeline" }

func (Pipeline) SupportsField(f *yamlfield.Field) bool {
	return pipelineTypes.Supports(f)
}

func (Pipeline) CreatePlanForField(_ context.Context, pctx creator.Context, f *yamlfield.Field) (*plan.Response, error) {
	if err := requireMapping(f); err != nil {
		return nil, err
	}
	stages := f.Node.Field("stages")
	if stages == nil {
		return nil, fmt.Errorf("%s has no stages", f.FQN())
	}

	params, err := attributes(f.Node, "stages")
	if err != nil {
		return nil, err
	}

	n := newNode(f, "PIPELINE_SECTION", GroupPipeline, plan.FacilitatorChild)
	if pctx.PipelineID != "" {
		n.Identifier = pctx.PipelineID
	}
	n.StepParameters = params
	n.SkipExpressionChain = true
	n.ChildNodeIDs = []string{stages.ID()}

	resp := plan.NewResponse()
	resp.AddNode(n)
	resp.AddDependency(stages)
	resp.StartingNodeID = n.UUID
	return resp, nil
}
