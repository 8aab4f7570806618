package creators_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/plancreator/internal/config"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/creators"
	"github.com/vk/plancreator/internal/engine"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

var ctyEqual = cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })

func sampleModel(stepTypes ...string) *config.Model {
	m := config.New()
	for _, name := range stepTypes {
		m.StepTypes[name] = &config.StepType{Name: name}
	}
	if st, ok := m.StepTypes["ShellScript"]; ok {
		st.Facilitator = plan.FacilitatorTask
		st.Defaults = cty.ObjectVal(map[string]cty.Value{
			"shell":   cty.StringVal("bash"),
			"timeout": cty.StringVal("10m"),
		})
	}
	return m
}

// createSample expands SamplePipeline with the default creators.
func createSample(t *testing.T, model *config.Model) *plan.Response {
	t.Helper()
	root := testutil.ParseField(t, testutil.SamplePipeline)
	resp, err := engine.New(creators.Default(model)).
		CreatePlan(context.Background(), creator.Context{}, testutil.Dependencies(root))
	require.NoError(t, err)
	return resp
}

// leaves indexes stage and step nodes by identifier.
func leaves(resp *plan.Response) map[string]*plan.Node {
	out := make(map[string]*plan.Node)
	for _, n := range resp.Nodes {
		if n.Group == creators.GroupStage || n.Group == creators.GroupStep || n.StepType == "PARALLEL" {
			out[n.Identifier] = n
		}
	}
	return out
}

func nextStep(n *plan.Node) string {
	for _, a := range n.Advisers {
		if a.Type == plan.AdviserNextStep {
			return a.NextNodeID
		}
	}
	return ""
}

func TestDefault_ExpandsSamplePipeline(t *testing.T) {
	// --- Arrange & Act ---
	resp := createSample(t, sampleModel("ShellScript", "Http"))

	// --- Assert ---
	require.Empty(t, resp.Dependencies)
	require.Len(t, resp.Nodes, testutil.SamplePipelineNodes)

	start := resp.Nodes[resp.StartingNodeID]
	require.NotNil(t, start, "the starting node must be part of the plan")
	assert.Equal(t, "PIPELINE_SECTION", start.StepType)
	assert.Equal(t, "build_and_deploy", start.Identifier)
	assert.Equal(t, "Build and Deploy", start.Name)
	require.Len(t, start.ChildNodeIDs, 1)
	assert.Equal(t, "STAGES_SECTION", resp.Nodes[start.ChildNodeIDs[0]].StepType)

	nodes := leaves(resp)
	build, deploy := nodes["build"], nodes["deploy"]
	assert.Equal(t, "CI", build.StepType)
	assert.Equal(t, deploy.UUID, nextStep(build))
	assert.Empty(t, deploy.Advisers)
	assert.Equal(t, build.UUID, resp.Nodes[start.ChildNodeIDs[0]].ChildNodeIDs[0], "the stages section starts with the first stage")

	compile, parallel, publish := nodes["compile"], nodes["parallel"], nodes["publish"]
	assert.Equal(t, parallel.UUID, nextStep(compile))
	assert.Equal(t, publish.UUID, nextStep(parallel))
	assert.Empty(t, nextStep(publish))
	assert.Equal(t, plan.FacilitatorChildren, parallel.Facilitator)
	assert.Equal(t, []string{nodes["unit"].UUID, nodes["lint"].UUID}, parallel.ChildNodeIDs)
	assert.Empty(t, nodes["unit"].Advisers, "parallel elements are not chained")
	assert.Empty(t, nodes["lint"].Advisers)

	assert.Equal(t, plan.FacilitatorTask, compile.Facilitator)
	assert.Equal(t, plan.FacilitatorSync, publish.Facilitator, "step types without a facilitator run synchronously")
}

func TestDefault_StepParameters(t *testing.T) {
	resp := createSample(t, sampleModel("ShellScript", "Http"))
	nodes := leaves(resp)

	rollout := nodes["rollout"]
	want := &plan.Node{
		UUID:        rollout.UUID,
		Name:        "step",
		Identifier:  "rollout",
		StepType:    "ShellScript",
		Group:       creators.GroupStep,
		Facilitator: plan.FacilitatorTask,
		StepParameters: cty.ObjectVal(map[string]cty.Value{
			"script":  cty.StringVal("./deploy.sh"),
			"shell":   cty.StringVal("bash"),
			"timeout": cty.StringVal("30m"),
		}),
	}
	if diff := cmp.Diff(want, rollout, ctyEqual); diff != "" {
		t.Errorf("rollout node mismatch (-want +got):\n%s", diff)
	}

	publish := nodes["publish"]
	assert.True(t, publish.StepParameters.RawEquals(cty.ObjectVal(map[string]cty.Value{
		"url":    cty.StringVal("https://example.com/publish"),
		"method": cty.StringVal("POST"),
	})))
}

func TestDefault_RollbackSteps(t *testing.T) {
	resp := createSample(t, sampleModel())
	nodes := leaves(resp)

	var execution *plan.Node
	for _, n := range resp.Nodes {
		if n.StepType == "EXECUTION_SECTION" && len(n.Advisers) > 0 {
			execution = n
		}
	}
	require.NotNil(t, execution, "the deploy execution has a rollback adviser")
	require.Len(t, execution.Advisers, 1)
	assert.Equal(t, plan.AdviserOnFailure, execution.Advisers[0].Type)

	rollbackSection := resp.Nodes[execution.Advisers[0].NextNodeID]
	require.NotNil(t, rollbackSection)
	assert.Equal(t, []string{nodes["rollback"].UUID}, rollbackSection.ChildNodeIDs)
}

func TestDefault_UndeclaredStepTypeIsUnresolved(t *testing.T) {
	resp := createSample(t, sampleModel("ShellScript"))

	require.Len(t, resp.Dependencies, 1)
	for _, f := range resp.Dependencies {
		assert.Equal(t, "Http", f.Type())
		assert.Equal(t, "publish", f.Node.Identifier())
	}
	assert.Len(t, resp.Nodes, testutil.SamplePipelineNodes-1)
}

func TestDefault_NilModelAcceptsAnyStep(t *testing.T) {
	resp := createSample(t, nil)
	assert.Empty(t, resp.Dependencies)
	assert.Len(t, resp.Nodes, testutil.SamplePipelineNodes)
}

func TestCreators_InvalidFields(t *testing.T) {
	testCases := []struct {
		name    string
		creator creator.PartialPlanCreator
		src     string
		wantErr string
	}{
		{name: "pipeline without stages", creator: creators.Pipeline{}, src: "pipeline:\n  identifier: p\n", wantErr: "has no stages"},
		{name: "pipeline scalar", creator: creators.Pipeline{}, src: "pipeline: p\n", wantErr: "must be a mapping"},
		{name: "stages not a list", creator: creators.Sequence{}, src: "stages:\n  stage: x\n", wantErr: "must be a list"},
		{name: "element with two keys", creator: creators.Sequence{}, src: "steps:\n  - step: {}\n    parallel: []\n", wantErr: "exactly one key"},
		{name: "stage without execution", creator: creators.Stage{}, src: "stage:\n  identifier: s\n  spec: {}\n", wantErr: "has no spec.execution"},
		{name: "execution without steps", creator: creators.Execution{}, src: "execution:\n  rollbackSteps: []\n", wantErr: "has no steps"},
		{name: "empty parallel", creator: creators.Parallel{}, src: "parallel: []\n", wantErr: "must not be empty"},
		{name: "step without type", creator: creators.NewStep(nil), src: "step:\n  identifier: s\n", wantErr: "has no type"},
		{name: "step with scalar spec", creator: creators.NewStep(nil), src: "step:\n  type: Run\n  spec: echo\n", wantErr: "must be an object"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := testutil.ParseField(t, tc.src)
			resp, err := tc.creator.CreatePlanForField(context.Background(), creator.Context{}, f)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSequence_EmptyList(t *testing.T) {
	f := testutil.ParseField(t, "steps: []\n")
	resp, err := creators.Sequence{}.CreatePlanForField(context.Background(), creator.Context{}, f)
	require.NoError(t, err)
	require.Contains(t, resp.Nodes, f.ID())
	assert.Empty(t, resp.Nodes[f.ID()].ChildNodeIDs)
	assert.Empty(t, resp.Dependencies)
}

func TestPipeline_UsesContextPipelineID(t *testing.T) {
	f := testutil.ParseField(t, "pipeline:\n  identifier: local\n  stages: []\n")
	resp, err := creators.Pipeline{}.CreatePlanForField(context.Background(), creator.Context{PipelineID: "remote"}, f)
	require.NoError(t, err)
	assert.Equal(t, "remote", resp.Nodes[f.ID()].Identifier)
	assert.Equal(t, f.ID(), resp.StartingNodeID)
}

func TestStep_Supports(t *testing.T) {
	restricted := creators.NewStep(sampleModel("ShellScript"))
	assert.True(t, restricted.SupportsField(testutil.TypedField(t, "step", "ShellScript")))
	assert.False(t, restricted.SupportsField(testutil.TypedField(t, "step", "Http")))
	assert.False(t, restricted.SupportsField(testutil.TypedField(t, "stage", "ShellScript")))

	open := creators.NewStep(config.New())
	assert.True(t, open.SupportsField(testutil.TypedField(t, "step", "Anything")))
}

func TestDefault_RegistrationOrder(t *testing.T) {
	reg := creators.Default(nil)
	assert.Equal(t, []string{"pipeline", "sequence", "stage", "execution", "parallel", "step"}, reg.Names())
}
