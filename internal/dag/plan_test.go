package dag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/creators"
	"github.com/vk/plancreator/internal/dag"
	"github.com/vk/plancreator/internal/engine"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/testutil"
)

func responseOf(start string, nodes ...*plan.Node) *plan.Response {
	resp := plan.NewResponse()
	for _, n := range nodes {
		resp.AddNode(n)
	}
	resp.StartingNodeID = start
	return resp
}

func next(id string) []plan.AdviserObtainment {
	return []plan.AdviserObtainment{{Type: plan.AdviserNextStep, NextNodeID: id}}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		resp    *plan.Response
		wantErr error
	}{
		{
			name: "valid chain",
			resp: responseOf("root",
				&plan.Node{UUID: "root", ChildNodeIDs: []string{"s1"}},
				&plan.Node{UUID: "s1", Advisers: next("s2")},
				&plan.Node{UUID: "s2"},
			),
		},
		{
			name: "empty plan",
			resp: plan.NewResponse(),
		},
		{
			name:    "dangling child",
			resp:    responseOf("root", &plan.Node{UUID: "root", ChildNodeIDs: []string{"ghost"}}),
			wantErr: dag.ErrDanglingReference,
		},
		{
			name:    "dangling adviser",
			resp:    responseOf("root", &plan.Node{UUID: "root", Advisers: next("ghost")}),
			wantErr: dag.ErrDanglingReference,
		},
		{
			name:    "unknown starting node",
			resp:    responseOf("elsewhere", &plan.Node{UUID: "root"}),
			wantErr: dag.ErrMissingStartingNode,
		},
		{
			name:    "no starting node",
			resp:    responseOf("", &plan.Node{UUID: "root"}),
			wantErr: dag.ErrMissingStartingNode,
		},
		{
			name: "adviser cycle",
			resp: responseOf("a",
				&plan.Node{UUID: "a", Advisers: next("b")},
				&plan.Node{UUID: "b", Advisers: next("a")},
			),
			wantErr: dag.ErrCycle,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := dag.Validate(tc.resp)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tc.resp.Nodes), g.Len())
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestValidate_SelfReference(t *testing.T) {
	_, err := dag.Validate(responseOf("a", &plan.Node{UUID: "a", Advisers: next("a")}))
	assert.ErrorContains(t, err, "self-referential edge")
}

func TestFromPlan_SamplePipeline(t *testing.T) {
	// --- Arrange ---
	root := testutil.ParseField(t, testutil.SamplePipeline)
	resp, err := engine.New(creators.Default(nil)).
		CreatePlan(context.Background(), creator.Context{}, testutil.Dependencies(root))
	require.NoError(t, err)

	// --- Act ---
	g, err := dag.Validate(resp)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, testutil.SamplePipelineNodes, g.Len())

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, testutil.SamplePipelineNodes)
	assert.Equal(t, resp.StartingNodeID, order[0], "the pipeline node has no predecessors")

	deps, err := g.Dependencies(resp.StartingNodeID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}
