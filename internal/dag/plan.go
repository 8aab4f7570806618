package dag

import (
	"errors"
	"fmt"

	"github.com/vk/plancreator/internal/plan"
)

var (
	// ErrDanglingReference is returned when a node refers to a node that is
	// not part of the plan.
	ErrDanglingReference = errors.New("reference to unknown node")

	// ErrMissingStartingNode is returned when the plan's starting node is
	// not one of its nodes.
	ErrMissingStartingNode = errors.New("starting node not found")
)

// FromPlan builds the graph of a plan. Edges run from every node to its
// children and to the nodes its advisers name.
func FromPlan(resp *plan.Response) (*Graph, error) {
	g := New()
	for _, id := range resp.NodeIDs() {
		g.AddNode(id)
	}

	for _, id := range resp.NodeIDs() {
		n := resp.Nodes[id]
		targets := append(append([]string{}, n.ChildNodeIDs...), n.NextNodeIDs()...)
		for _, target := range targets {
			if !g.HasNode(target) {
				return nil, fmt.Errorf("%w: node %s (%s) refers to %s", ErrDanglingReference, n.Identifier, id, target)
			}
			if err := g.AddEdge(id, target); err != nil {
				return nil, fmt.Errorf("node %s (%s): %w", n.Identifier, id, err)
			}
		}
	}
	return g, nil
}

// Validate checks that resp describes an executable graph and returns it.
func Validate(resp *plan.Response) (*Graph, error) {
	g, err := FromPlan(resp)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StartingNodeID == "" && g.Len() > 0:
		return nil, fmt.Errorf("%w: plan has no starting node", ErrMissingStartingNode)
	case resp.StartingNodeID != "" && !g.HasNode(resp.StartingNodeID):
		return nil, fmt.Errorf("%w: %s", ErrMissingStartingNode, resp.StartingNodeID)
	}
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}
