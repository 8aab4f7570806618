package plan

import "github.com/zclconf/go-cty/cty"

// Adviser types understood by the reference creators.
const (
	AdviserNextStep  = "NEXT_STEP"
	AdviserOnSuccess = "ON_SUCCESS"
	AdviserOnFailure = "ON_FAILURE"
)

// Facilitator types understood by the reference creators.
const (
	FacilitatorSync     = "SYNC"
	FacilitatorTask     = "TASK"
	FacilitatorChild    = "CHILD"
	FacilitatorChildren = "CHILDREN"
)

// AdviserObtainment wires a node to the node that runs after it.
type AdviserObtainment struct {
	Type       string
	NextNodeID string
}

// Node is a fully resolved unit of the executable graph. A node is produced
// by exactly one creator and is not modified after it has been returned.
type Node struct {
	UUID       string
	Name       string
	Identifier string
	StepType   string
	Group      string

	// StepParameters is the opaque payload handed to the step at runtime.
	StepParameters cty.Value

	Facilitator  string
	Advisers     []AdviserObtainment
	ChildNodeIDs []string

	// SkipExpressionChain excludes the node from expression path resolution.
	SkipExpressionChain bool
}

// NextNodeIDs returns the ids of every node this node advises towards.
func (n *Node) NextNodeIDs() []string {
	ids := make([]string, 0, len(n.Advisers))
	for _, a := range n.Advisers {
		if a.NextNodeID != "" {
			ids = append(ids, a.NextNodeID)
		}
	}
	return ids
}
