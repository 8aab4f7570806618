package app

import (
	"encoding/json"
	"io"

	"github.com/vk/plancreator/internal/plan"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type planDocument struct {
	StartingNodeID string         `json:"startingNodeId"`
	Nodes          []nodeDocument `json:"nodes"`
}

type nodeDocument struct {
	UUID                string                   `json:"uuid"`
	Name                string                   `json:"name"`
	Identifier          string                   `json:"identifier"`
	StepType            string                   `json:"stepType"`
	Group               string                   `json:"group"`
	Facilitator         string                   `json:"facilitator"`
	StepParameters      *ctyjson.SimpleJSONValue `json:"stepParameters,omitempty"`
	Advisers            []adviserDocument        `json:"advisers,omitempty"`
	ChildNodeIDs        []string                 `json:"childNodeIds,omitempty"`
	SkipExpressionChain bool                     `json:"skipExpressionChain,omitempty"`
}

type adviserDocument struct {
	Type       string `json:"type"`
	NextNodeID string `json:"nextNodeId"`
}

// writePlan encodes the plan with its nodes in the given order.
func writePlan(w io.Writer, resp *plan.Response, order []string) error {
	doc := planDocument{
		StartingNodeID: resp.StartingNodeID,
		Nodes:          make([]nodeDocument, 0, len(order)),
	}
	for _, id := range order {
		n := resp.Nodes[id]
		nd := nodeDocument{
			UUID:                n.UUID,
			Name:                n.Name,
			Identifier:          n.Identifier,
			StepType:            n.StepType,
			Group:               n.Group,
			Facilitator:         n.Facilitator,
			ChildNodeIDs:        n.ChildNodeIDs,
			SkipExpressionChain: n.SkipExpressionChain,
		}
		if !n.StepParameters.IsNull() {
			nd.StepParameters = &ctyjson.SimpleJSONValue{Value: n.StepParameters}
		}
		for _, adv := range n.Advisers {
			nd.Advisers = append(nd.Advisers, adviserDocument{Type: adv.Type, NextNodeID: adv.NextNodeID})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
