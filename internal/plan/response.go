package plan

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vk/plancreator/internal/yamlfield"
)

// ErrStartingNodeConflict is returned when two responses name different
// starting nodes. It indicates a defect in the creator set.
var ErrStartingNodeConflict = errors.New("conflicting starting node ids")

// Response is a plan fragment: the nodes a creator resolved, the fields it
// left for later rounds, and the entry point of the graph it built.
type Response struct {
	Nodes          map[string]*Node
	Dependencies   map[string]*yamlfield.Field
	StartingNodeID string
}

// NewResponse returns an empty response with initialized maps.
func NewResponse() *Response {
	return &Response{
		Nodes:        make(map[string]*Node),
		Dependencies: make(map[string]*yamlfield.Field),
	}
}

func (r *Response) init() {
	if r.Nodes == nil {
		r.Nodes = make(map[string]*Node)
	}
	if r.Dependencies == nil {
		r.Dependencies = make(map[string]*yamlfield.Field)
	}
}

// AddNode records a resolved node, replacing any node with the same id, and
// removes the id from Dependencies.
func (r *Response) AddNode(n *Node) {
	if n == nil {
		return
	}
	r.init()
	r.Nodes[n.UUID] = n
	delete(r.Dependencies, n.UUID)
}

// AddNodes records every node in the map.
func (r *Response) AddNodes(nodes map[string]*Node) {
	for _, n := range nodes {
		r.AddNode(n)
	}
}

// AddDependency records a field that still has to be expanded. It reports
// false when the id is already a node or already a dependency.
func (r *Response) AddDependency(f *yamlfield.Field) bool {
	if f == nil {
		return false
	}
	r.init()
	id := f.ID()
	if _, ok := r.Nodes[id]; ok {
		return false
	}
	if _, ok := r.Dependencies[id]; ok {
		return false
	}
	r.Dependencies[id] = f
	return true
}

// AddDependencies records every field in the map.
func (r *Response) AddDependencies(deps map[string]*yamlfield.Field) {
	for _, f := range deps {
		r.AddDependency(f)
	}
}

// SetStartingNodeID reconciles the starting node. An empty id is ignored; a
// different non-empty id than the one already set is an error.
func (r *Response) SetStartingNodeID(id string) error {
	if id == "" || id == r.StartingNodeID {
		return nil
	}
	if r.StartingNodeID != "" {
		return fmt.Errorf("%w: %q and %q", ErrStartingNodeConflict, r.StartingNodeID, id)
	}
	r.StartingNodeID = id
	return nil
}

// Merge folds other into r. Nodes are unioned with last write winning,
// dependencies are unioned skipping ids already known, and the starting
// nodes are reconciled. On error r is left unchanged.
func (r *Response) Merge(other *Response) error {
	if other == nil {
		return nil
	}
	if other.StartingNodeID != "" && r.StartingNodeID != "" && other.StartingNodeID != r.StartingNodeID {
		return fmt.Errorf("%w: %q and %q", ErrStartingNodeConflict, r.StartingNodeID, other.StartingNodeID)
	}
	r.AddNodes(other.Nodes)
	r.AddDependencies(other.Dependencies)
	return r.SetStartingNodeID(other.StartingNodeID)
}

// IsEmpty reports whether the response carries nothing.
func (r *Response) IsEmpty() bool {
	return len(r.Nodes) == 0 && len(r.Dependencies) == 0 && r.StartingNodeID == ""
}

// NodeIDs returns the node ids in sorted order.
func (r *Response) NodeIDs() []string {
	return sortedKeys(r.Nodes)
}

// DependencyIDs returns the dependency ids in sorted order.
func (r *Response) DependencyIDs() []string {
	return sortedKeys(r.Dependencies)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
