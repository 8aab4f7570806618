package testutil

import (
	"context"
	"sync"

	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

// Recorder counts creator invocations per field id and remembers which
// creator handled each field. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	calls   map[string]int
	handler map[string]string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{calls: make(map[string]int), handler: make(map[string]string)}
}

// Record notes that the named creator handled f.
func (r *Recorder) Record(creatorName string, f *yamlfield.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[f.ID()]++
	r.handler[f.ID()] = creatorName
}

// Calls returns how many times the field id was dispatched.
func (r *Recorder) Calls(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[id]
}

// Total returns the number of dispatches across all fields.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.calls {
		total += n
	}
	return total
}

// HandledBy returns the name of the creator that last handled the field id.
func (r *Recorder) HandledBy(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handler[id]
}

// LeafNode builds the plan node a test creator emits for a field.
func LeafNode(f *yamlfield.Field) *plan.Node {
	return &plan.Node{
		UUID:       f.ID(),
		Name:       f.Name,
		Identifier: f.Node.Identifier(),
		StepType:   f.Name,
	}
}

// LeafCreator resolves every supported field into a single node with no
// further dependencies.
func LeafCreator(name string, types creator.SupportedTypes, rec *Recorder) *creator.Func {
	return &creator.Func{
		Name:  name,
		Types: types,
		Create: func(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
			if rec != nil {
				rec.Record(name, f)
			}
			resp := plan.NewResponse()
			resp.AddNode(LeafNode(f))
			return resp, nil
		},
	}
}

// TreeCreator expands the `node` fields rendered by TreeYAML: each field
// resolves into one plan node and emits the `node` field of every element of
// its `children` array as a dependency.
func TreeCreator(rec *Recorder) *creator.Func {
	return &creator.Func{
		Name:  "tree",
		Types: creator.SupportedTypes{"node": {creator.AnyType}},
		Create: func(_ context.Context, _ creator.Context, f *yamlfield.Field) (*plan.Response, error) {
			if rec != nil {
				rec.Record("tree", f)
			}
			resp := plan.NewResponse()
			n := LeafNode(f)
			if children := f.Node.Field("children"); children != nil {
				for _, el := range children.Node.Elements() {
					child := el.Field("node")
					if child == nil {
						continue
					}
					n.ChildNodeIDs = append(n.ChildNodeIDs, child.ID())
					resp.AddDependency(child)
				}
			}
			resp.AddNode(n)
			return resp, nil
		},
	}
}

// FailingCreator matches the given types and always returns err.
func FailingCreator(name string, types creator.SupportedTypes, err error) *creator.Func {
	return &creator.Func{
		Name:  name,
		Types: types,
		Create: func(context.Context, creator.Context, *yamlfield.Field) (*plan.Response, error) {
			return nil, err
		},
	}
}
