package yamlfield

import (
	"fmt"

	"github.com/vk/plancreator/internal/fqn"
)

// Field is a named value inside a mapping. It is the unit of work the engine
// resolves into plan nodes.
type Field struct {
	Name string
	Node *Node

	// owner is the mapping node that holds this field.
	owner *Node
}

// ID returns the identity of the field, which is the UUID of its value node.
func (f *Field) ID() string {
	return f.Node.uuid
}

// Type returns the `type` attribute of the field's value, or "" if absent.
func (f *Field) Type() string {
	return f.Node.Type()
}

// Path returns the structured path of the field.
func (f *Field) Path() *fqn.Address {
	return f.Node.path
}

// FQN returns the canonical path string of the field.
func (f *Field) FQN() string {
	return f.Node.path.String()
}

// String implements fmt.Stringer for log output.
func (f *Field) String() string {
	return fmt.Sprintf("%s(%s)", f.FQN(), f.ID())
}

// EnclosingArray returns the sequence field whose element holds this field,
// together with the element index. For `stages: [{stage: ...}]` the stage
// field's enclosing array is `stages`.
func (f *Field) EnclosingArray() (*Field, int, bool) {
	if f.owner == nil || f.owner.array == nil {
		return nil, 0, false
	}
	return f.owner.array, f.owner.index, true
}

// NextSibling returns the first field of the next element in the enclosing
// array, or nil when this field is in the last element or not in an array.
func (f *Field) NextSibling() *Field {
	array, index, ok := f.EnclosingArray()
	if !ok {
		return nil
	}
	elements := array.Node.elements
	if index+1 >= len(elements) {
		return nil
	}
	next := elements[index+1]
	if len(next.fields) == 0 {
		return nil
	}
	return next.fields[0]
}

// Parent returns the field whose value contains this field's owner mapping,
// or nil for the root field and for fields of array elements.
func (f *Field) Parent() *Field {
	if f.owner == nil {
		return nil
	}
	return f.owner.parent
}
