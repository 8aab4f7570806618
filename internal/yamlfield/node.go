package yamlfield

import (
	"github.com/vk/plancreator/internal/fqn"
	"gopkg.in/yaml.v3"
)

// UUIDKey is the mapping key that pins a node's UUID in the source document.
const UUIDKey = "__uuid"

// Kind classifies the shape of a Node.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Node is a value in the parsed tree. Nodes are built once by Parse and are
// read-only afterwards, so they are safe to share between goroutines.
type Node struct {
	raw  *yaml.Node
	uuid string
	kind Kind
	path *fqn.Address

	fields   []*Field
	elements []*Node

	// parent is the field this node is the value of; nil for array elements.
	parent *Field
	// array and index locate an element node inside its sequence field.
	array *Field
	index int
}

// UUID returns the node's stable identifier.
func (n *Node) UUID() string {
	return n.uuid
}

// Kind returns the shape of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Path returns the structured path of the node.
func (n *Node) Path() *fqn.Address {
	return n.path
}

// FQN returns the canonical path string of the node.
func (n *Node) FQN() string {
	return n.path.String()
}

// Line returns the source line of the node, for diagnostics.
func (n *Node) Line() int {
	return n.raw.Line
}

// Field looks up a direct child field of a mapping node by name.
func (n *Node) Field(name string) *Field {
	for _, f := range n.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Lookup follows a chain of field names from this node, e.g.
// Lookup("spec", "execution").
func (n *Node) Lookup(names ...string) *Field {
	var f *Field
	cur := n
	for _, name := range names {
		if cur == nil {
			return nil
		}
		f = cur.Field(name)
		if f == nil {
			return nil
		}
		cur = f.Node
	}
	return f
}

// Fields returns the mapping entries of the node in document order. The
// `__uuid` entry is not included.
func (n *Node) Fields() []*Field {
	out := make([]*Field, len(n.fields))
	copy(out, n.fields)
	return out
}

// Elements returns the entries of a sequence node.
func (n *Node) Elements() []*Node {
	out := make([]*Node, len(n.elements))
	copy(out, n.elements)
	return out
}

// Value returns the literal value of a scalar node, or "" for other kinds.
func (n *Node) Value() string {
	if n.kind != KindScalar {
		return ""
	}
	return n.raw.Value
}

// IsNull reports whether the node is an explicit or implicit YAML null.
func (n *Node) IsNull() bool {
	return n.kind == KindScalar && n.raw.Tag == "!!null"
}

// StringField returns the value of a scalar child field.
func (n *Node) StringField(name string) (string, bool) {
	f := n.Field(name)
	if f == nil || f.Node.kind != KindScalar || f.Node.IsNull() {
		return "", false
	}
	return f.Node.raw.Value, true
}

// Type returns the `type` attribute of a mapping node, or "" if absent.
func (n *Node) Type() string {
	v, _ := n.StringField("type")
	return v
}

// Identifier returns the `identifier` attribute of a mapping node.
func (n *Node) Identifier() string {
	v, _ := n.StringField("identifier")
	return v
}

// NodeName returns the human-readable `name` attribute of a mapping node.
func (n *Node) NodeName() string {
	v, _ := n.StringField("name")
	return v
}

// Decode unmarshals the node into v using yaml.v3 decoding rules.
func (n *Node) Decode(v any) error {
	return n.raw.Decode(v)
}
