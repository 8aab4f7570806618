package yamlfield

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/plancreator/internal/fqn"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("yaml document is empty")

// Parse parses a pipeline document. The document must be a mapping with
// exactly one top-level key; the field for that key is returned.
func Parse(data []byte) (*Field, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	b := &builder{seen: make(map[string]int)}
	root, err := b.build(doc.Content[0], nil)
	if err != nil {
		return nil, err
	}
	if root.kind != KindMapping {
		return nil, fmt.Errorf("yaml document root must be a mapping, got %s", root.kind)
	}
	if len(root.fields) != 1 {
		return nil, fmt.Errorf("yaml document must contain exactly one top-level field, got %d", len(root.fields))
	}
	return root.fields[0], nil
}

// builder wraps raw yaml nodes, assigning UUIDs and paths.
type builder struct {
	// seen maps each assigned UUID to the source line that claimed it.
	seen map[string]int
}

func (b *builder) build(raw *yaml.Node, path *fqn.Address) (*Node, error) {
	for raw.Kind == yaml.AliasNode && raw.Alias != nil {
		raw = raw.Alias
	}

	n := &Node{raw: raw, path: path, index: -1}

	switch raw.Kind {
	case yaml.MappingNode:
		n.kind = KindMapping
		for i := 0; i+1 < len(raw.Content); i += 2 {
			key, val := raw.Content[i], raw.Content[i+1]
			if key.Value == UUIDKey {
				if val.Kind != yaml.ScalarNode || val.Value == "" {
					return nil, fmt.Errorf("line %d: %s must be a non-empty scalar", key.Line, UUIDKey)
				}
				n.uuid = val.Value
				continue
			}
			child, err := b.build(val, path.Child(key.Value))
			if err != nil {
				return nil, err
			}
			f := &Field{Name: key.Value, Node: child, owner: n}
			child.parent = f
			for idx, el := range child.elements {
				el.array = f
				el.index = idx
			}
			n.fields = append(n.fields, f)
		}
	case yaml.SequenceNode:
		n.kind = KindSequence
		for i, item := range raw.Content {
			el, err := b.build(item, path.Element(i))
			if err != nil {
				return nil, err
			}
			n.elements = append(n.elements, el)
		}
	default:
		n.kind = KindScalar
	}

	if n.uuid == "" {
		n.uuid = uuid.NewString()
	}
	if line, dup := b.seen[n.uuid]; dup {
		return nil, fmt.Errorf("line %d: duplicate %s %q (first used on line %d)", raw.Line, UUIDKey, n.uuid, line)
	}
	b.seen[n.uuid] = raw.Line
	return n, nil
}
