package yamlfield

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
)

// ToCty converts the node into a cty.Value. Mappings become objects (without
// the `__uuid` entry), sequences become tuples and scalars are typed by their
// resolved YAML tag.
func (n *Node) ToCty() (cty.Value, error) {
	switch n.kind {
	case KindMapping:
		if len(n.fields) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.fields))
		for _, f := range n.fields {
			v, err := f.Node.ToCty()
			if err != nil {
				return cty.NilVal, err
			}
			attrs[f.Name] = v
		}
		return cty.ObjectVal(attrs), nil

	case KindSequence:
		if len(n.elements) == 0 {
			return cty.EmptyTupleVal, nil
		}
		items := make([]cty.Value, 0, len(n.elements))
		for _, el := range n.elements {
			v, err := el.ToCty()
			if err != nil {
				return cty.NilVal, err
			}
			items = append(items, v)
		}
		return cty.TupleVal(items), nil
	}

	return n.scalarToCty()
}

func (n *Node) scalarToCty() (cty.Value, error) {
	switch n.raw.Tag {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := n.raw.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("%s: invalid bool %q: %w", n.FQN(), n.raw.Value, err)
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		if v, err := cty.ParseNumberVal(n.raw.Value); err == nil {
			return v, nil
		}
		// Hex, octal and special float spellings are handled by the YAML decoder.
		var f float64
		if err := n.raw.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("%s: invalid number %q: %w", n.FQN(), n.raw.Value, err)
		}
		if math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("%s: NaN is not a supported number", n.FQN())
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(n.raw.Value), nil
	}
}
