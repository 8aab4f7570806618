package creators

import (
	"fmt"
	"slices"

	"github.com/vk/plancreator/internal/yamlfield"
	"github.com/zclconf/go-cty/cty"
)

// attributes converts the fields of a mapping node into a cty object,
// leaving out the named structural fields that become nodes of their own.
func attributes(n *yamlfield.Node, skip ...string) (cty.Value, error) {
	attrs := make(map[string]cty.Value)
	for _, f := range n.Fields() {
		if slices.Contains(skip, f.Name) {
			continue
		}
		v, err := f.Node.ToCty()
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s: %w", f.FQN(), err)
		}
		attrs[f.Name] = v
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}

// mergeParams lays the attributes of spec over those of defaults. Either
// may be cty.NilVal or null. The result is always an object.
func mergeParams(defaults, spec cty.Value) (cty.Value, error) {
	attrs := make(map[string]cty.Value)
	for _, v := range []cty.Value{defaults, spec} {
		if v.IsNull() {
			continue
		}
		ty := v.Type()
		if !ty.IsObjectType() && !ty.IsMapType() {
			return cty.NilVal, fmt.Errorf("step parameters must be an object, got %s", ty.FriendlyName())
		}
		for it := v.ElementIterator(); it.Next(); {
			k, val := it.Element()
			attrs[k.AsString()] = val
		}
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}
