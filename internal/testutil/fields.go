package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/plancreator/internal/yamlfield"
)

// ParseField parses a single-rooted YAML document and fails the test on error.
func ParseField(t *testing.T, src string) *yamlfield.Field {
	t.Helper()
	f, err := yamlfield.Parse([]byte(src))
	require.NoError(t, err, "failed to parse test YAML")
	return f
}

// NamedFields returns one mapping field per name, keyed by that name. Each
// field's value carries `name: <name>` so creators can identify it.
func NamedFields(t *testing.T, names ...string) map[string]*yamlfield.Field {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("fields:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s:\n    name: %s\n", name, name)
	}
	root := ParseField(t, sb.String())

	out := make(map[string]*yamlfield.Field, len(names))
	for _, f := range root.Node.Fields() {
		out[f.Name] = f
	}
	require.Len(t, out, len(names), "field names must be unique")
	return out
}

// TypedField returns a field called name whose value has `type: <typ>`.
func TypedField(t *testing.T, name, typ string) *yamlfield.Field {
	t.Helper()
	src := fmt.Sprintf("%s:\n  type: %s\n", name, typ)
	if typ == "" {
		src = fmt.Sprintf("%s:\n  identifier: %s\n", name, name)
	}
	return ParseField(t, src)
}

// Dependencies indexes fields by id, the shape the engine expects.
func Dependencies(fields ...*yamlfield.Field) map[string]*yamlfield.Field {
	out := make(map[string]*yamlfield.Field, len(fields))
	for _, f := range fields {
		out[f.ID()] = f
	}
	return out
}

// TreeYAML renders a tree of `node` fields with the given depth (number of
// levels, including the root) and fan-out. Every node carries an
// `identifier` derived from its position.
func TreeYAML(depth, width int) string {
	var sb strings.Builder
	var write func(level int, id string, indent string)
	write = func(level int, id string, indent string) {
		fmt.Fprintf(&sb, "%snode:\n", indent)
		fmt.Fprintf(&sb, "%s  identifier: %s\n", indent, id)
		if level+1 >= depth || width == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s  children:\n", indent)
		for i := 0; i < width; i++ {
			fmt.Fprintf(&sb, "%s    -\n", indent)
			write(level+1, fmt.Sprintf("%s_%d", id, i), indent+"      ")
		}
	}
	write(0, "n", "")
	return sb.String()
}

// TreeSize returns the number of nodes TreeYAML renders.
func TreeSize(depth, width int) int {
	total, level := 0, 1
	for i := 0; i < depth; i++ {
		total += level
		level *= width
	}
	return total
}
