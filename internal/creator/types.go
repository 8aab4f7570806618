package creator

import (
	"slices"

	"github.com/vk/plancreator/internal/yamlfield"
)

// AnyType matches a field regardless of its `type` attribute. It is also the
// type assumed for fields that carry no `type` attribute.
const AnyType = "__any__"

// SupportedTypes maps a field name to the `type` values a creator accepts.
type SupportedTypes map[string][]string

// Supports reports whether the field's name is declared and its type is
// accepted, either explicitly or through AnyType.
func (s SupportedTypes) Supports(f *yamlfield.Field) bool {
	if f == nil || len(s) == 0 {
		return false
	}
	types, ok := s[f.Name]
	if !ok || len(types) == 0 {
		return false
	}
	if slices.Contains(types, AnyType) {
		return true
	}
	fieldType := f.Type()
	if fieldType == "" {
		fieldType = AnyType
	}
	return slices.Contains(types, fieldType)
}
