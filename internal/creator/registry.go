package creator

import (
	"fmt"

	"github.com/vk/plancreator/internal/yamlfield"
)

// Registry is the ordered list of creators. Dispatch picks the first creator
// whose SupportsField returns true, so registration order is the tie-break
// between creators that claim the same field. A registry is populated at
// startup and only read afterwards.
type Registry struct {
	creators []PartialPlanCreator
}

// NewRegistry creates a registry holding the given creators in order.
func NewRegistry(creators ...PartialPlanCreator) *Registry {
	r := &Registry{}
	for _, c := range creators {
		r.Register(c)
	}
	return r
}

// Register appends a creator to the end of the dispatch order.
func (r *Registry) Register(c PartialPlanCreator) {
	if c == nil {
		panic("creator: cannot register a nil creator")
	}
	r.creators = append(r.creators, c)
}

// Find returns the first registered creator that supports the field.
func (r *Registry) Find(f *yamlfield.Field) (PartialPlanCreator, bool) {
	for _, c := range r.creators {
		if c.SupportsField(f) {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of registered creators.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.creators)
}

// Names returns a printable name for each creator in dispatch order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.creators))
	for _, c := range r.creators {
		names = append(names, Name(c))
	}
	return names
}

// Name returns the creator's String() value when it has one, else its Go type.
func Name(c PartialPlanCreator) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
