// internal/fqn/types.go
package fqn

// PathSegment represents a single component of a field path, e.g. `stages[1]`.
type PathSegment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewPathSegment creates a new path segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a new path segment that includes an index.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Address is the structured form of a field path.
type Address struct {
	Path []PathSegment
}

// Root returns an address with a single, unindexed segment.
func Root(name string) *Address {
	return &Address{Path: []PathSegment{NewPathSegment(name)}}
}
