// internal/fqn/address.go
package fqn

import (
	"fmt"
	"reflect"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}

	return sb.String()
}

// Equal checks for deep equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return reflect.DeepEqual(a.Path, other.Path)
}

// Child returns a new address with an unindexed segment appended. The
// receiver is not modified. A nil receiver yields a root address.
func (a *Address) Child(name string) *Address {
	if a == nil {
		return Root(name)
	}
	path := make([]PathSegment, len(a.Path), len(a.Path)+1)
	copy(path, a.Path)
	return &Address{Path: append(path, NewPathSegment(name))}
}

// Element returns a new address whose last segment is indexed with i, as
// used for the elements of an array field.
func (a *Address) Element(i int) *Address {
	if a == nil || len(a.Path) == 0 {
		return nil
	}
	path := make([]PathSegment, len(a.Path))
	copy(path, a.Path)
	path[len(path)-1].Index = i
	return &Address{Path: path}
}

// Last returns the final segment of the path.
func (a *Address) Last() (PathSegment, bool) {
	if a == nil || len(a.Path) == 0 {
		return PathSegment{}, false
	}
	return a.Path[len(a.Path)-1], true
}
