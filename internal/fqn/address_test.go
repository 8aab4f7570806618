// internal/fqn/address_test.go
package fqn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_String(t *testing.T) {
	var nilAddr *Address
	assert.Equal(t, "", nilAddr.String())

	addr := &Address{Path: []PathSegment{NewPathSegment("pipeline"), NewPathSegmentWithIndex("stages", 2)}}
	assert.Equal(t, "pipeline.stages[2]", addr.String())
}

func TestAddress_Equal(t *testing.T) {
	a := Root("pipeline").Child("stages")
	b := Root("pipeline").Child("stages")
	c := Root("pipeline").Child("steps")
	var nilAddr *Address

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nilAddr))
	assert.True(t, nilAddr.Equal(nil))
}

func TestAddress_ChildAndElement(t *testing.T) {
	stages := Root("pipeline").Child("stages")
	second := stages.Element(1)
	stage := second.Child("stage")

	assert.Equal(t, "pipeline.stages", stages.String(), "derived addresses must not mutate the parent")
	assert.Equal(t, "pipeline.stages[1]", second.String())
	assert.Equal(t, "pipeline.stages[1].stage", stage.String())

	last, ok := stage.Last()
	require.True(t, ok)
	assert.Equal(t, "stage", last.Name)
	assert.False(t, last.HasIndex())

	var nilAddr *Address
	assert.Equal(t, "pipeline", nilAddr.Child("pipeline").String())
	assert.Nil(t, nilAddr.Element(0))
	_, ok = nilAddr.Last()
	assert.False(t, ok)
}
