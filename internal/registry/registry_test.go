// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Contains("exampleathletics.com"))

	assert.True(t, r.Add("exampleathletics.com"))
	assert.False(t, r.Add("www.ExampleAthletics.com"), "normalized duplicate must not be re-added")
	assert.False(t, r.Add(""))

	assert.True(t, r.Contains("exampleathletics.com"))
	assert.True(t, r.Contains("WWW.exampleathletics.com"))
	assert.Equal(t, 1, r.Len())

	r.Add("b.org")
	assert.Equal(t, []string{"b.org", "exampleathletics.com"}, r.Domains())
}
