package section

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/circlet/internal/catalog"
)

func TestEveryRouteHasASection(t *testing.T) {
	for _, r := range catalog.Routes() {
		info, ok := Lookup(r)
		assert.True(t, ok, r)
		assert.NotEmpty(t, info.Title, r)
	}
}

func TestScreen(t *testing.T) {
	s := New(catalog.RouteNetwork)
	assert.Equal(t, catalog.RouteNetwork, s.Route())
	assert.Equal(t, "Network", s.Title())
	assert.Contains(t, s.View(80, 20), "Network")

	unknown := New("/labs")
	assert.Equal(t, "labs", unknown.Title())
}
