package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAgentID(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{
			"info meta wins over everything",
			Descriptor{
				ID:      "ops:gpt-4",
				AgentID: "direct",
				Meta:    &Meta{AgentID: "meta-agent"},
				Info:    &Info{Meta: Meta{AgentID: "info-agent"}},
			},
			"info-agent",
		},
		{
			"meta wins over direct field",
			Descriptor{ID: "gpt-4", AgentID: "direct", Meta: &Meta{AgentID: "meta-agent"}},
			"meta-agent",
		},
		{
			"direct field wins over id segment",
			Descriptor{ID: "ops:gpt-4", AgentID: "direct"},
			"direct",
		},
		{
			"composite id segment as last resort",
			Descriptor{ID: "agent-42:gpt-4"},
			"agent-42",
		},
		{
			"plain id yields nothing",
			Descriptor{ID: "gpt-4"},
			"",
		},
		{
			"empty id segment yields nothing",
			Descriptor{ID: ":gpt-4"},
			"",
		},
		{
			"empty nested fields are skipped",
			Descriptor{ID: "sales:gpt-4", Meta: &Meta{}, Info: &Info{}},
			"sales",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAgentID(tt.d))
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog([]Descriptor{
		{ID: "gpt-4", Name: "GPT-4", AgentID: "support"},
		{ID: "sales:gpt-4"},
	})

	d, ok := c.Lookup("gpt-4")
	assert.True(t, ok)
	assert.Equal(t, "support", d.AgentID)
	assert.Equal(t, "model", d.Object)

	// Unknown ids still produce a usable synthetic descriptor.
	d, ok = c.Lookup("agent-42:gpt-4")
	assert.False(t, ok)
	assert.Equal(t, "agent-42", ExtractAgentID(d))
}

func TestCatalogListKeepsOrder(t *testing.T) {
	c := NewCatalog([]Descriptor{{ID: "b"}, {ID: "a"}, {ID: "b", Name: "B2"}})
	list := c.List()
	assert.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "B2", list[0].Name)
	assert.Equal(t, "a", list[1].ID)
}
