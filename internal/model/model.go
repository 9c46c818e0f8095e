// Package model describes chat model descriptors and the agent identity they
// carry. Extraction is deliberately separate from normalization: this package
// reports the raw candidate and internal/agentid canonicalizes it.
package model

import "strings"

// Meta holds descriptor metadata that may pin a model to an owning agent.
type Meta struct {
	AgentID string `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
}

// Info mirrors the nested info object some frontends attach to a model.
type Info struct {
	Meta Meta `json:"meta" yaml:"meta"`
}

// Descriptor is a permissive view of a chat model entry. Unknown fields are
// ignored and every agent reference is optional.
type Descriptor struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Object  string `json:"object,omitempty" yaml:"object,omitempty"`
	OwnedBy string `json:"owned_by,omitempty" yaml:"owned_by,omitempty"`
	AgentID string `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	Meta    *Meta  `json:"meta,omitempty" yaml:"meta,omitempty"`
	Info    *Info  `json:"info,omitempty" yaml:"info,omitempty"`
}

// ExtractAgentID returns the raw agent identifier a descriptor points at, or
// "" when it carries none. Search order: info.meta, the descriptor's own
// meta, the direct agent_id field, and finally the segment before the first
// ':' of the model id for composite identifiers like "agent:model-name".
func ExtractAgentID(d Descriptor) string {
	if d.Info != nil && d.Info.Meta.AgentID != "" {
		return d.Info.Meta.AgentID
	}
	if d.Meta != nil && d.Meta.AgentID != "" {
		return d.Meta.AgentID
	}
	if d.AgentID != "" {
		return d.AgentID
	}
	if i := strings.IndexByte(d.ID, ':'); i > 0 {
		return d.ID[:i]
	}
	return ""
}

// Catalog is the set of model descriptors the gateway advertises. Lookup
// preserves the configured order for listing.
type Catalog struct {
	byID  map[string]Descriptor
	order []string
}

// NewCatalog builds a catalog from configured descriptors. Later duplicates
// of the same id replace earlier ones.
func NewCatalog(models []Descriptor) *Catalog {
	c := &Catalog{byID: make(map[string]Descriptor, len(models))}
	for _, m := range models {
		if m.ID == "" {
			continue
		}
		if _, seen := c.byID[m.ID]; !seen {
			c.order = append(c.order, m.ID)
		}
		if m.Object == "" {
			m.Object = "model"
		}
		c.byID[m.ID] = m
	}
	return c
}

// Lookup returns the descriptor for id. When the id is not in the catalog a
// synthetic descriptor carrying only the raw id is returned, so composite
// ids still yield an agent candidate.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	if d, ok := c.byID[id]; ok {
		return d, true
	}
	return Descriptor{ID: id, Object: "model"}, false
}

// List returns all descriptors in configuration order.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
