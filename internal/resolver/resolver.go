// Package resolver selects the connections applicable to a target agent and
// fixes their transport order.
package resolver

import (
	"sort"

	"github.com/openwebgate/vaultrelay/internal/agentid"
	"github.com/openwebgate/vaultrelay/internal/connections"
)

// ScopeClass classifies how a connection applies to a target agent. The
// ordinal value is the sort priority: lower sorts first.
type ScopeClass int

const (
	// ScopeAgent means the connection's normalized agent id equals the
	// normalized target.
	ScopeAgent ScopeClass = iota
	// ScopeCommon means the connection is shared with every agent.
	ScopeCommon
	// ScopeLegacy means the connection has no recorded scope and is treated
	// as universally available.
	ScopeLegacy
	// ScopeExcluded means the connection is scoped to a different agent and
	// does not apply.
	ScopeExcluded
)

func (c ScopeClass) String() string {
	switch c {
	case ScopeAgent:
		return "agent"
	case ScopeCommon:
		return "common"
	case ScopeLegacy:
		return "legacy"
	default:
		return "excluded"
	}
}

// Classify returns the scope class of conn relative to a raw target agent
// identifier. An agent-specific match outranks the common flag when both
// apply.
func Classify(conn connections.Connection, rawAgentID string) ScopeClass {
	target := agentid.Normalize(rawAgentID)
	scope := agentid.Normalize(conn.AgentID)

	if target != "" && scope != "" && scope == target {
		return ScopeAgent
	}
	if conn.IsCommon {
		return ScopeCommon
	}
	if scope == "" {
		return ScopeLegacy
	}
	return ScopeExcluded
}

// Resolve filters conns to the subset applicable to rawAgentID and orders it:
// agent-specific matches first, then common connections, then legacy
// unscoped entries, with key name as the final tie-break. The result is
// never nil; an empty subset is a normal outcome, not an error.
//
// Resolve is pure: it never mutates its input and the output does not depend
// on the input order.
func Resolve(conns []connections.Connection, rawAgentID string) []connections.Connection {
	type ranked struct {
		conn  connections.Connection
		class ScopeClass
	}

	matched := make([]ranked, 0, len(conns))
	for _, conn := range conns {
		class := Classify(conn, rawAgentID)
		if class == ScopeExcluded {
			continue
		}
		matched = append(matched, ranked{conn: conn, class: class})
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].class != matched[j].class {
			return matched[i].class < matched[j].class
		}
		return matched[i].conn.KeyName < matched[j].conn.KeyName
	})

	out := make([]connections.Connection, len(matched))
	for i, m := range matched {
		out[i] = m.conn
	}
	return out
}
