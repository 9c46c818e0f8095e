// Package agentid canonicalizes free-form agent identifiers into stable
// namespace tokens used in vault key references.
package agentid

import (
	"regexp"
	"strings"
)

const (
	// Fallback is returned when a non-empty identifier collapses to nothing
	// during normalization. A value that looked like an agent id never
	// normalizes to "no agent".
	Fallback = "default"

	// CommonMarker is the namespace for connections shared across all agents.
	CommonMarker = "COMMON"

	// GeneralMarker is the namespace for unscoped connections when no target
	// agent is known.
	GeneralMarker = "GENERAL"
)

var separatorRuns = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Normalize reduces a raw agent identifier to its canonical namespace token.
// Composite identifiers such as "agent:model-name" encode the owning agent
// before the colon, so only the segment before the first ':' is considered.
// Runs of characters outside [A-Za-z0-9] collapse to a single underscore and
// leading/trailing underscores are trimmed.
//
// An empty input stays empty; a non-empty input that collapses to nothing
// yields Fallback.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if i := strings.IndexByte(candidate, ':'); i >= 0 {
		candidate = candidate[:i]
	}
	token := separatorRuns.ReplaceAllString(candidate, "_")
	token = strings.Trim(token, "_")
	if token == "" {
		return Fallback
	}
	return token
}
