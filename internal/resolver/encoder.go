package resolver

import (
	"strings"

	"github.com/openwebgate/vaultrelay/internal/agentid"
	"github.com/openwebgate/vaultrelay/internal/connections"
)

// HeaderName is the request header carrying vault-scoped key references.
const HeaderName = "X-Vault-Keys"

// namespaceSeparator joins the namespace and key name inside one token.
// Earlier revisions of this scheme used '_', which collides with key names;
// '/' is the sole contract version.
const namespaceSeparator = "/"

// EncodeHeader serializes a resolved connection set into the header value:
// NAMESPACE/KEY_NAME tokens joined by commas, preserving resolver order.
// Returns "" for an empty set; callers must omit the header entirely rather
// than send an empty value.
func EncodeHeader(resolved []connections.Connection, rawAgentID string) string {
	if len(resolved) == 0 {
		return ""
	}

	target := agentid.Normalize(rawAgentID)
	tokens := make([]string, 0, len(resolved))
	for _, conn := range resolved {
		tokens = append(tokens, namespaceFor(conn, target)+namespaceSeparator+conn.KeyName)
	}
	return strings.Join(tokens, ",")
}

// Namespace reports the namespace token a connection would be encoded under
// for a raw target agent identifier. Exposed for diagnostics.
func Namespace(conn connections.Connection, rawAgentID string) string {
	return namespaceFor(conn, agentid.Normalize(rawAgentID))
}

// namespaceFor picks the namespace token for one entry: the common marker
// for shared keys, the connection's own scope when recorded, the target
// agent for legacy entries, and the general marker when no agent is known.
func namespaceFor(conn connections.Connection, target string) string {
	if conn.IsCommon {
		return agentid.CommonMarker
	}
	if scope := agentid.Normalize(conn.AgentID); scope != "" {
		return scope
	}
	if target != "" {
		return target
	}
	return agentid.GeneralMarker
}
