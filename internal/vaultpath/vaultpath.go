// Package vaultpath computes the storage path convention of the backing
// vault. The gateway never reads or writes secrets itself; these helpers
// exist so diagnostics can report where the backend keeps a given key.
package vaultpath

import (
	"fmt"
	"strings"

	"github.com/openwebgate/vaultrelay/internal/agentid"
	"github.com/openwebgate/vaultrelay/internal/connections"
)

const (
	commonScope  = "common"
	defaultScope = "default"
)

// Scope returns the path scope segment for a connection: "common" for shared
// keys, the normalized agent id when recorded, otherwise "default".
func Scope(conn connections.Connection) string {
	if conn.IsCommon {
		return commonScope
	}
	if s := agentid.Normalize(conn.AgentID); s != "" {
		return s
	}
	return defaultScope
}

// SecretPath returns the KV location where the backend persists a key:
// <mount>/data/users/<user_id>/<scope>_<key_name>.
func SecretPath(mount, userID, scope, keyName string) string {
	return fmt.Sprintf("%s/data/users/%s/%s_%s", strings.TrimRight(mount, "/"), userID, scope, keyName)
}

// Mask renders a secret value the way the backend does: first and last two
// characters over a minimum length, everything else starred. Short values
// are fully masked.
func Mask(value string) string {
	if len(value) < 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}
