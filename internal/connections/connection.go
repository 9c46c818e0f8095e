// Package connections reads a user's stored agent connections from the
// remote connection store. Records are read-only snapshots; creation and
// deletion happen elsewhere.
package connections

import "encoding/json"

// Connection is one stored key reference as reported by the store.
//
// AgentID is the optional scope; empty means the key predates scoping and is
// treated as universally available. IsCommon marks a key shared with every
// agent regardless of scope.
type Connection struct {
	KeyID    string `json:"key_id"`
	KeyName  string `json:"key_name"`
	AgentID  string `json:"agent_id,omitempty"`
	IsCommon bool   `json:"is_common"`
}

// UnmarshalJSON decodes a record permissively: fields with unexpected types
// fall back to their zero value instead of failing the whole listing.
func (c *Connection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Connection{}
	decodeString(raw["key_id"], &c.KeyID)
	decodeString(raw["key_name"], &c.KeyName)
	decodeString(raw["agent_id"], &c.AgentID)
	decodeBool(raw["is_common"], &c.IsCommon)
	return nil
}

func decodeString(raw json.RawMessage, dst *string) {
	if raw == nil {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = s
	}
}

func decodeBool(raw json.RawMessage, dst *bool) {
	if raw == nil {
		return
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		*dst = b
	}
}
