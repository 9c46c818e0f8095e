package server

import "github.com/openwebgate/vaultrelay/internal/model"

// modelsResponse mirrors the OpenAI-compatible /v1/models listing shape.
type modelsResponse struct {
	Object string             `json:"object"`
	Data   []model.Descriptor `json:"data"`
}

// diagnosticEntry is one connection's classification in a resolve report.
type diagnosticEntry struct {
	KeyID     string `json:"key_id"`
	KeyName   string `json:"key_name"`
	Scope     string `json:"scope"`
	Priority  int    `json:"priority"`
	Included  bool   `json:"included"`
	Namespace string `json:"namespace,omitempty"`
	VaultPath string `json:"vault_path"`
}

// diagnosticsReport is the response of /admin/resolve. It exposes what the
// fail-open chat path swallows: per-connection classification and the header
// value that would be attached.
type diagnosticsReport struct {
	Agent           string            `json:"agent"`
	NormalizedAgent string            `json:"normalized_agent,omitempty"`
	HeaderName      string            `json:"header_name"`
	Header          string            `json:"header,omitempty"`
	Entries         []diagnosticEntry `json:"entries"`
}
