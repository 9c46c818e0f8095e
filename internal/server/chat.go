package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/openwebgate/vaultrelay/internal/agentid"
	"github.com/openwebgate/vaultrelay/internal/model"
	"github.com/openwebgate/vaultrelay/internal/resolver"
)

func (s *Server) chatCompletionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error reading request body")
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestData map[string]interface{}
	if err := json.Unmarshal(requestBodyBytes, &requestData); err != nil {
		s.logger.Error().Err(err).Msg("Error unmarshalling request body")
		http.Error(w, "Failed to parse request body", http.StatusBadRequest)
		return
	}

	requestedModel := resolveRequestModel(requestData)
	descriptor, known := s.catalog.Lookup(requestedModel)
	rawAgentID := model.ExtractAgentID(descriptor)

	messageCount := 0
	if messages, ok := requestData["messages"].([]interface{}); ok {
		messageCount = len(messages)
	}

	token := bearerToken(r)
	vaultHeader := s.resolveVaultHeader(r.Context(), token, rawAgentID)

	s.logger.Info().
		Str("requested_model", requestedModel).
		Bool("model_in_catalog", known).
		Str("agent_id", rawAgentID).
		Str("agent_namespace", agentid.Normalize(rawAgentID)).
		Int("message_count", messageCount).
		Bool("vault_header_attached", vaultHeader != "").
		Str("user_agent", r.UserAgent()).
		Str("endpoint", s.cfg.Upstream.ChatURL).
		Msg("Processing chat completion request")

	resp, statusCode, err := s.makeUpstreamRequest(r, s.cfg.Upstream.ChatURL, requestBodyBytes, token, vaultHeader)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error making request to agent runtime")
		http.Error(w, "Failed to communicate with upstream API: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.writeResponse(w, resp, statusCode)
}

// resolveVaultHeader builds the X-Vault-Keys value for one request. Every
// failure degrades to "no header": a broken credential lookup must never
// block the chat request itself. The caller cannot distinguish "no relevant
// keys" from "store unavailable" here; /admin/resolve exists for that.
func (s *Server) resolveVaultHeader(ctx context.Context, token, rawAgentID string) string {
	if strings.TrimSpace(token) == "" {
		s.logger.Debug().Msg("No bearer token on request, skipping vault header")
		return ""
	}

	conns, err := s.store.List(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list agent connections, sending request without vault header")
		return ""
	}

	resolved := resolver.Resolve(conns, rawAgentID)
	return resolver.EncodeHeader(resolved, rawAgentID)
}

// resolveRequestModel extracts the model string from a chat request payload.
func resolveRequestModel(requestData map[string]interface{}) string {
	if m, ok := requestData["model"].(string); ok {
		return m
	}
	return ""
}

// bearerToken returns the caller's bearer credential, or "" when the request
// carries none. Absence is normal and means no vault header is built.
func bearerToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}
	if len(authHeader) >= 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return authHeader
}
