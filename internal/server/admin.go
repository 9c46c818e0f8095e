package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openwebgate/vaultrelay/internal/agentid"
	"github.com/openwebgate/vaultrelay/internal/resolver"
	"github.com/openwebgate/vaultrelay/internal/vaultpath"
)

// adminMiddleware checks for a valid admin API key from either
// 'Authorization: Bearer <key>' or 'X-API-Key: <key>' headers.
func (s *Server) adminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminKey := s.cfg.Admin.APIKey
		if adminKey == "" {
			s.logger.Error().Msg("Admin API key not configured")
			http.Error(w, "Admin API not configured", http.StatusInternalServerError)
			return
		}

		var providedToken string
		authHeader := r.Header.Get("Authorization")
		xAPIKeyHeader := r.Header.Get("X-API-Key")

		if authHeader != "" {
			// Expect "Bearer <token>" format, case-insensitive
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				s.logger.Warn().
					Str("method", r.Method).
					Str("uri", r.RequestURI).
					Str("remote_addr", r.RemoteAddr).
					Msg("Invalid Authorization header format for admin endpoint")
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}
			providedToken = parts[1]
		} else if xAPIKeyHeader != "" {
			providedToken = xAPIKeyHeader
		} else {
			s.logger.Warn().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Str("remote_addr", r.RemoteAddr).
				Msg("Missing required Authorization or X-API-Key header for admin endpoint")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if providedToken != adminKey {
			s.logger.Warn().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Str("remote_addr", r.RemoteAddr).
				Msg("Invalid admin API key provided")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// resolveDiagnosticsHandler answers GET /admin/resolve?agent=<raw>&token=...
// It runs the same resolution the chat path runs, but surfaces the failures
// the chat path swallows. Key values are never fetched or returned.
//
// The session token to list connections with is taken from the
// X-Session-Token header, since Authorization carries the admin key here.
func (s *Server) resolveDiagnosticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimSpace(r.Header.Get("X-Session-Token"))
	if token == "" {
		http.Error(w, "Missing X-Session-Token header", http.StatusBadRequest)
		return
	}

	rawAgentID := r.URL.Query().Get("agent")
	userID := r.URL.Query().Get("user")
	if userID == "" {
		userID = "me"
	}

	conns, err := s.store.List(r.Context(), token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Connection store unavailable for diagnostics")
		http.Error(w, "Connection store unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}

	resolved := resolver.Resolve(conns, rawAgentID)
	report := diagnosticsReport{
		Agent:           rawAgentID,
		NormalizedAgent: agentid.Normalize(rawAgentID),
		HeaderName:      resolver.HeaderName,
		Header:          resolver.EncodeHeader(resolved, rawAgentID),
		Entries:         make([]diagnosticEntry, 0, len(conns)),
	}

	for _, conn := range conns {
		class := resolver.Classify(conn, rawAgentID)
		entry := diagnosticEntry{
			KeyID:     conn.KeyID,
			KeyName:   conn.KeyName,
			Scope:     class.String(),
			Priority:  int(class),
			Included:  class != resolver.ScopeExcluded,
			VaultPath: vaultpath.SecretPath(s.cfg.Vault.Mount, userID, vaultpath.Scope(conn), conn.KeyName),
		}
		if entry.Included {
			entry.Namespace = resolver.Namespace(conn, rawAgentID)
		}
		report.Entries = append(report.Entries, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode diagnostics report")
	}
}
