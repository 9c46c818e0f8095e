package server

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/openwebgate/vaultrelay/internal/resolver"
)

// makeUpstreamRequest forwards the chat body to the agent runtime. The
// caller's bearer token passes through unchanged and the vault header is
// attached only when non-empty.
func (s *Server) makeUpstreamRequest(r *http.Request, url string, body []byte, token, vaultHeader string) (*http.Response, int, error) {
	proxyReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create proxy request: %w", err)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	proxyReq.Header.Set("Content-Type", contentType)

	if accept := r.Header.Get("Accept"); accept != "" {
		proxyReq.Header.Set("Accept", accept)
	}
	if token != "" {
		proxyReq.Header.Set("Authorization", "Bearer "+token)
	}
	if vaultHeader != "" {
		proxyReq.Header.Set(resolver.HeaderName, vaultHeader)
	}
	proxyReq.Header.Set("X-Request-Id", uuid.NewString())

	// Log outbound header summary (sanitized)
	s.logger.Debug().
		Str("authorization_preview", func() string {
			if token == "" {
				return ""
			}
			if len(token) > 12 {
				return "Bearer " + token[:6] + "…" + token[len(token)-6:]
			}
			return "Bearer " + token
		}()).
		Str(resolver.HeaderName, vaultHeader).
		Str("x_request_id", proxyReq.Header.Get("X-Request-Id")).
		Msg("Upstream request headers (sanitized)")

	resp, err := s.httpClient.Do(proxyReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, resp.StatusCode, nil
}

// writeResponse relays the upstream response to the client. Event streams
// are flushed write-by-write so tokens reach the client as they arrive.
func (s *Server) writeResponse(w http.ResponseWriter, resp *http.Response, statusCode int) {
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	var dst io.Writer = w
	if isEventStream(contentType) {
		if flusher, ok := w.(http.Flusher); ok {
			dst = sseFlushWriter{w: w, f: flusher}
		}
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		s.logger.Error().Err(err).Msg("Error relaying upstream response body")
	}
}

func isEventStream(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(contentType, "text/event-stream")
	}
	return mediaType == "text/event-stream"
}
