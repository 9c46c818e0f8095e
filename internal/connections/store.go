package connections

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const listPath = "/api/v1/agent-connections/"

// Store lists the caller's stored connections. The bearer token is the
// caller's own session credential, passed in explicitly so implementations
// never reach into ambient state.
type Store interface {
	List(ctx context.Context, token string) ([]Connection, error)
}

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPStore talks to the remote connection store over HTTP.
type HTTPStore struct {
	baseURL string
	client  HTTPClient
	logger  zerolog.Logger
}

// NewHTTPStore creates a store client rooted at baseURL.
func NewHTTPStore(baseURL string, client HTTPClient, logger zerolog.Logger) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// List fetches the caller's full connection set. One attempt, no retry: a
// failed fetch means no credentials for this request.
func (s *HTTPStore) List(ctx context.Context, token string) ([]Connection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+listPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}

	// Normalize token to avoid double "Bearer "
	bareToken := strings.TrimSpace(token)
	if len(bareToken) >= 7 && strings.EqualFold(bareToken[:7], "Bearer ") {
		bareToken = strings.TrimSpace(bareToken[7:])
	}

	req.Header.Set("Authorization", "Bearer "+bareToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("connection store returned status %d", resp.StatusCode)
	}

	var conns []Connection
	if err := json.NewDecoder(resp.Body).Decode(&conns); err != nil {
		return nil, fmt.Errorf("failed to decode connection list: %w", err)
	}

	s.logger.Debug().
		Int("connection_count", len(conns)).
		Msg("Fetched connection snapshot")

	return conns, nil
}
