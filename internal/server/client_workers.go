//go:build js && wasm

package server

import (
	"net/http"
	"time"
)

// NewHTTPClient creates the HTTP client used for upstream chat requests.
// In Workers builds outbound requests go through the runtime's fetch-backed
// transport; timeouts are governed by the platform.
func NewHTTPClient() HTTPClient {
	return &http.Client{}
}

// NewHTTPClientWithTimeout matches the regular build's constructor. The
// timeout is ignored in Workers builds.
func NewHTTPClientWithTimeout(_ time.Duration) HTTPClient {
	return &http.Client{}
}
