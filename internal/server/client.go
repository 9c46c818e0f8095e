//go:build !js || !wasm

package server

import (
	"net/http"
	"time"
)

// NewHTTPClient creates the HTTP client used for upstream chat requests.
func NewHTTPClient() HTTPClient {
	return &http.Client{
		Timeout: 60 * time.Second,
	}
}

// NewHTTPClientWithTimeout creates an HTTP client with an explicit timeout,
// used for the connection store read.
func NewHTTPClientWithTimeout(timeout time.Duration) HTTPClient {
	return &http.Client{
		Timeout: timeout,
	}
}
