package app

import (
	"github.com/rs/zerolog"

	"github.com/openwebgate/vaultrelay/internal/config"
	"github.com/openwebgate/vaultrelay/internal/connections"
	"github.com/openwebgate/vaultrelay/internal/server"
)

// NewServer wires the HTTP connection store into a request handler.
func NewServer(cfg *config.Config, logger zerolog.Logger) *server.Server {
	storeClient := server.NewHTTPClientWithTimeout(cfg.ConnectionStore.Timeout)
	store := connections.NewHTTPStore(cfg.ConnectionStore.BaseURL, storeClient, logger)
	return server.New(logger, cfg, store)
}
