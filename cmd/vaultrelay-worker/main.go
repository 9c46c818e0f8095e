//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/openwebgate/vaultrelay/internal/app"
	"github.com/openwebgate/vaultrelay/internal/config"
	"github.com/openwebgate/vaultrelay/internal/logger"
)

func main() {
	log := logger.New()

	// Workers builds configure everything through environment bindings.
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration from environment")
	}
	log = logger.WithLevel(log, cfg.Logging.Level)

	srv := app.NewServer(cfg, log)

	// workers handles all the HTTP server setup.
	workers.Serve(srv)
}
