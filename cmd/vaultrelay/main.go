package main

import (
	"flag"
	"net/http"

	"github.com/openwebgate/vaultrelay/internal/app"
	"github.com/openwebgate/vaultrelay/internal/config"
	"github.com/openwebgate/vaultrelay/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (environment-only configuration when empty)")
	flag.Parse()

	log := logger.New()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.WithLevel(log, cfg.Logging.Level)

	srv := app.NewServer(cfg, log)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("upstream", cfg.Upstream.ChatURL).
		Str("connection_store", cfg.ConnectionStore.BaseURL).
		Int("model_count", len(cfg.Models)).
		Bool("admin_api_enabled", cfg.Admin.APIKey != "").
		Msg("Starting vaultrelay")
	log.Fatal().Err(http.ListenAndServe(cfg.Server.Addr, srv)).Msg("Server failed to start")
}
