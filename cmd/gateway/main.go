package main

import (
	"flag"
	"fmt"
	"os"

	"shareit/pkg/config"
	"shareit/pkg/gateway"
	"shareit/pkg/logging"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", ""), "path to config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if url := os.Getenv("SERVER_URL"); url != "" {
		cfg.Gateway.ServerURL = url
	}

	logger := logging.New(cfg.Logging, cfg.App)
	logger.Info().Str("server_url", cfg.Gateway.ServerURL).Msg("starting gateway")

	gw := gateway.New(cfg.Gateway, logger)
	r := gateway.NewRouter(gw)

	addr := fmt.Sprintf(":%d", cfg.Gateway.Port)
	logger.Info().Str("addr", addr).Msg("gateway listening")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("gateway failed")
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
