package main

import (
	"flag"
	"fmt"
	"os"

	"shareit/pkg/config"
	"shareit/pkg/database"
	"shareit/pkg/logging"
	"shareit/pkg/repository"
	"shareit/pkg/server"
	"shareit/pkg/service"
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

	logger := logging.New(cfg.Logging, cfg.App)
	logger.Info().Msg("starting server")

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}
	logger.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("database connected")

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	users := service.NewUserService(db, userRepo)
	requests := service.NewRequestService(db, requestRepo, users)
	bookings := service.NewBookingService(db, bookingRepo, itemRepo, users)
	items := service.NewItemService(db, itemRepo, users, bookings, requests)
	comments := service.NewCommentService(db, commentRepo, bookings)

	h := server.NewHandlers(users, items, bookings, requests, comments)
	r := server.NewRouter(h, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
