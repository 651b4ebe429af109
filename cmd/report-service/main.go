package main

import (
	"context"
	"fmt"
	"os"

	"report-service/internal/auth"
	"report-service/internal/config"
	"report-service/internal/db"
	httphandler "report-service/internal/http"
	"report-service/internal/http/middleware"
	"report-service/internal/logger"
	"report-service/internal/repository"
	"report-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	identityDB, err := db.OpenIdentity(cfg.IdentityDB)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect identity store")
	}

	callDB, err := db.OpenCalls(cfg.CallDB)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect call store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go db.Keepalive(ctx, callDB, cfg.Report.KeepaliveInterval, appLogger)

	directoryRepo := repository.NewDirectoryRepository(identityDB)
	callRepo := repository.NewCallRepository(callDB)
	reportService := service.NewReportService(callRepo, directoryRepo, cfg.Report.QueryTimeout, cfg.Report.RecordingsDir)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(reportService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting report service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
