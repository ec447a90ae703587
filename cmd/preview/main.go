package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/config"
	"webgen_ai_server/internal/relayclient"
	"webgen_ai_server/internal/web"
	"webgen_ai_server/pkg/logger"
)

func main() {
	// Must happen before viper reads the environment.
	envFound, envErr := config.LoadEnvFile()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalf("Cannot load config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf("Cannot initialize logger: %v", err)
	}
	if envErr != nil {
		logger.Warnf("%v", envErr)
	} else if !envFound {
		logger.Info(".env file not found, relying on system environment variables.")
	}
	if err := cfg.ValidatePreview(); err != nil {
		logger.Fatalf("Invalid preview configuration: %v", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := web.NewServer(web.Options{
		Generator: relayclient.New(cfg.RelayURL, nil),
		PaneMin:   cfg.PaneMinPercent,
		PaneMax:   cfg.PaneMaxPercent,
	})
	if err != nil {
		logger.Fatalf("Cannot create preview server: %v", err)
	}

	// No WriteTimeout: pages are small, generation runs off the request.
	httpServer := &http.Server{
		Addr:        cfg.PreviewAddress,
		Handler:     server.Router(),
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
	}

	go func() {
		logger.Infof("Starting preview client on %s (relay %s)", cfg.PreviewAddress, cfg.RelayURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Preview server listen error: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down preview client...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Preview server forced shutdown error: %v", err)
	}
}
