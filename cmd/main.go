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

	"webgen_ai_server/api"
	"webgen_ai_server/config"
	"webgen_ai_server/internal/ai"
	handlers "webgen_ai_server/internal/api"
	"webgen_ai_server/pkg/logger"
	"webgen_ai_server/pkg/tracer"
)

const serviceName = "webgen-relay"

func main() {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	envFound, envErr := config.LoadEnvFile()

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
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
	if err := cfg.ValidateRelay(); err != nil {
		logger.Fatalf("Invalid relay configuration: %v", err)
	}

	// --- Dependency Initialization ---
	ctx := context.Background()

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRate:  cfg.TraceSampleRate,
		Enabled:     cfg.TracingEnabled,
	})
	if err != nil {
		logger.Fatalf("Cannot initialize tracing: %v", err)
	}

	// Initialize AI Client (OpenAI-compatible or Anthropic)
	model, err := ai.NewChatModel(ai.ModelOptions{
		Provider:    cfg.AIProvider,
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
	})
	if err != nil {
		logger.Fatalf("Cannot create AI client: %v", err)
	}
	aiGenerator := ai.NewGenerator(model)
	logger.Infof("AI provider %s, model %s", aiGenerator.Provider(), cfg.AIModel)

	apiHandler := handlers.NewAPIHandler(aiGenerator)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("Running in Gin Debug Mode")
	}

	router := api.SetupRouter(api.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TracingEnabled: cfg.TracingEnabled,
		ServiceName:    serviceName,
	}, apiHandler)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("API server listen error: %s", err)
		}
		logger.Info("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("API server forced shutdown error: %v", err)
	} else {
		logger.Info("API server gracefully stopped.")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Errorf("Tracer shutdown error: %v", err)
	}

	logger.Info("Application exiting.")
}
