package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/knowledge-sync-api/internal/api"
	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/discovery"
	"github.com/knowledge-sync-api/internal/salesforce"
	"github.com/knowledge-sync-api/internal/service"
	"github.com/knowledge-sync-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Knowledge Sync API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Salesforce clients
	authenticator := salesforce.NewAuthenticator(&cfg.Salesforce, log)
	articleClient := salesforce.NewClient(&cfg.Salesforce, log)

	// Initialize Discovery Engine clients
	discoverySvc, err := discovery.NewService(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discovery Engine client")
	}
	adminClient := discovery.NewAdminClient(discoverySvc, &cfg.Discovery, log)
	documentClient := discovery.NewDocumentClient(discoverySvc, &cfg.Discovery, log)

	// Initialize services
	services := service.NewServices(authenticator, articleClient, adminClient, documentClient, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
