package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authd/internal/api"
	"authd/internal/app/service"
	"authd/internal/app/worker"
	"authd/internal/common/security"
	"authd/internal/platform/config"
	"authd/internal/platform/database"
	"authd/internal/platform/logging"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 2. Initialize Database
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	if err := database.RunMigrations(ctx, database.DB); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	// 3. Initialize Services
	hasher := security.NewHasher(cfg.BcryptCost)
	authService := service.NewAuthService(database.DB, hasher, cfg.SessionExpiry, logger)
	userService := service.NewUserService(database.DB, hasher, logger)
	sessionService := service.NewSessionService(database.DB, cfg.SessionExpiry, cfg.SessionRenewal, logger)
	tokenService := service.NewTokenService(database.DB, logger)

	// 4. Background prune sweep
	pruneWorker := worker.NewPruneWorker(sessionService, cfg.PruneSchedule, logger)
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	if err := pruneWorker.Start(workerCtx); err != nil {
		log.Fatalf("Could not start prune worker: %v", err)
	}

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, sessionService, tokenService, cfg.SessionExpiry)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel()
	pruneWorker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
