package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"github.com/tmhire/tmhire-backend/config"
	"github.com/tmhire/tmhire-backend/internal/api"
	"github.com/tmhire/tmhire-backend/internal/auth"
	"github.com/tmhire/tmhire-backend/internal/calendar"
	"github.com/tmhire/tmhire-backend/internal/db"
	"github.com/tmhire/tmhire-backend/internal/notification"
	"github.com/tmhire/tmhire-backend/internal/plan"
	"github.com/tmhire/tmhire-backend/internal/service"
	"github.com/tmhire/tmhire-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "tmhire-backend ", log.LstdFlags)

	// Local development convenience; missing .env is fine.
	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment from .env")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("auth.jwt_secret must be configured (or set JWT_SECRET)")
	}

	// Check for VAPID keys
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Notification workers deliver commit notifications in the background.
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	workerPool.Start(ctx)

	cal := calendar.New(gormDB)
	scheduler := service.NewScheduler(appStore, cal, plan.DefaultCapacityTable, workerPool)
	authManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize router
	router := api.NewRouter(appStore, scheduler, authManager, &webpushOptions, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
