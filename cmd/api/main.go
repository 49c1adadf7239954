// Package main provides the entry point for the Sportology API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sportology/internal/auth"
	"github.com/yourusername/sportology/internal/config"
	"github.com/yourusername/sportology/internal/database"
	"github.com/yourusername/sportology/internal/health"
	"github.com/yourusername/sportology/internal/logger"
	"github.com/yourusername/sportology/internal/ratelimit"
	"github.com/yourusername/sportology/internal/repository"
	"github.com/yourusername/sportology/internal/scheduler"
	"github.com/yourusername/sportology/internal/server"
	"github.com/yourusername/sportology/internal/service"
)

var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Sportology API starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection and schema
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	// Health probe server comes up first so orchestrators can watch
	// the bootstrap.
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Port:        cfg.Server.HealthPort,
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Initialize repositories and services
	repos := repository.NewRepositories(db)

	jwtManager, err := auth.NewJWTManager(&cfg.Auth)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize token manager")
	}

	quota := ratelimit.NewDailyQuota(repos.UsageLogs, cfg.RateLimit.FreeTierDailyLimit)
	demoLimiter := ratelimit.NewDemoLimiter(cfg.RateLimit.DemoDailyLimit)
	analysisService := service.NewAnalysisService(repos.UsageLogs, quota, appLog)
	playerService := service.NewPlayerService(repos.Players)

	// Retention jobs
	sched := scheduler.New(repos.UsageLogs, repos.DemoUsage, cfg.Retention, appLog)
	if err := sched.ScheduleRetention(); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule retention job")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	// Public API server
	apiServer := server.New(cfg, appLog, repos, jwtManager, analysisService, playerService, demoLimiter)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	healthServer.SetReady(true)

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLog.WithError(err).Error("API server failed")
		}
	}

	healthServer.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownGraceSeconds)*time.Second,
	)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Failed to shut down API server cleanly")
	}

	appLog.Info("Sportology API stopped")
}
