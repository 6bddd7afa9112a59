// Package main provides the entry point for the fairline daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/database"
	"github.com/yourusername/fairline/internal/datasource"
	"github.com/yourusername/fairline/internal/engine"
	"github.com/yourusername/fairline/internal/health"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/repository"
	"github.com/yourusername/fairline/internal/scheduler"
	"github.com/yourusername/fairline/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("FAIRLINE_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadWithDefaults(configPath)
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

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid configuration for environment: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Fairline daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database and repositories
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Odds feed client with snapshot caching
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:                cfg.FeedTimeout(),
		MaxRetries:             cfg.Feed.RetryAttempts,
		RetryWaitMin:           100 * time.Millisecond,
		RetryWaitMax:           10 * time.Second,
		RateLimit:              cfg.Feed.RateLimitPerSecond,
		CircuitBreakerMax:      cfg.Feed.CircuitBreakerErrors,
		CircuitBreakerCoolDown: time.Duration(cfg.Feed.CircuitBreakerWindow) * time.Second,
	}, nil)
	defer httpClient.Close()

	feedClient := datasource.NewFeedClient(&cfg.Feed, httpClient, appLog)
	source := datasource.NewCachedOddsSource(feedClient, cfg.SnapshotCacheTTL(), appLog)

	// Computation engine and pass service
	eng := engine.NewEngine(cfg.Engine.FairOdds, cfg.Engine.FeeTable(), appLog)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
		Feed:        feedClient,
		MaxPassAge:  maxPassAge,
	})

	passSvc := service.NewPassService(service.Config{
		Source:       source,
		Engine:       eng,
		Repositories: repos,
		Leagues:      cfg.Feed.Leagues,
		MinEVPercent: cfg.Engine.MinEVPercent,
		Observer:     healthServer,
		Logger:       appLog,
	})

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
		defer metricsServer.Shutdown(context.Background())
	}

	// Health endpoints
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Scheduled passes and cleanup
	sched := scheduler.NewScheduler(passSvc, appLog)
	if err := sched.SchedulePasses(cfg.Scheduler.PassCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule passes")
	}
	retention := time.Duration(cfg.Scheduler.RetentionDays) * 24 * time.Hour
	if err := sched.ScheduleCleanup(cfg.Scheduler.CleanupCron, retention); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule cleanup")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Live stream updates, when configured
	if cfg.Feed.StreamURL != "" {
		stream := datasource.NewStreamClient(cfg.Feed.StreamURL, cfg.Feed.APIKey, appLog)
		stream.AddHandler(func(records []*models.BetRecord) error {
			_, err := passSvc.RunOnRecords(ctx, records)
			return err
		})
		go func() {
			if err := stream.RunWithReconnect(ctx, cfg.Feed.Leagues, cfg.Feed.Markets); err != nil && ctx.Err() == nil {
				appLog.WithError(err).Warn("Odds stream stopped")
			}
		}()
	}

	// Run one pass immediately instead of waiting for the first cron tick
	if _, err := passSvc.RunOnce(ctx); err != nil {
		appLog.WithError(err).Warn("Initial pass failed")
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"leagues":   cfg.Feed.Leagues,
		"markets":   cfg.Feed.Markets,
		"pass_cron": cfg.Scheduler.PassCron,
	}).Info("Fairline daemon running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	appLog.Info("Fairline daemon shut down successfully")
}

// maxPassAge is how stale the last pass may be before readiness degrades.
const maxPassAge = 3 * time.Minute
