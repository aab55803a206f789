package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatwire/internal/config"
	"chatwire/internal/constants"
	"chatwire/internal/database"
	"chatwire/internal/privacy"
	"chatwire/internal/retry"
	"chatwire/internal/service"
	"chatwire/internal/tracing"
	"chatwire/pkg/circuitbreaker"
	"chatwire/pkg/conversations"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// CLI flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	configPath = flag.String("config", "config.json", "Path to configuration file")
	version    = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("chatwire %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"version": Version,
		"build":   BuildTime,
		"commit":  GitCommit,
	}).Info("Starting chatwire")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.Info("Verbose logging enabled")
	} else if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.WithFields(logrus.Fields{
		"api_base_url": cfg.Platform.APIBaseURL,
		"access_key":   privacy.MaskAccessKey(cfg.Platform.AccessKey),
	}).Debug("Loaded platform configuration")

	tracingManager := tracing.NewManager(cfg.Tracing, logger)
	if err := tracingManager.Initialize(ctx); err != nil {
		logger.Warnf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tracingManager.Shutdown(context.Background()); err != nil {
			logger.Warnf("Failed to shutdown tracing: %v", err)
		}
	}()

	// Initialize database with exponential backoff retry
	backoff := retry.NewBackoff(retry.FromRetryConfig(cfg.Retry))

	var db *database.Database
	err = backoff.Retry(ctx, func() error {
		var initErr error
		db, initErr = database.New(cfg.Database.Path)
		if initErr != nil {
			logger.Warnf("Failed to initialize database: %v", initErr)
		}
		return initErr
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database after retries: %w", err)
	}
	defer db.Close()

	timeoutSec := cfg.Platform.TimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = constants.DefaultPlatformTimeoutSec
	}
	httpClient := &http.Client{
		Timeout: time.Duration(timeoutSec) * time.Second,
	}
	client := conversations.NewClientWithLogger(cfg.Platform.APIBaseURL, cfg.Platform.AccessKey, httpClient, logger)

	breaker := circuitbreaker.New(
		"conversations-api",
		constants.DefaultCircuitBreakerFailures,
		time.Duration(constants.DefaultCircuitBreakerTimeoutSec)*time.Second,
		logger,
	)

	msgService := service.NewMessageService(client, db, backoff, breaker, cfg.Platform.ChannelID, logger)
	eventService := service.NewEventService(db, logger)

	subscriptions := service.NewSubscriptionService(client, cfg.Platform.WebhookURL, cfg.Platform.ChannelID, logger)
	if _, err := subscriptions.EnsureSubscription(ctx); err != nil {
		logger.Warnf("Failed to ensure webhook subscription: %v", err)
	}

	retentionDays := cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = constants.DefaultRetentionDays
	}
	scheduler := service.NewScheduler(db, retentionDays, 24*time.Hour, logger)
	go scheduler.Start(ctx)
	defer scheduler.Stop()

	server := NewServer(cfg.Server, msgService, eventService, cfg.Platform.WebhookSecret, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serverErrCh:
		logger.Error(err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(constants.DefaultGracefulShutdownSec)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}
