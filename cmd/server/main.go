// Package main is the entry point for the AJA School fee records service.
//
// The service keeps one immutable fee record per student, renders
// password-protected PDF statements on demand, and can message a guardian
// the statement download link over WhatsApp.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: pure business logic without external dependencies
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: repositories, caches, external providers
// - Interface: HTTP endpoints
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aja-school/aja-fees-hub/config"
	"github.com/aja-school/aja-fees-hub/internal/application/command"
	"github.com/aja-school/aja-fees-hub/internal/application/query"
	"github.com/aja-school/aja-fees-hub/internal/domain/notification"
	"github.com/aja-school/aja-fees-hub/internal/domain/statement"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/internal/infrastructure/export"
	"github.com/aja-school/aja-fees-hub/internal/infrastructure/external/whatsapp"
	"github.com/aja-school/aja-fees-hub/internal/infrastructure/pdf"
	"github.com/aja-school/aja-fees-hub/internal/infrastructure/persistence/postgres"
	"github.com/aja-school/aja-fees-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/aja-school/aja-fees-hub/internal/interface/http"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting AJA School fees hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("running database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations completed")

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		redisCache     *redis.Cache
		studentCache   student.Cache
		artifactCache  statement.ArtifactCache
		redisAvailable bool
	)

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.Config{
			URL:          cfg.Redis.URL,
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}
		redisCache, err = redis.NewCache(ctx, redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", logger.Err(err))
		} else {
			defer redisCache.Close()
			studentCache = redis.NewStudentCache(redisCache)
			artifactCache = redis.NewStatementCache(redisCache)
			redisAvailable = true
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES & RENDERING
	// ─────────────────────────────────────────────────────────────────────────
	studentRepo := postgres.NewStudentRepository(dbConn)
	renderer := pdf.NewRenderer()
	protector := pdf.NewProtector()
	feeRegister := export.NewFeeRegister()

	// ─────────────────────────────────────────────────────────────────────────
	// 7. MESSAGING PROVIDER (optional outside production)
	// ─────────────────────────────────────────────────────────────────────────
	var messenger notification.Messenger
	if cfg.MessagingConfigured() {
		waClient, err := whatsapp.NewClient(whatsapp.ClientConfig{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			From:       cfg.Twilio.WhatsAppFrom,
			Logger:     log,
		})
		if err != nil {
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		messenger = waClient
		log.Info("WhatsApp messaging enabled")
	} else {
		log.Warn("WhatsApp credentials not set, notification endpoint disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	enrollHandler := command.NewEnrollStudentHandler(studentRepo, log)
	getStudentHandler := query.NewGetStudentHandler(studentRepo, studentCache, log)
	getStatementHandler := query.NewGetStatementHandler(studentRepo, renderer, protector, artifactCache, log)
	listStudentsHandler := query.NewListStudentsHandler(studentRepo, log)

	var dispatchHandler *command.DispatchStatementHandler
	if messenger != nil {
		dispatchHandler = command.NewDispatchStatementHandler(studentRepo, messenger, cfg.HTTP.PublicBaseURL, log)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	httpDeps := httpserver.Dependencies{
		EnrollStudentHandler:     enrollHandler,
		DispatchStatementHandler: dispatchHandler,
		GetStudentHandler:        getStudentHandler,
		GetStatementHandler:      getStatementHandler,
		ListStudentsHandler:      listStudentsHandler,
		FeeRegister:              feeRegister,
		Logger:                   log,
		Database:                 dbConn,
	}
	if redisAvailable {
		httpDeps.Cache = redisCache
	}

	server := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 10. START & GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := server.StartAsync()

	log.Info("AJA School fees hub is running",
		logger.String("http_address", server.Address()),
		logger.String("public_base_url", cfg.HTTP.PublicBaseURL),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("http server error", logger.Err(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown...",
		logger.Duration("timeout", cfg.App.ShutdownTimeout),
	)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}
