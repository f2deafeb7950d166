/**
 * @description
 * This is the main entry point for the accounts service. It exposes the
 * account CRUD and diagnostics API, publishes notification events when
 * accounts are provisioned, and consumes communication acknowledgements
 * to mark accounts as notified.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Establishes and manages a connection pool to the PostgreSQL database.
 * - Connects to RabbitMQ for publishing and consuming domain events.
 * - Runs a scheduled sweep reporting accounts still awaiting communication.
 * - Starts the HTTP server and implements graceful shutdown.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, storage, and messaging.
 * - pgxpool for database connection, godotenv for local config, robfig/cron
 *   for the sweep schedule, and go-redis for the shared rate limiter.
 */
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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/eazybank/accounts-service/internal/api"
	"github.com/eazybank/accounts-service/internal/app"
	"github.com/eazybank/accounts-service/internal/config"
	"github.com/eazybank/accounts-service/internal/eventbus"
	"github.com/eazybank/accounts-service/internal/store"
	"github.com/eazybank/accounts-service/pkg/resilience"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Establish database connection pool.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database URL: %v\n", err)
	}
	dbConfig.MaxConns = 25
	dbConfig.MinConns = 5
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts behind poolers.
	dbConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer dbpool.Close()
	log.Println("Database connection established")

	// Set up dependencies.
	customerRepo := store.NewPostgresCustomerRepository(dbpool)
	accountRepo := store.NewPostgresAccountRepository(dbpool)

	bus, err := eventbus.NewRabbitBus(cfg.RabbitMQURL, cfg.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer bus.Close()

	accountService := app.NewAccountService(customerRepo, accountRepo, bus)
	ackHandler := app.NewCommunicationEventHandler(accountService)

	// Consume communication acknowledgements from the notifier.
	if err := bus.Subscribe(app.CommunicationAckChannel, "accounts", ackHandler.HandleCommunicationSent); err != nil {
		log.Fatalf("Failed to start acknowledgement consumer: %v", err)
	}
	log.Printf("Consuming acknowledgements on %q", app.CommunicationAckChannel)

	// Scheduled sweep over accounts still awaiting communication.
	jobs := app.NewJobs(accountRepo)
	scheduler := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))))
	if _, err := scheduler.AddFunc(cfg.SweepSchedule, jobs.ReportPendingCommunications); err != nil {
		log.Fatalf("Invalid sweep schedule %q: %v", cfg.SweepSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// The env-info rate limiter is shared through Redis when configured,
	// otherwise each replica enforces its budget locally.
	var limiter resilience.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Unable to parse Redis URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = resilience.NewRedisLimiter(rdb, "ratelimit:env-info", cfg.RateLimit, cfg.RateLimitWindow())
		log.Println("Using Redis-backed rate limiter")
	} else {
		limiter = resilience.NewFixedWindowLimiter(cfg.RateLimit, cfg.RateLimitWindow())
	}

	// Setup and start HTTP server.
	router := api.NewRouter(api.NewAccountHandler(accountService), api.NewDiagnosticsHandler(cfg, limiter))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	log.Println("Accounts service is running with API and acknowledgement consumer.")

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
