package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/portfolio/docs"
	"github.com/KOFI-GYIMAH/portfolio/internal/config"
	"github.com/KOFI-GYIMAH/portfolio/internal/db"
	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/internal/handler"
	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	md "github.com/KOFI-GYIMAH/portfolio/internal/middleware"
	"github.com/KOFI-GYIMAH/portfolio/internal/queue"
	"github.com/KOFI-GYIMAH/portfolio/internal/service"
	"github.com/KOFI-GYIMAH/portfolio/internal/telemetry"
	"github.com/KOFI-GYIMAH/portfolio/internal/worker"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type notifier interface {
	service.Notifier
	Close() error
}

// @title Portfolio Service
// @version 1.0.0
// @description Contact form and GitHub activity panel for the portfolio site.
// @host localhost:8081
// @BasePath /v1
// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}
	if cfg.LogFormat == "json" {
		logger.UseJSON()
	}

	// * Tracing
	tel, err := telemetry.Setup(telemetry.Config{
		Enabled:     cfg.OTELEnabled,
		ServiceName: "portfolio",
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		logger.Error("Failed to set up telemetry: %v", err)
		os.Exit(1)
	}

	// * Initialize database
	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// * Run migrations
	if err := store.Migrate(); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}
	logger.Info("Successfully ran migrations")

	// * Initialize GitHub client
	githubClient, err := github.NewClient(github.Options{
		Token:     cfg.GitHubToken,
		BaseURL:   cfg.GitHubAPIURL,
		UserAgent: cfg.GitHubUserAgent,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		logger.Error("Failed to initialize GitHub client: %v", err)
		os.Exit(1)
	}

	notify := openNotifier(cfg.AMQPURL)
	defer notify.Close()

	// * Create services
	contactService := service.NewContactService(store, notify)
	aggregationService := service.NewAggregationService(githubClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GitHubConfigured() {
		go worker.NewCredentialProbe(githubClient, cfg.ProbeInterval).Run(ctx)
	} else {
		metrics.SetCredentialValid(false)
	}

	// * Create API server
	router := mux.NewRouter()
	router.Use(md.RecoveryMiddleware, md.TracingMiddleware, md.MetricsMiddleware, md.LoggingMiddleware)

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	handler.NewHealthHandler(store, cfg.GitHubConfigured()).RegisterRoutes(router)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/v1").Subrouter()
	handler.NewGitHubHandler(githubClient, aggregationService).RegisterRoutes(api)

	contactHandler := handler.NewContactHandler(contactService)
	contactHandler.RegisterRoutes(api)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(md.RequireBearer(cfg.AdminToken, cfg.AdminAllowOpen))
	contactHandler.RegisterAdminRoutes(admin)
	if cfg.AdminToken == "" {
		if cfg.AdminAllowOpen {
			logger.Warn("ADMIN_TOKEN is not set and ADMIN_ALLOW_OPEN=true; admin routes are unauthenticated")
		} else {
			logger.Warn("ADMIN_TOKEN is not set; admin routes answer 503")
		}
	}

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown error: %v", err)
	}
}

func openStore(cfg *config.Config) (*db.SQLStore, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return db.NewSQLiteStore(cfg.DBURL)
	}
	return db.NewPostgresStore(cfg.DBURL, cfg.DBKey)
}

// * openNotifier falls back to a no-op when the broker is unset or unreachable
func openNotifier(url string) notifier {
	if url == "" {
		logger.Info("AMQP_URL not set, contact notifications disabled")
		return queue.NoopNotifier{}
	}

	rabbit, err := queue.NewRabbitMQ(url)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, contact notifications disabled: %v", err)
		return queue.NoopNotifier{}
	}
	return rabbit
}
