package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dafibh/backoffice/backoffice-backend/docs"
	"github.com/dafibh/backoffice/backoffice-backend/internal/config"
	"github.com/dafibh/backoffice/backoffice-backend/internal/handler"
	"github.com/dafibh/backoffice/backoffice-backend/internal/metrics"
	"github.com/dafibh/backoffice/backoffice-backend/internal/middleware"
	"github.com/dafibh/backoffice/backoffice-backend/internal/repository/postgres"
	"github.com/dafibh/backoffice/backoffice-backend/internal/repository/storage"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Back-office API
// @version 1.0
// @description Clients, employees, expenses, payments and the dashboard report of a small-business back office.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token, prefixed with "Bearer "
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Apply migrations before the pool opens so queries see the current schema
	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Connect to database
	pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMetrics := metrics.NewPrometheusMetrics(registry)

	// Initialize repositories
	expenseRepo := postgres.NewExpenseRepository(pool, cfg.QueryTimeout)
	paymentRepo := postgres.NewPaymentRepository(pool, cfg.QueryTimeout)
	clientRepo := postgres.NewClientRepository(pool, cfg.QueryTimeout)
	employeeRepo := postgres.NewEmployeeRepository(pool, cfg.QueryTimeout)

	// Receipt storage is optional
	var receiptStore storage.ReceiptStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ReceiptStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, receipt uploads are disabled")
	}

	// WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	expenseService := service.NewExpenseService(expenseRepo, clientRepo)
	paymentService := service.NewPaymentService(paymentRepo, clientRepo)
	clientService := service.NewClientService(clientRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	receiptService := service.NewReceiptService(receiptStore, expenseRepo)
	expenseService.SetReceiptService(receiptService)

	for _, n := range []interface {
		SetEventPublisher(websocket.EventPublisher)
		SetMetrics(metrics.Recorder)
	}{expenseService, paymentService, clientService, employeeService, receiptService} {
		n.SetEventPublisher(hub)
		n.SetMetrics(promMetrics)
	}

	dashboardService := service.NewDashboardService(
		service.NewRepositoryRecordSource(expenseRepo, paymentRepo),
		service.NewRepositoryDirectory(clientRepo, employeeRepo),
		service.NewReportAggregator(nil),
		promMetrics,
	)

	// Initialize auth middleware
	verifier, err := middleware.NewAuth0Verifier(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token verifier")
	}
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Expense:   handler.NewExpenseHandler(expenseService, receiptService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Client:    handler.NewClientHandler(clientService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		WebSocket: handler.NewWebSocketHandler(hub, verifier, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Request metrics
	e.Use(promMetrics.Middleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Metrics and API docs
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if !cfg.IsProduction() {
		e.GET("/swagger/openapi3.json", handler.OpenAPI3Handler([]handler.Server{
			{URL: "http://localhost:" + cfg.Port + "/api/v1", Description: "Local Development"},
		}))
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("principal_id", middleware.GetPrincipalID(c)).
				Msg("request")

			return nil
		}
	}
}
