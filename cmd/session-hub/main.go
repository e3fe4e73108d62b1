package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-hub/internal/adapter/gateway"
	adapterhandler "session-hub/internal/adapter/handler"
	"session-hub/internal/catalog"
	infracache "session-hub/internal/infrastructure/cache"
	"session-hub/internal/infrastructure/database"
	"session-hub/internal/infrastructure/profilestore"
	infratoken "session-hub/internal/infrastructure/token"
	"session-hub/internal/metrics"
	"session-hub/internal/usecase"

	"session-hub/config"
	appmiddleware "session-hub/middleware"
	"session-hub/utils/logger"
	"session-hub/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"kratos_url", cfg.KratosURL,
		"port", cfg.Port,
		"poll_interval", cfg.SessionPollInterval,
		"cache_ttl", cfg.ProfileCacheTTL)

	// Profile store
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	profiles := profilestore.NewPostgresProfileStore(db)

	// Infrastructure
	profileCache := infracache.NewProfileCache(cfg.ProfileCacheTTL)
	kratosGateway := gateway.NewKratosGateway(gateway.Config{
		BaseURL:      cfg.KratosURL,
		AdminBaseURL: cfg.KratosAdminURL,
		OIDCProvider: cfg.OIDCProvider,
		Timeout:      5 * time.Second,
		PollInterval: cfg.SessionPollInterval,
	}, slog.Default())
	jwtIssuer := infratoken.NewJWTIssuer(infratoken.JWTConfig{
		Secret:   cfg.DashboardTokenSecret,
		Issuer:   cfg.DashboardTokenIssuer,
		Audience: cfg.DashboardTokenAudience,
		TTL:      cfg.DashboardTokenTTL,
	})
	csrfGenerator := infratoken.NewHMACCSRFGenerator(cfg.CSRFSecret)

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Session manager
	manager := usecase.NewSessionManager(kratosGateway, profiles, profileCache, collector, slog.Default())

	// Handlers
	listings := catalog.New()
	authHandler := adapterhandler.NewAuthHandler(manager, cfg.LandingRoute)
	sessionHandler := adapterhandler.NewSessionHandler(manager, jwtIssuer)
	catalogHandler := adapterhandler.NewCatalogHandler(manager, listings)
	csrfHandler := adapterhandler.NewCSRFHandler(manager, csrfGenerator)
	validateHandler := adapterhandler.NewValidateHandler(manager)
	internalHandler := adapterhandler.NewInternalHandler(profiles)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	authRL := appmiddleware.NewRateLimiter(10.0/60.0, 5)      // 10 req/min, auth attempts
	sessionRL := appmiddleware.NewRateLimiter(100.0/60.0, 10) // 100 req/min
	catalogRL := appmiddleware.NewRateLimiter(60.0/60.0, 10)  // 60 req/min
	csrfRL := appmiddleware.NewRateLimiter(10.0/60.0, 3)      // 10 req/min
	internalRL := appmiddleware.NewRateLimiter(10.0/60.0, 3)  // 10 req/min

	// Auth routes
	e.POST("/auth/sign-in", authHandler.HandleSignIn, authRL.Middleware())
	e.POST("/auth/sign-up", authHandler.HandleSignUp, authRL.Middleware())
	e.POST("/auth/google", authHandler.HandleGoogle, authRL.Middleware())
	e.POST("/auth/sign-out", authHandler.HandleSignOut, authRL.Middleware())

	// Session and dashboard routes
	e.GET("/session", sessionHandler.Handle, sessionRL.Middleware())
	e.GET("/validate", validateHandler.Handle, sessionRL.Middleware())
	e.GET("/shifts", catalogHandler.HandleShifts, catalogRL.Middleware())
	e.GET("/candidatures", catalogHandler.HandleCandidatures, catalogRL.Middleware())
	e.POST("/csrf", csrfHandler.Handle, csrfRL.Middleware())
	e.GET("/health", healthHandler.Handle)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))

	// Internal routes (protected by shared secret)
	internalGroup := e.Group("/internal",
		internalRL.Middleware(),
		appmiddleware.InternalAuth(cfg.AuthSharedSecret),
	)
	internalGroup.GET("/profile/:id", internalHandler.HandleProfile)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting session-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Session restore watcher; settles the loading flag and keeps the
		// published slot in sync with the provider.
		return manager.Run(gCtx)
	})

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8888"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
