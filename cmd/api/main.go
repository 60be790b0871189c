package main

// @title Alug Storefront API
// @version 1.0
// @description Storefront service for the Alug affiliate marketplace.

// @host localhost:8080
// @BasePath /api/v1

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/alug/config"
	"github.com/jordanlanch/alug/pkg/affiliate"
	"github.com/jordanlanch/alug/pkg/api/handlers"
	custommw "github.com/jordanlanch/alug/pkg/api/middleware"
	"github.com/jordanlanch/alug/pkg/auth"
	"github.com/jordanlanch/alug/pkg/backend"
	"github.com/jordanlanch/alug/pkg/catalog"
	"github.com/jordanlanch/alug/pkg/charts"
	"github.com/jordanlanch/alug/pkg/jobs"
	"github.com/jordanlanch/alug/pkg/legal"
	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/metrics"
	custommiddleware "github.com/jordanlanch/alug/pkg/middleware"
	"github.com/jordanlanch/alug/pkg/payout"
	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize client storage
	dsn := cfg.DatabaseURL
	if cfg.StorageDriver == "redis" {
		dsn = cfg.RedisURL
	}
	store, err := storage.Open(cfg.StorageDriver, dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open client storage: %v", err)
	}
	defer store.Close()
	log.Printf("✅ Client storage ready (driver: %s)", cfg.StorageDriver)

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Affiliate backend client
	backendClient := backend.NewClient(cfg.BackendURL,
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithObserver(prometheusMetrics),
	)
	log.Printf("✅ Backend client configured (%s)", backendClient.BaseURL())

	// Admin password gate
	adminGate, err := auth.NewAdminGate(cfg.AdminPasswordHash, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("❌ Invalid admin password configuration: %v", err)
	}
	if adminGate.Enabled() {
		log.Printf("🔐 Admin password login enabled")
	} else {
		log.Printf("ℹ️  Admin password login disabled (no ADMIN_PASSWORD configured)")
	}

	// Scheduled purge of expired client storage
	var cronManager *jobs.CronManager
	if purger, ok := store.(jobs.Purger); ok {
		cronManager = jobs.NewCronManager(purger, prometheusMetrics, log.Default())
		if err := cronManager.SetupJobs(cfg.StoragePurgeSchedule); err != nil {
			log.Fatalf("❌ Failed to setup cron jobs: %v", err)
		}
		cronManager.Start()
	} else {
		log.Printf("ℹ️  Storage purge not scheduled (driver expires entries itself)")
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Rate limiters
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewPerEndpointRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter.SetEndpointLimit("POST /api/v1/auth/login", 5, 2)
	authRateLimiter.SetEndpointLimit("POST /api/v1/auth/admin", 5, 2)
	authRateLimiter.SetEndpointLimit("POST /api/v1/auth/register", 3, 1)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.DefaultSecurityHeadersConfig()))
	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit("8M")) // base64 of a 5 MiB product image
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Services
	categoryStore := catalog.NewCategoryStore(store, cfg.SessionTTL)
	balanceSnapshots := payout.NewSnapshotStore(store, cfg.SessionTTL)
	legalConfigs := legal.NewConfigStore(store)
	consent := legal.NewConsent(store)
	loader := views.NewLoader(backendClient, categoryStore, balanceSnapshots, cfg.PublicURL, appLogger)
	widgets := charts.NewWidgets(backendClient, appLogger)
	redirector := affiliate.NewRedirector(backendClient, appLogger,
		cfg.RedirectNoDestinationDelay, cfg.RedirectErrorDelay)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(consent)
	authHandler := handlers.NewAuthHandler(backendClient, adminGate, prometheusMetrics)
	viewHandler := handlers.NewViewHandler(loader, prometheusMetrics)
	productHandler := handlers.NewProductHandler(backendClient)
	categoryHandler := handlers.NewCategoryHandler(categoryStore)
	linkHandler := handlers.NewLinkHandler(backendClient, cfg.PublicURL, appLogger, prometheusMetrics)
	payoutHandler := handlers.NewPayoutHandler(backendClient, balanceSnapshots, appLogger, prometheusMetrics)
	chartHandler := handlers.NewChartHandler(widgets)
	legalHandler := handlers.NewLegalHandler(legalConfigs, consent)
	redirectHandler := handlers.NewRedirectHandler(redirector, prometheusMetrics)

	pinger, _ := store.(handlers.Pinger)
	var purges handlers.PurgeReporter
	if cronManager != nil {
		purges = cronManager.GetJanitor()
	}
	healthHandler := handlers.NewHealthHandler(pinger, purges)

	// Public endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Alug Storefront API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})
	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Affiliate links are shared as <public url>/aff/:code
	e.GET("/aff/:code", redirectHandler.Follow)

	// API v1, bound to the browser's client id and session
	v1 := e.Group("/api/v1",
		custommw.ClientID(cfg.ClientCookieName, cfg.ClientCookieSecure),
		custommw.LoadSession(store),
	)
	requireLogin := custommw.RequireLogin()
	requireAdmin := custommw.RequireAdmin()

	v1.GET("/session", sessionHandler.GetSession)

	authRoutes := v1.Group("/auth", authRateLimiter.RateLimitMiddleware())
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.POST("/admin", authHandler.AdminLogin)
	}

	v1.GET("/views/:view", viewHandler.Enter)

	productRoutes := v1.Group("/products")
	{
		productRoutes.GET("", productHandler.ListProducts)
		productRoutes.POST("", productHandler.CreateProduct, requireAdmin)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct, requireAdmin)
	}

	categoryRoutes := v1.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.ListCategories)
		categoryRoutes.POST("", categoryHandler.AddCategory, requireAdmin)
		categoryRoutes.DELETE("/:name", categoryHandler.DeleteCategory, requireAdmin)
	}

	linkRoutes := v1.Group("/links", requireLogin)
	{
		linkRoutes.GET("", linkHandler.ListLinks)
		linkRoutes.POST("", linkHandler.GenerateLink)
	}

	v1.POST("/payouts", payoutHandler.RequestPayout, requireLogin)
	v1.PUT("/admin/payouts/:id", payoutHandler.UpdatePayoutStatus, requireAdmin)

	chartRoutes := v1.Group("/charts", requireLogin)
	{
		chartRoutes.GET("/daily", chartHandler.Daily)
		chartRoutes.GET("/products", chartHandler.Products)
	}

	legalRoutes := v1.Group("/legal")
	{
		legalRoutes.GET("/config", legalHandler.GetConfig, requireAdmin)
		legalRoutes.PUT("/config", legalHandler.SaveConfig, requireAdmin)
		legalRoutes.GET("/:page", legalHandler.Page)
	}

	consentRoutes := v1.Group("/consent")
	{
		consentRoutes.GET("", legalHandler.Consent)
		consentRoutes.POST("/accept", legalHandler.AcceptConsent)
		consentRoutes.POST("/decline", legalHandler.DeclineConsent)
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 Alug storefront API starting on %s", address)
	log.Printf("📝 Log level: %s", cfg.LogLevel)
	log.Printf("🔗 Backend: %s", cfg.BackendURL)
	log.Printf("🌍 CORS: %v", cfg.CORSAllowedOrigins)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d)", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	log.Printf("🔒 Auth endpoints: login (5/min), admin (5/min), register (3/min)")

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if cronManager != nil {
		cronManager.Stop()
		log.Println("✅ Cron jobs stopped")
	}
	globalRateLimiter.Stop()
	authRateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
