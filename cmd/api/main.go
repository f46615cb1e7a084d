package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/config"
	"github.com/tavvy/tavvy-pros-api/internal/cache"
	"github.com/tavvy/tavvy-pros-api/internal/database/postgres"
	"github.com/tavvy/tavvy-pros-api/internal/handlers"
	"github.com/tavvy/tavvy-pros-api/internal/middleware"
	"github.com/tavvy/tavvy-pros-api/internal/repository"
	"github.com/tavvy/tavvy-pros-api/internal/services"
	"github.com/tavvy/tavvy-pros-api/pkg/db"
	"github.com/tavvy/tavvy-pros-api/pkg/httpclient"
	"github.com/tavvy/tavvy-pros-api/pkg/jwt"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
	"github.com/tavvy/tavvy-pros-api/pkg/profiling"
	"github.com/tavvy/tavvy-pros-api/pkg/storage"
	"github.com/tavvy/tavvy-pros-api/pkg/tracing"
)

// registerPublicRoutes registers the unauthenticated catalog and directory API
func registerPublicRoutes(
	group *gin.RouterGroup,
	generalRateLimiter *middleware.RateLimiter,
	catalogHandler *handlers.CatalogHandler,
	directoryHandler *handlers.DirectoryHandler,
) {
	group.GET("/catalog/search", generalRateLimiter.Middleware(), catalogHandler.Search)
	group.GET("/catalog/:providerType", generalRateLimiter.Middleware(), catalogHandler.GetCategories)
	group.GET("/catalog/:providerType/:category", generalRateLimiter.Middleware(), catalogHandler.GetSubcategories)

	group.GET("/pros", generalRateLimiter.Middleware(), directoryHandler.List)
	group.GET("/pros/:slug", generalRateLimiter.Middleware(), directoryHandler.GetBySlug)
}

// registerProRoutes registers authentication and the session-protected
// onboarding wizard
func registerProRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authRateLimiter, onboardingRateLimiter *middleware.RateLimiter,
	proAuthHandler *handlers.ProAuthHandler,
	onboardingHandler *handlers.OnboardingHandler,
	tokenManager *jwt.TokenManager,
) {
	// Without a JWT secret there are no sessions, so the whole pro surface
	// stays off
	if tokenManager == nil {
		logger.Warn("Pro routes disabled: JWT_SECRET not configured")
		return
	}

	sessionRequired := middleware.ProSessionMiddleware(tokenManager, cfg.ProSession.CookieDomain, cfg.ProSession.CookieSecure)

	auth := router.Group("/api/v1/auth/pro")
	auth.POST("/request-login", authRateLimiter.Middleware(), proAuthHandler.RequestLogin)
	auth.POST("/verify", proAuthHandler.VerifyLogin)
	auth.POST("/logout", proAuthHandler.Logout)
	auth.GET("/session", sessionRequired, proAuthHandler.GetSession)

	onboarding := router.Group("/api/v1/pro/onboarding")
	onboarding.Use(sessionRequired)

	onboarding.GET("", onboardingHandler.GetState)
	onboarding.PUT("/state", onboardingRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), onboardingHandler.SaveState)
	onboarding.POST("/next", onboardingRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), onboardingHandler.NextStep)
	onboarding.POST("/prev", onboardingRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), onboardingHandler.PrevStep)
	onboarding.POST("/complete", onboardingRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), onboardingHandler.Complete)
	onboarding.POST("/photos", onboardingRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(15*1024*1024), onboardingHandler.UploadPhoto)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Tavvy Pros API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.OTLPEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	// Continuous profiling (config-gated)
	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Error("Failed to initialize profiler", zap.Error(err))
	} else if stopProfiler != nil {
		defer stopProfiler()
	}

	// PostgreSQL connection pool. Migrations run separately via the migrate
	// command before the app starts.
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	dbClient := postgres.NewClient(pool)

	// Object storage for profile photos
	var storageClient services.StorageClientInterface
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		client, err := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
		storageClient = client
	} else {
		logger.Warn("Photo storage disabled: storage credentials not configured")
	}

	// Repositories
	onboardingRepo := repository.NewOnboardingRepository(dbClient)
	directoryRepo := repository.NewDirectoryRepository(dbClient)

	// Directory cache, warmed synchronously so the container is not marked
	// healthy before it can serve the directory
	directoryCache := cache.NewDirectoryCache(directoryRepo, cfg.Cache.DirectoryTTLSeconds)
	if cfg.Cache.DisableDirectoryCache {
		logger.Warn("Directory cache is DISABLED - reading from database on every request")
	} else {
		if err := directoryCache.Initialize(); err != nil {
			logger.Fatal("Failed to initialize directory cache", zap.Error(err))
		}
	}

	httpClient := httpclient.NewStandardClient()

	// Audit log for onboarding transitions
	var auditLogger *zap.Logger
	if cfg.Logging.Dir != "" {
		auditLogger = logger.NewAuditLogger(cfg.Logging.Dir, "onboarding-audit.log")
	}

	// Services
	crmService := services.NewCRMService(cfg, httpClient)
	onboardingService := services.NewOnboardingService(onboardingRepo, storageClient, crmService, directoryCache, auditLogger, cfg.Server.BaseURL)
	directoryService := services.NewDirectoryService(directoryCache, directoryRepo, cfg.Server.BaseURL)
	proAuthService := services.NewProAuthService(dbClient, cfg, crmService)

	// Handlers
	cacheReadyFunc := directoryCache.IsReady
	if cfg.Cache.DisableDirectoryCache {
		cacheReadyFunc = func() bool { return true }
	}
	dbPingFunc := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return dbClient.Ping(ctx)
	}
	healthHandler := handlers.NewHealthHandler(dbPingFunc, cacheReadyFunc)
	catalogHandler := handlers.NewCatalogHandler()
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	proAuthHandler := handlers.NewProAuthHandler(proAuthService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-internal-pros-api-auth-token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // required for pro session cookies
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(100, 200)  // 100 req/sec, burst of 200
	onboardingRateLimiter := middleware.NewRateLimiter(10, 20) // 10 req/sec, burst of 20
	authRateLimiter := middleware.NewRateLimiter(0.00667, 2)   // 2 req/5min, burst of 2 (login abuse prevention)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.GET("/internal/pros", generalRateLimiter.Middleware(), middleware.InternalAPIAuthMiddleware(cfg.Auth.InternalAPIToken), directoryHandler.Export)

	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1, generalRateLimiter, catalogHandler, directoryHandler)

	registerProRoutes(router, cfg, authRateLimiter, onboardingRateLimiter, proAuthHandler, onboardingHandler, proAuthService.GetTokenManager())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
