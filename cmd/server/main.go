package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tunegraph/backend/internal/cache"
	"github.com/tunegraph/backend/internal/database"
	"github.com/tunegraph/backend/internal/handlers"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/metrics"
	"github.com/tunegraph/backend/internal/seed"
	"github.com/tunegraph/backend/internal/store"
	"github.com/tunegraph/backend/internal/telemetry"
	"github.com/tunegraph/backend/internal/util"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables before anything reads them
	envErr := godotenv.Load()

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FILE")); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	logger.Log.Info("=== Tunegraph server starting ===")
	if envErr != nil {
		logger.Log.Info("No .env file found, using system environment variables")
	}

	metrics.Initialize()

	// Stores are authoritative in memory; the database is an optional mirror
	users := store.NewUserStore()
	catalog := store.NewCatalogStore()

	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_DRIVER") != "" {
		if err := database.Initialize(); err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		if err := database.Migrate(); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
		defer database.Close()

		users.AttachDB(database.DB)
		catalog.AttachDB(database.DB)
		if err := users.Hydrate(); err != nil {
			logger.Log.Fatal("Failed to hydrate user store", zap.Error(err))
		}
		if err := catalog.Hydrate(); err != nil {
			logger.Log.Fatal("Failed to hydrate catalog", zap.Error(err))
		}
	}

	// Load the catalog JSON when configured; seeds or a hydrated database
	// can also provide the catalog, so a missing file is only fatal if the
	// catalog ends up empty.
	musicsPath := getEnvOrDefault("MUSICS_JSON", "musics.json")
	if _, err := os.Stat(musicsPath); err == nil {
		if _, err := seed.LoadCatalogFile(catalog, musicsPath); err != nil {
			logger.Log.Fatal("Failed to load musics file", zap.Error(err))
		}
	} else if catalog.Count() == 0 {
		logger.Log.Warn("No musics file and empty catalog, recommendations will be empty",
			zap.String("path", musicsPath),
		)
	}

	// Optional Redis cache for catalog reads
	var redisClient *cache.RedisClient
	if os.Getenv("REDIS_HOST") != "" {
		rc, err := cache.NewRedisClient(
			os.Getenv("REDIS_HOST"),
			os.Getenv("REDIS_PORT"),
			os.Getenv("REDIS_PASSWORD"),
		)
		if err != nil {
			logger.Log.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		} else {
			redisClient = rc
			defer redisClient.Close()
		}
	}

	// Optional OpenTelemetry tracing. Service name, endpoint and sampling
	// defaults live in the telemetry package.
	samplingPercent := util.ParseInt(getEnvOrDefault("OTEL_SAMPLING_PERCENT", "100"), 100)
	tp, err := telemetry.InitTracer(telemetry.Config{
		Environment:  os.Getenv("ENVIRONMENT"),
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		Enabled:      os.Getenv("OTEL_ENABLED") == "true",
		SamplingRate: float64(samplingPercent) / 100,
	})
	if err != nil {
		logger.Log.Warn("Failed to initialize tracing", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	h := handlers.NewHandlers(users, catalog)
	h.SetCache(redisClient)

	if os.Getenv("ENVIRONMENT") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.MetricsMiddleware())
	r.Use(otelgin.Middleware(telemetry.DefaultServiceName))
	// Prometheus negotiates its own encoding when scraping /metrics
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // Configure properly for production
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "tunegraph-backend",
			"users":     users.Count(),
			"musics":    catalog.Count(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/follow", h.Follow)
		api.POST("/listen", h.Listen)
		api.GET("/recommendations", h.GetRecommendations)

		api.GET("/musics", h.ListMusics)
		api.GET("/musics/:id", h.GetMusic)

		admin := api.Group("/admin")
		{
			admin.POST("/reset", h.ResetUsers)
		}
	}

	port := getEnvOrDefault("PORT", "3000")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
