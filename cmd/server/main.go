package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Mreoch1/tradesync/internal/api"
	"github.com/Mreoch1/tradesync/internal/api/handlers"
	"github.com/Mreoch1/tradesync/internal/api/middleware"
	"github.com/Mreoch1/tradesync/internal/providers/yahoo"
	"github.com/Mreoch1/tradesync/internal/services"
	"github.com/Mreoch1/tradesync/pkg/config"
	"github.com/Mreoch1/tradesync/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize provider client and resolvers
	providerClient := yahoo.NewClient(yahoo.ClientOptions{
		BaseURL:          cfg.ProviderBaseURL,
		Timeout:          cfg.ProviderTimeout,
		RateLimit:        cfg.ProviderRateLimit,
		MaxRetries:       cfg.ProviderRetries,
		BreakerThreshold: cfg.CircuitBreakerThreshold,
	}, log)
	taxonomy := yahoo.NewTaxonomyResolver(providerClient, log)
	seasons := yahoo.NewSeasonResolver(providerClient, log)

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	attacher := services.NewStatsAttacher(providerClient, cfg.StatsBatchConcurrency, log)
	syncService := services.NewSyncService(
		providerClient,
		taxonomy,
		seasons,
		attacher,
		cacheService,
		time.Duration(cfg.SyncCacheTTL)*time.Second,
		log,
	)

	// Background resync is opt-in
	var scheduler *services.ResyncScheduler
	if cfg.EnableBackgroundSync {
		interval, err := time.ParseDuration(cfg.ResyncInterval)
		if err != nil {
			log.Warnf("Invalid resync interval, using default 1h: %v", err)
			interval = time.Hour
		}
		scheduler = services.NewResyncScheduler(syncService, interval, log)
		if err := scheduler.Start(); err != nil {
			log.Errorf("Failed to start resync scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, log, syncService, scheduler)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
