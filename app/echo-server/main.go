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

	"ivolexMarket/app/echo-server/metrics"
	"ivolexMarket/app/echo-server/router"
	"ivolexMarket/business/behavior"
	"ivolexMarket/business/catalog"
	sessionService "ivolexMarket/business/session"
	"ivolexMarket/internal/middleware"
	psqlRepo "ivolexMarket/internal/repository/postgres"
	redisRepo "ivolexMarket/internal/repository/redis"
	"ivolexMarket/internal/rest"
	"ivolexMarket/pkg/config"
	"ivolexMarket/pkg/database"
	"ivolexMarket/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Ivolex Recommendation API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := database.InitRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		_ = database.CloseRedis(redisClient)
	}()

	// Init metrics
	metrics.Init()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	eventLogRepo := psqlRepo.NewBehaviorEventRepository(db)
	stateStore := redisRepo.NewStateStore(redisClient)

	// Init service
	engineCfg := behavior.DefaultConfig()
	engineCfg.HistoryLimit = cfg.Engine.HistoryLimit
	engineCfg.PriceBucketLow = cfg.Engine.PriceBucketLow
	engineCfg.PriceBucketMid = cfg.Engine.PriceBucketMid
	engineCfg.CacheSize = cfg.Engine.RecoCacheSize
	engineCfg.SessionMaxAge = time.Duration(cfg.Engine.SessionMaxAgeHrs) * time.Hour

	behaviorService := behavior.NewBehaviorService(productRepo, stateStore, eventLogRepo, engineCfg, nil)
	sessions := sessionService.NewSessionService(stateStore, engineCfg.SessionMaxAge)
	catalogService := catalog.NewCatalogService(productRepo)

	// Init handler
	productHandler := rest.NewProductHandler(catalogService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService, eventLogRepo)
	recoHandler := rest.NewRecommendationHandler(behaviorService)
	searchHandler := rest.NewSearchHandler(behaviorService)
	analyticsHandler := rest.NewAnalyticsHandler(behaviorService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Session-ID"},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session middleware
	sessionRequired := middleware.SessionMiddleware(sessions)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler)
	router.SetBehaviorRoutes(api, behaviorHandler, sessionRequired)
	router.SetRecommendationRoutes(api, recoHandler, sessionRequired)
	router.SetSearchRoutes(api, searchHandler, sessionRequired)
	router.SetAnalyticsRoutes(api, analyticsHandler, sessionRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Best-effort flush of loaded session state; no delivery guarantee.
	behaviorService.Flush(ctx)

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
