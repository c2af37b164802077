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

	"github.com/gin-gonic/gin"

	"gameshelf/database"
	"gameshelf/internal/cache"
	"gameshelf/internal/config"
	"gameshelf/internal/extract"
	"gameshelf/internal/http-api/handler"
	"gameshelf/internal/http-api/middleware"
	"gameshelf/internal/http-api/repository"
	"gameshelf/internal/http-api/service"
	"gameshelf/internal/importer"
	"gameshelf/internal/scrape"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional; a nil cache degrades to pass-through
	catalogCache, err := cache.New(cfg.RedisURL, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
		catalogCache = nil
	}

	// Repositories
	gameRepo := repository.NewGameRepo(db)
	mechanicRepo := repository.NewMechanicRepo(db)
	publisherRepo := repository.NewPublisherRepo(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	importStore := repository.NewImportStore(db)

	// Services
	gameService := service.NewGameService(gameRepo, catalogCache, logger)
	mechanicService := service.NewMechanicService(mechanicRepo)
	publisherService := service.NewPublisherService(publisherRepo)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)

	// Import pipeline
	scrapeClient := scrape.NewClient(cfg.FirecrawlAPIKey,
		scrape.WithBaseURL(cfg.FirecrawlAPIURL),
		scrape.WithHTTPClient(&http.Client{Timeout: cfg.ScrapeTimeout}),
	)
	extractClient := extract.NewClient(cfg.OpenAIAPIKey,
		extract.WithBaseURL(cfg.OpenAIAPIURL),
		extract.WithModel(cfg.OpenAIModel),
		extract.WithHTTPClient(&http.Client{Timeout: cfg.ExtractTimeout}),
		extract.WithCharBudget(cfg.ImportMarkdownBudget),
	)
	pipeline := importer.NewPipeline(scrapeClient, extractClient, importStore, logger)

	// Handlers
	gameHandler := handler.NewGameHandler(gameService)
	importHandler := handler.NewImportHandler(pipeline, catalogCache, logger)
	mechanicHandler := handler.NewMechanicHandler(mechanicService)
	publisherHandler := handler.NewPublisherHandler(publisherService)
	authHandler := handler.NewAuthHandler(authService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	authHandler.RegisterRoutes(authGroup)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	{
		games := api.Group("/games")
		importHandler.RegisterRoutes(games)
		gameHandler.RegisterRoutes(games)

		mechanics := api.Group("/mechanics")
		mechanicHandler.RegisterRoutes(mechanics)

		publishers := api.Group("/publishers")
		publisherHandler.RegisterRoutes(publishers)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
