package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/ai"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/routes"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/review"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/rsvp"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/task"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/venue"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/infrastructure/cache"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/infrastructure/persistence/postgres/connection"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/infrastructure/persistence/postgres/migrations"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/infrastructure/scheduler"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/config"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/logger"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLoggerWithLevel(cfg.Logging.Level)
	defer log.Sync()

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis backs the rate limiter only; the API stays up without it.
	var limiter auth.RateLimiter
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		limiter = auth.NoopRateLimiter{}
	} else {
		defer redisClient.Close()
		limiter = auth.NewRedisRateLimiter(redisClient, time.Minute, 30)
	}

	jwtService := auth.NewJWTService(cfg)

	// Repositories
	userRepo := user.NewRepository(db.DB)
	venueRepo := venue.NewRepository(db.DB)
	eventRepo := event.NewRepository(db.DB)
	rsvpRepo := rsvp.NewRepository(db.DB)
	reviewRepo := review.NewRepository(db.DB)
	taskRepo := task.NewRepository(db.DB)

	// Services
	userService := user.NewService(userRepo, jwtService, log.Logger)
	venueService := venue.NewService(venueRepo, log.Logger)
	eventService := event.NewService(eventRepo, venueService, log.Logger)
	rsvpService := rsvp.NewService(rsvpRepo, eventRepo, log.Logger)
	reviewService := review.NewService(reviewRepo, log.Logger)
	taskService := task.NewService(taskRepo, log.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	venueHandler := handlers.NewVenueHandler(venueService)
	eventHandler := handlers.NewEventHandler(eventService, rsvpService, reviewService)
	taskHandler := handlers.NewTaskHandler(taskService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupHealthRoutes(router)
	routes.NewAuthRoutes(authHandler, jwtService, limiter).RegisterRoutes(router)
	routes.NewVenueRoutes(venueHandler, jwtService).RegisterRoutes(router)
	routes.NewEventRoutes(eventHandler, jwtService).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, jwtService).RegisterRoutes(router)

	// The assistant is optional: without a provider key its routes are absent.
	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		log.Warn("Assistant disabled", zap.Error(err))
	} else {
		aiHandler := handlers.NewAIHandler(ai.NewService(provider, log.Logger))
		routes.NewAIRoutes(aiHandler, jwtService, limiter).RegisterRoutes(router)
		log.Info("Assistant enabled", zap.String("provider", provider.Name()))
	}

	var sweep *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sweep = scheduler.NewScheduler(eventRepo, cfg.Scheduler, log.Logger)
		sweep.Start()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if sweep != nil {
		sweep.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
