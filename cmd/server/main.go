package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"gameforge-server/internal/config"
	"gameforge-server/internal/database"
	"gameforge-server/internal/generation"
	"gameforge-server/internal/handler"
	"gameforge-server/internal/logger"
	"gameforge-server/internal/repository"
	"gameforge-server/internal/service"
)

func main() {
	// .env is optional; production relies on real environment variables.
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()
	log.Info("Connected to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	if err := database.ApplyMigrations(cfg.GetDSN()); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	log.Info("Database migrations applied")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Repositories
	userRepo := repository.NewPgUserRepository(pool, log)
	conceptRepo := repository.NewPgConceptRepository(pool, log)
	imageRepo := repository.NewPgImageRepository(pool, log)
	favoriteRepo := repository.NewPgFavoriteRepository(pool, log)
	usageRepo := repository.NewPgUsageRepository(pool, log)
	tokenRepo := repository.NewRedisTokenRepository(redisClient, log)

	// Generation pipeline
	textGen, err := generation.NewTextGenerator(cfg, log)
	if err != nil {
		return fmt.Errorf("text generator setup failed: %w", err)
	}
	imageGen := generation.NewImageGenerator(cfg, log)
	gen := generation.NewGenerator(textGen, imageGen, cfg.AIPromptBudget, log)

	// Services
	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	quotaService := service.NewQuotaService(usageRepo, cfg.DailyGenerationLimit, log)
	conceptService := service.NewConceptService(conceptRepo, imageRepo, quotaService, gen, cfg.ImageTimeout, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, conceptService, log)

	h := handler.NewHandler(authService, conceptService, favoriteService, quotaService, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
