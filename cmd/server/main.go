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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/cache"
	"ai-interview-coach-backend/internal/config"
	"ai-interview-coach-backend/internal/llm"
	"ai-interview-coach-backend/internal/repository"
	"ai-interview-coach-backend/internal/service"
	"ai-interview-coach-backend/internal/transport/rest"
	"ai-interview-coach-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zlog := logger.New(cfg.Log.Level)
	defer zlog.Sync()

	zlog.Info("AI config",
		zap.String("question_model", cfg.AI.Models.Question),
		zap.String("eval_model", cfg.AI.Models.Eval),
		zap.String("summary_model", cfg.AI.Models.Summary),
		zap.Bool("enabled", cfg.AI.IsEnabled()))
	if !cfg.AI.IsEnabled() {
		zlog.Warn("GEMINI_API_KEY not set, AI calls will return fallback responses")
	}

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		zlog.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	zlog.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zlog.Fatal("Failed to ping Redis", zap.Error(err))
	}
	zlog.Info("Connected to Redis", zap.String("address", cfg.Redis.Address))

	// Initialize repositories and cache
	interviewRepo := repository.NewInterviewRepository(mongoClient, cfg.Mongo.Database)
	userRepo := repository.NewUserRepository(mongoClient, cfg.Mongo.Database)
	interviewCache := cache.NewInterviewCache(rdb)

	// Initialize services
	gemini := llm.NewGeminiClient(cfg.AI, zlog)
	questionSvc := service.NewQuestionService(gemini, cfg.AI.Models, zlog)
	evaluationSvc := service.NewEvaluationService(gemini, cfg.AI.Models, zlog)
	summarySvc := service.NewSummaryService(gemini, cfg.AI.Models, zlog)
	interviewSvc := service.NewInterviewService(interviewRepo, interviewCache, questionSvc, evaluationSvc, summarySvc, zlog)
	userSvc := service.NewUserService(userRepo, zlog)
	authSvc := service.NewAuthService(cfg.Auth.JWTSecret)

	router := rest.NewRouter(&rest.Container{
		Logger:         zlog,
		AuthService:    authSvc,
		InterviewSvc:   interviewSvc,
		UserSvc:        userSvc,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// End-of-interview feedback generation is the slow path, keep the
		// write timeout above the summary model timeout.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}
