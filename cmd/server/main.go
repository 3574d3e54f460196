package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/analysis"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/cache"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/config"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/logger"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/repository"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/service"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/rest"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/transport/ws"
	"github.com/Aditya-Prakash14/AI-Interview-API/internal/worker"
)

func main() {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	log := logger.New()
	log.Info("starting interview analysis server")

	cfg := config.Load()
	aiCfg := config.DefaultAIConfig()
	if aiCfg.IsEnabled() {
		log.WithField("scoring_model", aiCfg.Models.Scoring).Info("AI scoring enabled")
	} else {
		log.Warn("AI API key not set, scoring runs on the fallback path")
	}

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithField("error", err.Error()).Fatal("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.WithField("error", err.Error()).Fatal("failed to ping MongoDB")
	}
	log.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisURI
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.WithField("error", err.Error()).Fatal("failed to ping Redis")
	}
	log.Info("connected to Redis")

	// WebSocket hub
	wsHub := ws.NewHub(log.WithModule("ws"))

	// Repositories and caches
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	scoreRepo := repository.NewScoreRepo(db)
	analysisCache := cache.NewAnalysisCache(rdb)

	// Worker pool for background evaluations
	pool := worker.NewPool(
		cfg.WorkerCount,
		cfg.WorkerQueueSize,
		time.Duration(cfg.TaskTimeoutSec)*time.Second,
		log.WithModule("worker"),
	)

	// Services. Gemini constructors return nil when no API key is set; the
	// interfaces must stay nil in that case so the fallback paths kick in.
	var oracle service.Oracle
	if g := service.NewGeminiOracle(aiCfg); g != nil {
		oracle = g
	}
	var narrative service.NarrativeGenerator
	if g := service.NewGeminiNarrative(aiCfg); g != nil {
		narrative = g
	}

	authSvc := service.NewAuthService(cfg.JWTSecret)
	scoringSvc := service.NewScoringService(oracle, log.WithModule("scoring"))
	feedbackSvc := service.NewFeedbackService(narrative, log.WithModule("feedback"))

	responseSvc := service.NewResponseService(service.ResponseServiceDeps{
		Config:      cfg,
		Responses:   responseRepo,
		Questions:   questionRepo,
		Scores:      scoreRepo,
		Cache:       analysisCache,
		Pool:        pool,
		Transcriber: service.NewWhisperClient(aiCfg),
		Scoring:     scoringSvc,
		Feedback:    feedbackSvc,
		Metrics:     analysis.NewMetricsAnalyzer(analysis.DefaultLexicons()),
		Notifier:    wsHub,
		Log:         log.WithModule("response"),
	})

	router := rest.NewRouter(&rest.Container{
		Config:          cfg,
		AuthService:     authSvc,
		ResponseService: responseSvc,
		WSHub:           wsHub,
		Log:             log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Fatal("listen and serve")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Error("server forced to shutdown")
	}

	// Let in-flight evaluations finish before the process exits
	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Warn("worker pool shutdown timed out")
	}

	log.Info("server exited")
}
