package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-interview-backend/config"
	_ "go-interview-backend/docs" // Important for Swagger
	"go-interview-backend/internal/cache"
	v1 "go-interview-backend/internal/delivery/http/v1"
	"go-interview-backend/internal/evaluation"
	"go-interview-backend/internal/repository/postgres"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/database"
	"go-interview-backend/pkg/email"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
	"go-interview-backend/pkg/security"
	"go-interview-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Interview Practice Backend API
// @version         1.0
// @description     Backend for AI-assisted mock interview practice using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting interview backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and reset codes degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	jdRepo := postgres.NewJobDescriptionRepository(dbPool)
	sessionRepo := postgres.NewSessionRepository(dbPool)
	questionRepo := postgres.NewQuestionRepository(dbPool)
	answerRepo := postgres.NewAnswerRepository(dbPool)
	goalRepo := postgres.NewGoalRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - password reset emails will be unavailable")
	}

	// 7. Register custom validators on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 8. Setup Auth
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	if err != nil {
		logger.Log.Error("Failed to initialize token manager", "error", err)
		os.Exit(1)
	}
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	})

	// 9. Setup AI provider and degraded-mode caches
	provider := evaluation.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
	answerCache := cache.NewAnswerCache()
	resetStore := cache.NewResetCodeStore()

	// 10. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, tokens, resetStore, emailService)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, questionRepo, answerRepo, jdRepo, resumeRepo, userRepo, provider, answerCache)
	goalUC := usecase.NewGoalUsecase(goalRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(sessionRepo, jdRepo, resumeRepo)
	resumeUC := usecase.NewResumeUsecase(resumeRepo)

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		SessionUC:    sessionUC,
		GoalUC:       goalUC,
		AnalyticsUC:  analyticsUC,
		ResumeUC:     resumeUC,
		Tokens:       tokens,
		LoginTracker: loginTracker,
		DB:           dbPool,
		Config:       cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
