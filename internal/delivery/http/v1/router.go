package v1

import (
	"net/http"
	"time"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/redis"
	"go-interview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	SessionUC    domain.SessionUsecase
	GoalUC       domain.GoalUsecase
	AnalyticsUC  domain.AnalyticsUsecase
	ResumeUC     domain.ResumeUsecase
	Tokens       *auth.TokenManager
	LoginTracker *security.LoginTracker
	DB           *pgxpool.Pool
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Database unreachable", nil)
			return
		}
		status := gin.H{"database": "ok", "redis": "unavailable"}
		if redis.IsAvailable() {
			status["redis"] = "ok"
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Stricter limits on the public auth endpoints
	authLimited := v1.Group("")
	authLimited.Use(middleware.StrictRateLimitMiddleware())

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC, deps.LoginTracker)
		NewSessionHandler(protected, deps.SessionUC,
			middleware.RateLimitMiddleware(middleware.SessionCreateRateLimitConfig()))
		NewGoalHandler(protected, deps.GoalUC)
		NewAnalyticsHandler(protected, deps.AnalyticsUC)
		NewResumeHandler(protected, deps.ResumeUC)
	}

	return r
}
