package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oakmoss/platon/internal/config"
	"github.com/oakmoss/platon/internal/repository"
	"github.com/oakmoss/platon/internal/syntactic"
)

func SetupRoutes(
	cfg *config.Config,
	engine *syntactic.Engine,
	reportsRepo *repository.ReportsRepository,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	handler := NewHandler(cfg, engine, reportsRepo, redisClient)

	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	router.Use(ErrorHandlerMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)

	// API routes (with auth and rate limiting)
	api := router.Group("/api/v1")
	api.Use(JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		api.GET("/config", handler.Config)
		api.POST("/detect", handler.Detect)
		api.POST("/detect-batch", handler.DetectBatch)
		api.GET("/report/:id", handler.Report)
	}

	return router
}
