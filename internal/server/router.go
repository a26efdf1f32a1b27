package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ecotrace/ecotrace-backend/internal/handlers"
	"github.com/ecotrace/ecotrace-backend/internal/middleware"
	"github.com/ecotrace/ecotrace-backend/internal/utils"
)

type RouterConfig struct {
	ServiceName         string
	TracingEnabled      bool
	AuthMiddleware      *middleware.AuthMiddleware
	HealthcheckHandler  *handlers.HealthcheckHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	ActivityHandler     *handlers.ActivityHandler
	ProfileHandler      *handlers.ProfileHandler
	GoalHandler         *handlers.GoalHandler
	GamificationHandler *handlers.GamificationHandler
	StatsHandler        *handlers.StatsHandler
	InsightHandler      *handlers.InsightHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	origins := strings.Split(utils.GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/api/auth/register", cfg.AuthHandler.Register)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)
	router.POST("/api/auth/refresh", cfg.AuthHandler.Refresh)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/auth/logout", cfg.AuthHandler.Logout)

	api.GET("/users/me", cfg.UserHandler.GetMe)
	api.PUT("/users/me", cfg.UserHandler.UpdateMe)
	api.GET("/users/me/avatar", cfg.UserHandler.GetAvatar)

	api.POST("/activities", cfg.ActivityHandler.Create)
	api.GET("/activities", cfg.ActivityHandler.List)
	api.GET("/activities/:id", cfg.ActivityHandler.Get)
	api.PUT("/activities/:id", cfg.ActivityHandler.Update)
	api.DELETE("/activities/:id", cfg.ActivityHandler.Delete)

	api.GET("/profile", cfg.ProfileHandler.Get)
	api.PUT("/profile", cfg.ProfileHandler.Put)

	api.POST("/goals", cfg.GoalHandler.Create)
	api.GET("/goals", cfg.GoalHandler.List)
	api.PUT("/goals/:id", cfg.GoalHandler.Update)

	api.GET("/gamification/progress", cfg.GamificationHandler.GetProgress)
	api.GET("/gamification/badges", cfg.GamificationHandler.ListBadges)

	api.GET("/stats/breakdown", cfg.StatsHandler.Breakdown)
	api.GET("/stats/weekly", cfg.StatsHandler.Weekly)
	api.GET("/stats/trends", cfg.StatsHandler.Trends)

	api.GET("/insights", cfg.InsightHandler.Get)
	api.POST("/insights/refresh", cfg.InsightHandler.Refresh)
	api.GET("/insights/category/:category", cfg.InsightHandler.GetByCategory)
	api.GET("/insights/:id", cfg.InsightHandler.GetOne)
	api.POST("/insights/:id/dismiss", cfg.InsightHandler.Dismiss)

	return router
}
