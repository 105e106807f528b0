package server

import (
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/jcastell/wellness-backend/internal/handlers"
  "github.com/jcastell/wellness-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler      *handlers.AuthHandler
  AuthMiddleware   *middleware.AuthMiddleware
  UserHandler      *handlers.UserHandler
  TrackerHandler   *handlers.TrackerHandler
  GoalHandler      *handlers.GoalHandler
  AnalyticsHandler *handlers.AnalyticsHandler
  AssistantHandler *handlers.AssistantHandler
  AllowOrigins     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  corsCfg := cors.Config{
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }
  if cfg.AllowOrigins == "" || cfg.AllowOrigins == "*" {
    corsCfg.AllowAllOrigins = true
    corsCfg.AllowCredentials = false
  } else {
    corsCfg.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
  }
  router.Use(cors.New(corsCfg))

  // Public
  router.GET("/", handlers.Root)
  router.GET("/healthcheck", handlers.HealthCheck)
  auth := router.Group("/auth")
  {
    auth.POST("/register", cfg.AuthHandler.Register)
    auth.POST("/login", cfg.AuthHandler.Login)
  }

  // Protected
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Users
  protected.GET("/users/me", cfg.UserHandler.GetMe)
  protected.PUT("/users/me", cfg.UserHandler.UpdateMe)
  // Trackers
  protected.POST("/trackers", cfg.TrackerHandler.Create)
  protected.GET("/trackers", cfg.TrackerHandler.List)
  protected.GET("/trackers/:id", cfg.TrackerHandler.Get)
  protected.PUT("/trackers/:id", cfg.TrackerHandler.Update)
  protected.DELETE("/trackers/:id", cfg.TrackerHandler.Delete)
  // Goals
  protected.POST("/goals", cfg.GoalHandler.Create)
  protected.GET("/goals", cfg.GoalHandler.List)
  protected.GET("/goals/:id", cfg.GoalHandler.Get)
  protected.PUT("/goals/:id", cfg.GoalHandler.Update)
  protected.DELETE("/goals/:id", cfg.GoalHandler.Delete)
  // Analytics
  protected.GET("/analytics/wellness-score", cfg.AnalyticsHandler.WellnessScore)
  protected.GET("/analytics/progress", cfg.AnalyticsHandler.Progress)
  // AI assistant
  protected.POST("/ai/insight", cfg.AssistantHandler.GenerateInsight)
  protected.POST("/ai/assistant", cfg.AssistantHandler.Chat)
  protected.GET("/ai/insights", cfg.AssistantHandler.ListInsights)

  // Admin
  admin := router.Group("/")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  admin.GET("/users", cfg.UserHandler.ListAll)
  admin.GET("/users/:id", cfg.UserHandler.GetByID)
  admin.GET("/analytics/admin/all-users", cfg.AnalyticsHandler.AdminOverview)

  return router
}
