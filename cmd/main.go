package main

import (
  "fmt"
  "os"
  "time"

  "github.com/joho/godotenv"

  "github.com/jcastell/wellness-backend/internal/clients/gemini"
  redisclient "github.com/jcastell/wellness-backend/internal/clients/redis"
  "github.com/jcastell/wellness-backend/internal/db"
  "github.com/jcastell/wellness-backend/internal/handlers"
  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/middleware"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/server"
  "github.com/jcastell/wellness-backend/internal/services"
  "github.com/jcastell/wellness-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  if err := godotenv.Load(); err != nil {
    log.Debug("No .env file found, relying on environment")
  }
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 1800, log)
  redisAddr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
  allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "*", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err := postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up repos...")
  userRepo := repos.NewUserRepo(thePG, log)
  trackerRepo := repos.NewTrackerRepo(thePG, log)
  goalRepo := repos.NewGoalRepo(thePG, log)
  insightRepo := repos.NewInsightRepo(thePG, log)

  // External clients
  log.Info("Setting up external clients...")
  cache, err := redisclient.NewCache(log, redisAddr)
  if err != nil {
    log.Warn("Redis unavailable, caching disabled", "error", err)
    cache = redisclient.NewDisabledCache()
  }
  aiClient, err := gemini.NewClient(log)
  if err != nil {
    log.Warn("AI assistant disabled", "error", err)
    aiClient = nil
  }

  // Services
  log.Info("Setting up services...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  trackerService := services.NewTrackerService(thePG, log, trackerRepo)
  goalService := services.NewGoalService(thePG, log, goalRepo)
  analyticsService := services.NewAnalyticsService(thePG, log, trackerRepo, userRepo, cache)
  assistantService := services.NewAssistantService(thePG, log, trackerRepo, insightRepo, cache, aiClient)

  // Handlers
  log.Info("Setting up handlers...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  trackerHandler := handlers.NewTrackerHandler(trackerService)
  goalHandler := handlers.NewGoalHandler(goalService)
  analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
  assistantHandler := handlers.NewAssistantHandler(assistantService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    UserHandler:      userHandler,
    TrackerHandler:   trackerHandler,
    GoalHandler:      goalHandler,
    AnalyticsHandler: analyticsHandler,
    AssistantHandler: assistantHandler,
    AllowOrigins:     allowOrigins,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
