package handlers

import (
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/jcastell/wellness-backend/internal/services"
)

type AnalyticsHandler struct {
  analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
  return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) WellnessScore(c *gin.Context) {
  score, err := ah.analyticsService.WellnessScore(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, score)
}

func (ah *AnalyticsHandler) Progress(c *gin.Context) {
  days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
  progress, err := ah.analyticsService.Progress(c.Request.Context(), days)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, progress)
}

func (ah *AnalyticsHandler) AdminOverview(c *gin.Context) {
  overview, err := ah.analyticsService.AdminOverview(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, overview)
}
