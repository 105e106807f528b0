package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/jcastell/wellness-backend/internal/services"
)

type AssistantHandler struct {
  assistantService services.AssistantService
}

func NewAssistantHandler(assistantService services.AssistantService) *AssistantHandler {
  return &AssistantHandler{assistantService: assistantService}
}

func (ah *AssistantHandler) GenerateInsight(c *gin.Context) {
  insight, err := ah.assistantService.GenerateTrendInsight(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"insight": insight})
}

func (ah *AssistantHandler) Chat(c *gin.Context) {
  var req struct {
    Message string `json:"message" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  result, err := ah.assistantService.Chat(c.Request.Context(), req.Message)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}

func (ah *AssistantHandler) ListInsights(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
  insights, err := ah.assistantService.ListInsights(c.Request.Context(), limit)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, insights)
}
