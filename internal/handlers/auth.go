package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/jcastell/wellness-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email         string   `json:"email" binding:"required"`
    Name          string   `json:"name" binding:"required"`
    Password      string   `json:"password" binding:"required"`
    Age           *int     `json:"age"`
    Gender        *string  `json:"gender"`
    Height        *float64 `json:"height"`
    Weight        *float64 `json:"weight"`
    ActivityLevel *string  `json:"activity_level"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
    Email:         req.Email,
    Name:          req.Name,
    Password:      req.Password,
    Age:           req.Age,
    Gender:        req.Gender,
    Height:        req.Height,
    Weight:        req.Weight,
    ActivityLevel: req.ActivityLevel,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, user)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email" binding:"required"`
    Password string `json:"password" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  accessToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  expiresIn := int(ah.authService.AccessTTL().Seconds())
  RespondOK(c, gin.H{
    "access_token": accessToken,
    "token_type":   "bearer",
    "expires_in":   expiresIn,
  })
}
