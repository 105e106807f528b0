package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/jcastell/wellness-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, me)
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
  var req struct {
    Name          *string  `json:"name"`
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
  me, err := uh.userService.UpdateMe(c.Request.Context(), services.UserUpdateInput{
    Name:          req.Name,
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
  RespondOK(c, me)
}

func (uh *UserHandler) ListAll(c *gin.Context) {
  users, err := uh.userService.ListAll(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, users)
}

func (uh *UserHandler) GetByID(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  user, err := uh.userService.GetByID(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, user)
}
