package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/jcastell/wellness-backend/internal/services"
)

type GoalHandler struct {
  goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
  return &GoalHandler{goalService: goalService}
}

func parseDeadline(raw *string) (*time.Time, error) {
  if raw == nil || *raw == "" {
    return nil, nil
  }
  deadline, err := time.Parse("2006-01-02", *raw)
  if err != nil {
    return nil, err
  }
  return &deadline, nil
}

func (gh *GoalHandler) Create(c *gin.Context) {
  var req struct {
    GoalType    string  `json:"goal_type" binding:"required"`
    TargetValue float64 `json:"target_value" binding:"required"`
    Deadline    *string `json:"deadline"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  deadline, err := parseDeadline(req.Deadline)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  goal, err := gh.goalService.Create(c.Request.Context(), services.GoalCreateInput{
    GoalType:    req.GoalType,
    TargetValue: req.TargetValue,
    Deadline:    deadline,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, goal)
}

func (gh *GoalHandler) List(c *gin.Context) {
  goals, err := gh.goalService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, goals)
}

func (gh *GoalHandler) Get(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  goal, err := gh.goalService.Get(c.Request.Context(), goalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, goal)
}

func (gh *GoalHandler) Update(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req struct {
    CurrentValue *float64 `json:"current_value"`
    TargetValue  *float64 `json:"target_value"`
    Deadline     *string  `json:"deadline"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  deadline, err := parseDeadline(req.Deadline)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  goal, err := gh.goalService.Update(c.Request.Context(), goalID, services.GoalUpdateInput{
    CurrentValue: req.CurrentValue,
    TargetValue:  req.TargetValue,
    Deadline:     deadline,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, goal)
}

func (gh *GoalHandler) Delete(c *gin.Context) {
  goalID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := gh.goalService.Delete(c.Request.Context(), goalID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}
