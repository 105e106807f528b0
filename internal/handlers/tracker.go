package handlers

import (
  "net/http"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/jcastell/wellness-backend/internal/services"
)

type TrackerHandler struct {
  trackerService services.TrackerService
}

func NewTrackerHandler(trackerService services.TrackerService) *TrackerHandler {
  return &TrackerHandler{trackerService: trackerService}
}

type trackerRequest struct {
  Date        string   `json:"date" binding:"required"`
  Steps       *int     `json:"steps"`
  Calories    *int     `json:"calories"`
  SleepHours  *float64 `json:"sleep_hours"`
  MoodScore   *int     `json:"mood_score"`
  StressLevel *int     `json:"stress_level"`
}

func (r trackerRequest) toInput() (services.TrackerInput, error) {
  date, err := time.Parse("2006-01-02", r.Date)
  if err != nil {
    return services.TrackerInput{}, err
  }
  return services.TrackerInput{
    Date:        date,
    Steps:       r.Steps,
    Calories:    r.Calories,
    SleepHours:  r.SleepHours,
    MoodScore:   r.MoodScore,
    StressLevel: r.StressLevel,
  }, nil
}

func (th *TrackerHandler) Create(c *gin.Context) {
  var req trackerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  input, err := req.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  tracker, err := th.trackerService.Create(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, tracker)
}

func (th *TrackerHandler) List(c *gin.Context) {
  skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
  trackers, err := th.trackerService.List(c.Request.Context(), skip, limit)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, trackers)
}

func (th *TrackerHandler) Get(c *gin.Context) {
  trackerID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  tracker, err := th.trackerService.Get(c.Request.Context(), trackerID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, tracker)
}

func (th *TrackerHandler) Update(c *gin.Context) {
  trackerID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req trackerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  input, err := req.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  tracker, err := th.trackerService.Update(c.Request.Context(), trackerID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, tracker)
}

func (th *TrackerHandler) Delete(c *gin.Context) {
  trackerID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := th.trackerService.Delete(c.Request.Context(), trackerID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}
