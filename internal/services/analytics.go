package services

import (
  "context"
  "encoding/json"
  "fmt"
  "math"
  "time"

  "gorm.io/gorm"

  redisclient "github.com/jcastell/wellness-backend/internal/clients/redis"
  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/types"
)

const (
  progressCacheTTL  = 5 * time.Minute
  adminOverviewKey  = "analytics:admin:all_users"
)

type DailyEntry struct {
  Date        string  `json:"date"`
  SleepHours  float64 `json:"sleep_hours"`
  Steps       int     `json:"steps"`
  Calories    int     `json:"calories"`
  MoodScore   int     `json:"mood_score"`
  StressLevel int     `json:"stress_level"`
}

type ProgressAverages struct {
  SleepHours  float64 `json:"sleep_hours"`
  Steps       float64 `json:"steps"`
  Calories    float64 `json:"calories"`
  MoodScore   float64 `json:"mood_score"`
  StressLevel float64 `json:"stress_level"`
}

type ProgressData struct {
  DailyData []DailyEntry     `json:"daily_data"`
  Averages  ProgressAverages `json:"averages"`
}

type ProgressResult struct {
  Data   ProgressData `json:"data"`
  Cached bool         `json:"cached"`
}

type UserOverview struct {
  UserID       string   `json:"user_id"`
  Name         string   `json:"name"`
  Email        string   `json:"email"`
  TotalEntries int64    `json:"total_entries"`
  LastLogged   *string  `json:"last_logged"`
  AvgSleep     float64  `json:"avg_sleep"`
  AvgSteps     float64  `json:"avg_steps"`
  AvgMood      float64  `json:"avg_mood"`
}

type AdminOverviewResult struct {
  Data   []UserOverview `json:"data"`
  Cached bool           `json:"cached"`
}

type AnalyticsService interface {
  WellnessScore(ctx context.Context) (*types.WellnessScore, error)
  Progress(ctx context.Context, days int) (*ProgressResult, error)
  AdminOverview(ctx context.Context) (*AdminOverviewResult, error)
}

type analyticsService struct {
  db          *gorm.DB
  log         *logger.Logger
  trackerRepo repos.TrackerRepo
  userRepo    repos.UserRepo
  cache       redisclient.Cache
}

func NewAnalyticsService(db *gorm.DB, log *logger.Logger, trackerRepo repos.TrackerRepo, userRepo repos.UserRepo, cache redisclient.Cache) AnalyticsService {
  serviceLog := log.With("service", "AnalyticsService")
  return &analyticsService{
    db:          db,
    log:         serviceLog,
    trackerRepo: trackerRepo,
    userRepo:    userRepo,
    cache:       cache,
  }
}

func round2(v float64) float64 {
  return math.Round(v*100) / 100
}

// WellnessScore scores the caller's latest tracker entry. Missing fields
// fall back to sleep=7, steps=5000, calories=2000, stress=5 before the
// engine runs.
func (s *analyticsService) WellnessScore(ctx context.Context) (*types.WellnessScore, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }

  latest, err := s.trackerRepo.Latest(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("error fetching latest tracker: %w", err)
  }
  if latest == nil {
    return nil, fmt.Errorf("no tracker data found, please log your wellness data first: %w", ErrNotFound)
  }

  sleepHours := 7.0
  if latest.SleepHours != nil {
    sleepHours = *latest.SleepHours
  }
  steps := 5000
  if latest.Steps != nil {
    steps = *latest.Steps
  }
  calories := 2000
  if latest.Calories != nil {
    calories = *latest.Calories
  }
  stressLevel := 5
  if latest.StressLevel != nil {
    stressLevel = *latest.StressLevel
  }

  score := CalculateWellnessScore(sleepHours, steps, calories, stressLevel)
  recommendations := GenerateRecommendations(sleepHours, steps, calories, stressLevel, score)

  return &types.WellnessScore{
    Score:           round2(score),
    Recommendations: recommendations,
  }, nil
}

func (s *analyticsService) Progress(ctx context.Context, days int) (*ProgressResult, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if days <= 0 {
    days = 30
  }

  cacheKey := fmt.Sprintf("analytics:progress:%s:%d", userID, days)
  if cached, res := s.cache.Lookup(ctx, cacheKey); res == redisclient.Hit {
    var data ProgressData
    if err := json.Unmarshal([]byte(cached), &data); err == nil {
      return &ProgressResult{Data: data, Cached: true}, nil
    }
    s.log.Warn("Discarding unparseable progress cache entry", "key", cacheKey)
  }

  since := time.Now().UTC().AddDate(0, 0, -days)
  trackers, err := s.trackerRepo.ListSince(ctx, nil, userID, since)
  if err != nil {
    return nil, fmt.Errorf("error listing trackers: %w", err)
  }

  data := ProgressData{DailyData: []DailyEntry{}}
  var sleepSum, moodSum, stressSum float64
  var stepsSum, caloriesSum int
  for _, t := range trackers {
    entry := DailyEntry{Date: t.Date.Format("2006-01-02")}
    if t.SleepHours != nil {
      entry.SleepHours = *t.SleepHours
    }
    if t.Steps != nil {
      entry.Steps = *t.Steps
    }
    if t.Calories != nil {
      entry.Calories = *t.Calories
    }
    if t.MoodScore != nil {
      entry.MoodScore = *t.MoodScore
    }
    if t.StressLevel != nil {
      entry.StressLevel = *t.StressLevel
    }
    data.DailyData = append(data.DailyData, entry)

    sleepSum += entry.SleepHours
    stepsSum += entry.Steps
    caloriesSum += entry.Calories
    moodSum += float64(entry.MoodScore)
    stressSum += float64(entry.StressLevel)
  }

  if count := len(trackers); count > 0 {
    n := float64(count)
    data.Averages = ProgressAverages{
      SleepHours:  round2(sleepSum / n),
      Steps:       math.Round(float64(stepsSum) / n),
      Calories:    math.Round(float64(caloriesSum) / n),
      MoodScore:   round2(moodSum / n),
      StressLevel: round2(stressSum / n),
    }
  }

  if raw, err := json.Marshal(data); err == nil {
    if err := s.cache.Store(ctx, cacheKey, string(raw), progressCacheTTL); err != nil {
      s.log.Warn("Failed to cache progress data", "key", cacheKey, "error", err)
    }
  }

  return &ProgressResult{Data: data, Cached: false}, nil
}

func (s *analyticsService) AdminOverview(ctx context.Context) (*AdminOverviewResult, error) {
  if cached, res := s.cache.Lookup(ctx, adminOverviewKey); res == redisclient.Hit {
    var data []UserOverview
    if err := json.Unmarshal([]byte(cached), &data); err == nil {
      return &AdminOverviewResult{Data: data, Cached: true}, nil
    }
    s.log.Warn("Discarding unparseable admin overview cache entry")
  }

  users, err := s.userRepo.ListAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("error listing users: %w", err)
  }

  overview := make([]UserOverview, 0, len(users))
  for _, user := range users {
    agg, err := s.trackerRepo.Aggregates(ctx, nil, user.ID)
    if err != nil {
      return nil, fmt.Errorf("error aggregating trackers for user %s: %w", user.ID, err)
    }
    row := UserOverview{
      UserID:       user.ID.String(),
      Name:         user.Name,
      Email:        user.Email,
      TotalEntries: agg.TotalEntries,
    }
    if agg.LastDate != nil {
      formatted := agg.LastDate.Format("2006-01-02")
      row.LastLogged = &formatted
    }
    if agg.AvgSleep != nil {
      row.AvgSleep = round2(*agg.AvgSleep)
    }
    if agg.AvgSteps != nil {
      row.AvgSteps = math.Round(*agg.AvgSteps)
    }
    if agg.AvgMood != nil {
      row.AvgMood = round2(*agg.AvgMood)
    }
    overview = append(overview, row)
  }

  if raw, err := json.Marshal(overview); err == nil {
    if err := s.cache.Store(ctx, adminOverviewKey, string(raw), progressCacheTTL); err != nil {
      s.log.Warn("Failed to cache admin overview", "error", err)
    }
  }

  return &AdminOverviewResult{Data: overview, Cached: false}, nil
}
