package services

import (
  "context"
  "crypto/sha256"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/clients/gemini"
  redisclient "github.com/jcastell/wellness-backend/internal/clients/redis"
  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/types"
)

const (
  trendWindow  = 7
  chatCacheTTL = time.Hour

  startLoggingMessage     = "Start logging daily to receive personalized insights."
  consistentHabitsMessage = "You're maintaining consistent wellness habits!"
  aiNotConfiguredMessage  = "The AI assistant is not configured. Ask your administrator to enable it."

  assistantSystemInstruction = "You are a friendly and professional AI health assistant. " +
    "Always provide answers in a structured, readable plain text format. " +
    "Do not include any Markdown symbols like ** or #. " +
    "Do not use bullet points or code blocks.\n\n" +
    "Structure the response like this:\n" +
    "1. Summary: One short paragraph (2-3 lines) summarizing the answer.\n" +
    "2. Key Details:\n" +
    "   Sleep: 1-3 sentences about sleep.\n" +
    "   Steps: 1-3 sentences about activity/steps.\n" +
    "   Mood: 1-3 sentences about mood.\n" +
    "   Stress: 1-3 sentences about stress.\n" +
    "   General Explanation: 1-3 sentences about overall health context.\n" +
    "3. Recommendation: Short, clear actionable advice.\n\n" +
    "Make headings visually distinct by capitalizing or writing on a separate line. " +
    "Keep the tone supportive, positive, and easy to read."
)

// AIMode is resolved once at startup: either a generation client was
// constructed or the assistant runs degraded.
type AIMode int

const (
  AIModeUnconfigured AIMode = iota
  AIModeConfigured
)

type ChatResult struct {
  Text   string `json:"response"`
  Cached bool   `json:"cached"`
}

type AssistantService interface {
  GenerateTrendInsight(ctx context.Context) (string, error)
  Chat(ctx context.Context, message string) (*ChatResult, error)
  ListInsights(ctx context.Context, limit int) ([]*types.Insight, error)
}

type assistantService struct {
  db          *gorm.DB
  log         *logger.Logger
  trackerRepo repos.TrackerRepo
  insightRepo repos.InsightRepo
  cache       redisclient.Cache
  ai          gemini.Client
  aiMode      AIMode
}

// NewAssistantService wires the pipeline. A nil AI client puts the
// assistant in unconfigured mode; trend insights and insight history
// still work.
func NewAssistantService(db *gorm.DB, log *logger.Logger, trackerRepo repos.TrackerRepo, insightRepo repos.InsightRepo, cache redisclient.Cache, ai gemini.Client) AssistantService {
  serviceLog := log.With("service", "AssistantService")
  aiMode := AIModeUnconfigured
  if ai != nil {
    aiMode = AIModeConfigured
  }
  return &assistantService{
    db:          db,
    log:         serviceLog,
    trackerRepo: trackerRepo,
    insightRepo: insightRepo,
    cache:       cache,
    ai:          ai,
    aiMode:      aiMode,
  }
}

// GenerateTrendInsight compares the latest entry against the rolling
// average of the last 7 logged days and persists the resulting text.
// Missing fields count as 0 toward the averages.
func (s *assistantService) GenerateTrendInsight(ctx context.Context) (string, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return "", err
  }

  trackers, err := s.trackerRepo.ListRecent(ctx, nil, userID, trendWindow)
  if err != nil {
    return "", fmt.Errorf("error fetching recent trackers: %w", err)
  }
  if len(trackers) == 0 {
    return "", fmt.Errorf("no tracker data found, please log your wellness data first: %w", ErrNotFound)
  }

  insightText := startLoggingMessage
  if len(trackers) > 1 {
    insightText = trendText(trackers)
  }

  if err := s.persistInsight(ctx, userID, insightText); err != nil {
    return "", err
  }
  return insightText, nil
}

func trendText(trackers []*types.Tracker) string {
  latest := trackers[0]
  n := float64(len(trackers))

  var sleepSum, stepsSum, stressSum float64
  for _, t := range trackers {
    if t.SleepHours != nil {
      sleepSum += *t.SleepHours
    }
    if t.Steps != nil {
      stepsSum += float64(*t.Steps)
    }
    if t.StressLevel != nil {
      stressSum += float64(*t.StressLevel)
    }
  }
  avgSleep := sleepSum / n
  avgSteps := stepsSum / n
  avgStress := stressSum / n

  latestSleep := 0.0
  if latest.SleepHours != nil {
    latestSleep = *latest.SleepHours
  }
  latestSteps := 0.0
  if latest.Steps != nil {
    latestSteps = float64(*latest.Steps)
  }
  latestStress := 0.0
  if latest.StressLevel != nil {
    latestStress = float64(*latest.StressLevel)
  }
  latestMood := 0
  if latest.MoodScore != nil {
    latestMood = *latest.MoodScore
  }

  var messages []string
  if latestSleep < avgSleep-1 {
    messages = append(messages, fmt.Sprintf("You're sleeping less than your weekly average (%.1f hrs). Try winding down earlier.", avgSleep))
  }
  if latestSteps < avgSteps*0.7 {
    messages = append(messages, "Your steps are lower than usual. Consider taking a light walk today.")
  }
  if latestStress > avgStress+2 {
    messages = append(messages, "Stress levels are higher than your average. Try some breathing exercises.")
  }
  if latestMood < 5 {
    messages = append(messages, "Your mood score seems low. Try a relaxing activity or talk to someone you trust.")
  }

  if len(messages) == 0 {
    return consistentHabitsMessage
  }
  return strings.Join(messages, " ")
}

// Chat answers a free-form question with the user's latest tracker entry
// as context, caching answers per (user, message) for an hour. Cache
// trouble never fails the request; an Unavailable lookup is a miss.
func (s *assistantService) Chat(ctx context.Context, message string) (*ChatResult, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  message = strings.TrimSpace(message)
  if message == "" {
    return nil, fmt.Errorf("message is required: %w", ErrValidation)
  }

  cacheKey := chatCacheKey(userID, message)
  if cached, res := s.cache.Lookup(ctx, cacheKey); res == redisclient.Hit {
    return &ChatResult{Text: cached, Cached: true}, nil
  }

  if s.aiMode != AIModeConfigured {
    return &ChatResult{Text: aiNotConfiguredMessage, Cached: false}, nil
  }

  latest, err := s.trackerRepo.Latest(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("error fetching latest tracker: %w", err)
  }

  prompt := trackerContext(latest) + "\n\nUser question: " + message
  answer, err := s.ai.GenerateText(ctx, assistantSystemInstruction, prompt)
  if err != nil {
    s.log.Warn("AI generation failed", "error", err)
    return nil, fmt.Errorf("error communicating with AI assistant: %v: %w", err, ErrAIService)
  }

  record := fmt.Sprintf("Q: %s\nA: %s", message, answer)
  if err := s.persistInsight(ctx, userID, record); err != nil {
    return nil, err
  }

  if err := s.cache.Store(ctx, cacheKey, answer, chatCacheTTL); err != nil {
    s.log.Warn("Failed to cache assistant answer", "key", cacheKey, "error", err)
  }

  return &ChatResult{Text: answer, Cached: false}, nil
}

func (s *assistantService) ListInsights(ctx context.Context, limit int) ([]*types.Insight, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if limit <= 0 {
    limit = 10
  }
  insights, err := s.insightRepo.ListByUser(ctx, nil, userID, limit)
  if err != nil {
    return nil, fmt.Errorf("error listing insights: %w", err)
  }
  return insights, nil
}

func (s *assistantService) persistInsight(ctx context.Context, userID uuid.UUID, text string) error {
  insight := &types.Insight{
    ID:          uuid.New(),
    UserID:      userID,
    InsightText: text,
    GeneratedAt: time.Now().UTC(),
  }
  if err := s.insightRepo.Create(ctx, nil, insight); err != nil {
    return fmt.Errorf("failed to persist insight: %w", err)
  }
  return nil
}

// chatCacheKey hashes the full message content, so only byte-identical
// questions share a cache slot.
func chatCacheKey(userID uuid.UUID, message string) string {
  sum := sha256.Sum256([]byte(message))
  return fmt.Sprintf("ai:chat:%s:%x", userID, sum)
}

// trackerContext renders the latest entry for the prompt, marking absent
// fields explicitly so the model does not invent values.
func trackerContext(latest *types.Tracker) string {
  if latest == nil {
    return "User's recent health data: none logged yet."
  }
  var sb strings.Builder
  sb.WriteString("User's recent health data:\n")
  sb.WriteString(fmt.Sprintf("- Sleep: %s hrs\n", fmtFloatField(latest.SleepHours)))
  sb.WriteString(fmt.Sprintf("- Steps: %s\n", fmtIntField(latest.Steps)))
  sb.WriteString(fmt.Sprintf("- Calories: %s\n", fmtIntField(latest.Calories)))
  sb.WriteString(fmt.Sprintf("- Mood: %s/10\n", fmtIntField(latest.MoodScore)))
  sb.WriteString(fmt.Sprintf("- Stress: %s/10\n", fmtIntField(latest.StressLevel)))
  return sb.String()
}

func fmtIntField(v *int) string {
  if v == nil {
    return "N/A"
  }
  return fmt.Sprintf("%d", *v)
}

func fmtFloatField(v *float64) string {
  if v == nil {
    return "N/A"
  }
  return fmt.Sprintf("%g", *v)
}
