package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/types"
)

type TrackerInput struct {
  Date        time.Time
  Steps       *int
  Calories    *int
  SleepHours  *float64
  MoodScore   *int
  StressLevel *int
}

type TrackerService interface {
  Create(ctx context.Context, input TrackerInput) (*types.Tracker, error)
  List(ctx context.Context, skip, limit int) ([]*types.Tracker, error)
  Get(ctx context.Context, trackerID uuid.UUID) (*types.Tracker, error)
  Update(ctx context.Context, trackerID uuid.UUID, input TrackerInput) (*types.Tracker, error)
  Delete(ctx context.Context, trackerID uuid.UUID) error
}

type trackerService struct {
  db          *gorm.DB
  log         *logger.Logger
  trackerRepo repos.TrackerRepo
}

func NewTrackerService(db *gorm.DB, log *logger.Logger, trackerRepo repos.TrackerRepo) TrackerService {
  serviceLog := log.With("service", "TrackerService")
  return &trackerService{db: db, log: serviceLog, trackerRepo: trackerRepo}
}

func validateTrackerInput(input TrackerInput) error {
  if input.Date.IsZero() {
    return fmt.Errorf("date is required: %w", ErrValidation)
  }
  if input.MoodScore != nil && (*input.MoodScore < 1 || *input.MoodScore > 10) {
    return fmt.Errorf("mood_score must be between 1 and 10: %w", ErrValidation)
  }
  if input.StressLevel != nil && (*input.StressLevel < 1 || *input.StressLevel > 10) {
    return fmt.Errorf("stress_level must be between 1 and 10: %w", ErrValidation)
  }
  if input.Steps != nil && *input.Steps < 0 {
    return fmt.Errorf("steps must be non-negative: %w", ErrValidation)
  }
  if input.Calories != nil && *input.Calories < 0 {
    return fmt.Errorf("calories must be non-negative: %w", ErrValidation)
  }
  if input.SleepHours != nil && *input.SleepHours < 0 {
    return fmt.Errorf("sleep_hours must be non-negative: %w", ErrValidation)
  }
  return nil
}

func (ts *trackerService) Create(ctx context.Context, input TrackerInput) (*types.Tracker, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if err := validateTrackerInput(input); err != nil {
    return nil, err
  }

  tracker := &types.Tracker{
    ID:          uuid.New(),
    UserID:      userID,
    Date:        input.Date,
    Steps:       input.Steps,
    Calories:    input.Calories,
    SleepHours:  input.SleepHours,
    MoodScore:   input.MoodScore,
    StressLevel: input.StressLevel,
  }

  if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, err := ts.trackerRepo.ExistsForDate(ctx, tx, userID, input.Date)
    if err != nil {
      return fmt.Errorf("failed to check tracker date: %w", err)
    }
    if exists {
      return fmt.Errorf("tracker entry already exists for this date: %w", ErrAlreadyExists)
    }
    return ts.trackerRepo.Create(ctx, tx, tracker)
  }); err != nil {
    return nil, err
  }
  return tracker, nil
}

func (ts *trackerService) List(ctx context.Context, skip, limit int) ([]*types.Tracker, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if skip < 0 {
    skip = 0
  }
  if limit <= 0 {
    limit = 30
  }
  trackers, err := ts.trackerRepo.ListByUser(ctx, nil, userID, skip, limit)
  if err != nil {
    return nil, fmt.Errorf("error listing trackers: %w", err)
  }
  return trackers, nil
}

func (ts *trackerService) Get(ctx context.Context, trackerID uuid.UUID) (*types.Tracker, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  tracker, err := ts.trackerRepo.GetByID(ctx, nil, userID, trackerID)
  if err != nil {
    return nil, fmt.Errorf("error fetching tracker: %w", err)
  }
  if tracker == nil {
    return nil, fmt.Errorf("tracker not found: %w", ErrNotFound)
  }
  return tracker, nil
}

func (ts *trackerService) Update(ctx context.Context, trackerID uuid.UUID, input TrackerInput) (*types.Tracker, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if err := validateTrackerInput(input); err != nil {
    return nil, err
  }

  var out *types.Tracker
  if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    tracker, err := ts.trackerRepo.GetByID(ctx, tx, userID, trackerID)
    if err != nil {
      return fmt.Errorf("error fetching tracker: %w", err)
    }
    if tracker == nil {
      return fmt.Errorf("tracker not found: %w", ErrNotFound)
    }

    tracker.Date = input.Date
    tracker.Steps = input.Steps
    tracker.Calories = input.Calories
    tracker.SleepHours = input.SleepHours
    tracker.MoodScore = input.MoodScore
    tracker.StressLevel = input.StressLevel

    if err := ts.trackerRepo.Update(ctx, tx, tracker); err != nil {
      return fmt.Errorf("failed to update tracker: %w", err)
    }
    out = tracker
    return nil
  }); err != nil {
    return nil, err
  }
  return out, nil
}

func (ts *trackerService) Delete(ctx context.Context, trackerID uuid.UUID) error {
  userID, err := callerID(ctx)
  if err != nil {
    return err
  }
  deleted, err := ts.trackerRepo.Delete(ctx, nil, userID, trackerID)
  if err != nil {
    return fmt.Errorf("failed to delete tracker: %w", err)
  }
  if !deleted {
    return fmt.Errorf("tracker not found: %w", ErrNotFound)
  }
  return nil
}
