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

type GoalCreateInput struct {
  GoalType    string
  TargetValue float64
  Deadline    *time.Time
}

type GoalUpdateInput struct {
  CurrentValue *float64
  TargetValue  *float64
  Deadline     *time.Time
}

type GoalService interface {
  Create(ctx context.Context, input GoalCreateInput) (*types.Goal, error)
  List(ctx context.Context) ([]*types.Goal, error)
  Get(ctx context.Context, goalID uuid.UUID) (*types.Goal, error)
  Update(ctx context.Context, goalID uuid.UUID, input GoalUpdateInput) (*types.Goal, error)
  Delete(ctx context.Context, goalID uuid.UUID) error
}

type goalService struct {
  db       *gorm.DB
  log      *logger.Logger
  goalRepo repos.GoalRepo
}

func NewGoalService(db *gorm.DB, log *logger.Logger, goalRepo repos.GoalRepo) GoalService {
  serviceLog := log.With("service", "GoalService")
  return &goalService{db: db, log: serviceLog, goalRepo: goalRepo}
}

func (gs *goalService) Create(ctx context.Context, input GoalCreateInput) (*types.Goal, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  if input.GoalType == "" {
    return nil, fmt.Errorf("goal_type is required: %w", ErrValidation)
  }

  goal := &types.Goal{
    ID:          uuid.New(),
    UserID:      userID,
    GoalType:    input.GoalType,
    TargetValue: input.TargetValue,
    Deadline:    input.Deadline,
  }
  if err := gs.goalRepo.Create(ctx, nil, goal); err != nil {
    return nil, fmt.Errorf("failed to create goal: %w", err)
  }
  return goal, nil
}

func (gs *goalService) List(ctx context.Context) ([]*types.Goal, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  goals, err := gs.goalRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("error listing goals: %w", err)
  }
  return goals, nil
}

func (gs *goalService) Get(ctx context.Context, goalID uuid.UUID) (*types.Goal, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  goal, err := gs.goalRepo.GetByID(ctx, nil, userID, goalID)
  if err != nil {
    return nil, fmt.Errorf("error fetching goal: %w", err)
  }
  if goal == nil {
    return nil, fmt.Errorf("goal not found: %w", ErrNotFound)
  }
  return goal, nil
}

func (gs *goalService) Update(ctx context.Context, goalID uuid.UUID, input GoalUpdateInput) (*types.Goal, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }

  var out *types.Goal
  if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    goal, err := gs.goalRepo.GetByID(ctx, tx, userID, goalID)
    if err != nil {
      return fmt.Errorf("error fetching goal: %w", err)
    }
    if goal == nil {
      return fmt.Errorf("goal not found: %w", ErrNotFound)
    }

    if input.CurrentValue != nil {
      goal.CurrentValue = *input.CurrentValue
    }
    if input.TargetValue != nil {
      goal.TargetValue = *input.TargetValue
    }
    if input.Deadline != nil {
      goal.Deadline = input.Deadline
    }

    if err := gs.goalRepo.Update(ctx, tx, goal); err != nil {
      return fmt.Errorf("failed to update goal: %w", err)
    }
    out = goal
    return nil
  }); err != nil {
    return nil, err
  }
  return out, nil
}

func (gs *goalService) Delete(ctx context.Context, goalID uuid.UUID) error {
  userID, err := callerID(ctx)
  if err != nil {
    return err
  }
  deleted, err := gs.goalRepo.Delete(ctx, nil, userID, goalID)
  if err != nil {
    return fmt.Errorf("failed to delete goal: %w", err)
  }
  if !deleted {
    return fmt.Errorf("goal not found: %w", ErrNotFound)
  }
  return nil
}
