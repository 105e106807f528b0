package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/types"
)

type GoalRepo interface {
  Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error
  GetByID(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (*types.Goal, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Goal, error)
  Update(ctx context.Context, tx *gorm.DB, goal *types.Goal) error
  Delete(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (bool, error)
}

type goalRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
  repoLog := baseLog.With("repo", "GoalRepo")
  return &goalRepo{db: db, log: repoLog}
}

func (gr *goalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  return transaction.WithContext(ctx).Create(goal).Error
}

func (gr *goalRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (*types.Goal, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  var goal types.Goal
  err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", goalID, userID).
    First(&goal).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &goal, nil
}

func (gr *goalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Goal, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  var goals []*types.Goal
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&goals).Error; err != nil {
    return nil, err
  }
  return goals, nil
}

func (gr *goalRepo) Update(ctx context.Context, tx *gorm.DB, goal *types.Goal) error {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  return transaction.WithContext(ctx).Save(goal).Error
}

func (gr *goalRepo) Delete(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", goalID, userID).
    Delete(&types.Goal{})
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}
