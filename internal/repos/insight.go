package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/types"
)

type InsightRepo interface {
  Create(ctx context.Context, tx *gorm.DB, insight *types.Insight) error
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error)
}

type insightRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
  repoLog := baseLog.With("repo", "InsightRepo")
  return &insightRepo{db: db, log: repoLog}
}

func (ir *insightRepo) Create(ctx context.Context, tx *gorm.DB, insight *types.Insight) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  return transaction.WithContext(ctx).Create(insight).Error
}

func (ir *insightRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var insights []*types.Insight
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("generated_at DESC").
    Limit(limit).
    Find(&insights).Error; err != nil {
    return nil, err
  }
  return insights, nil
}
