package repos

import (
  "context"
  "errors"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/types"
)

// TrackerAggregates summarizes a single user's tracker history. Averages
// are nil when the user has no rows with that field set.
type TrackerAggregates struct {
  TotalEntries int64      `json:"total_entries"`
  LastDate     *time.Time `json:"last_date"`
  AvgSleep     *float64   `json:"avg_sleep"`
  AvgSteps     *float64   `json:"avg_steps"`
  AvgMood      *float64   `json:"avg_mood"`
}

type TrackerRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error
  GetByID(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (*types.Tracker, error)
  ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (bool, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skip, limit int) ([]*types.Tracker, error)
  ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Tracker, error)
  ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.Tracker, error)
  Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Tracker, error)
  Update(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error
  Delete(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (bool, error)
  Aggregates(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*TrackerAggregates, error)
}

type trackerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTrackerRepo(db *gorm.DB, baseLog *logger.Logger) TrackerRepo {
  repoLog := baseLog.With("repo", "TrackerRepo")
  return &trackerRepo{db: db, log: repoLog}
}

func (tr *trackerRepo) Create(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  return transaction.WithContext(ctx).Create(tracker).Error
}

func (tr *trackerRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (*types.Tracker, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var tracker types.Tracker
  err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", trackerID, userID).
    First(&tracker).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &tracker, nil
}

func (tr *trackerRepo) ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Tracker{}).
    Where("user_id = ? AND date = ?", userID, date).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (tr *trackerRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skip, limit int) ([]*types.Tracker, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var trackers []*types.Tracker
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("date DESC").
    Offset(skip).
    Limit(limit).
    Find(&trackers).Error; err != nil {
    return nil, err
  }
  return trackers, nil
}

func (tr *trackerRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Tracker, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var trackers []*types.Tracker
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("date DESC").
    Limit(limit).
    Find(&trackers).Error; err != nil {
    return nil, err
  }
  return trackers, nil
}

func (tr *trackerRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.Tracker, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var trackers []*types.Tracker
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date >= ?", userID, since).
    Order("date ASC").
    Find(&trackers).Error; err != nil {
    return nil, err
  }
  return trackers, nil
}

func (tr *trackerRepo) Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Tracker, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var tracker types.Tracker
  err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("date DESC").
    First(&tracker).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &tracker, nil
}

func (tr *trackerRepo) Update(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  return transaction.WithContext(ctx).Save(tracker).Error
}

func (tr *trackerRepo) Delete(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  res := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", trackerID, userID).
    Delete(&types.Tracker{})
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (tr *trackerRepo) Aggregates(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*TrackerAggregates, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var agg TrackerAggregates
  if err := transaction.WithContext(ctx).
    Model(&types.Tracker{}).
    Select("COUNT(*) AS total_entries, MAX(date) AS last_date, AVG(sleep_hours) AS avg_sleep, AVG(steps) AS avg_steps, AVG(mood_score) AS avg_mood").
    Where("user_id = ?", userID).
    Scan(&agg).Error; err != nil {
    return nil, err
  }
  return &agg, nil
}
