package types

import (
  "time"

  "github.com/google/uuid"
)

// Tracker is one user's wellness reading for a single calendar day.
// At most one row exists per (user, date).
type Tracker struct {
  ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID  `gorm:"not null;uniqueIndex:idx_tracker_user_date" json:"user_id"`
  Date        time.Time  `gorm:"type:date;not null;uniqueIndex:idx_tracker_user_date" json:"date"`
  Steps       *int       `gorm:"column:steps" json:"steps"`
  Calories    *int       `gorm:"column:calories" json:"calories"`
  SleepHours  *float64   `gorm:"column:sleep_hours" json:"sleep_hours"`
  MoodScore   *int       `gorm:"column:mood_score" json:"mood_score"`
  StressLevel *int       `gorm:"column:stress_level" json:"stress_level"`
  CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Tracker) TableName() string {
  return "tracker"
}
