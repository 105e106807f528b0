package types

import (
  "time"

  "github.com/google/uuid"
)

type Goal struct {
  ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID       uuid.UUID   `gorm:"index;not null" json:"user_id"`
  GoalType     string      `gorm:"not null;column:goal_type" json:"goal_type"`
  TargetValue  float64     `gorm:"not null;column:target_value" json:"target_value"`
  CurrentValue float64     `gorm:"not null;default:0;column:current_value" json:"current_value"`
  Deadline     *time.Time  `gorm:"type:date;column:deadline" json:"deadline"`
  CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (Goal) TableName() string {
  return "goal"
}
