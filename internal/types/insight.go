package types

import (
  "time"

  "github.com/google/uuid"
)

// Insight is a generated text artifact tied to a user. Rows are
// append-only and listed most recent first.
type Insight struct {
  ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID  `gorm:"index;not null" json:"user_id"`
  InsightText string     `gorm:"type:text;not null;column:insight_text" json:"insight_text"`
  GeneratedAt time.Time  `gorm:"not null;default:now();column:generated_at" json:"generated_at"`
}

func (Insight) TableName() string {
  return "insight"
}
