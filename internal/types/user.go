package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  RoleUser  = "user"
  RoleAdmin = "admin"
)

type User struct {
  ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Email         string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password      string     `gorm:"not null;column:password" json:"-"`
  Name          string     `gorm:"not null;column:name" json:"name"`
  Age           *int       `gorm:"column:age" json:"age"`
  Gender        *string    `gorm:"column:gender" json:"gender"`
  Height        *float64   `gorm:"column:height" json:"height"`
  Weight        *float64   `gorm:"column:weight" json:"weight"`
  ActivityLevel *string    `gorm:"column:activity_level" json:"activity_level"`
  Role          string     `gorm:"not null;default:user;column:role" json:"role"`
  CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
