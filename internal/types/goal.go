package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

type Goal struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Type         string    `gorm:"not null;column:type" json:"type"`
	Title        string    `gorm:"not null;column:title" json:"title"`
	TargetValue  float64   `gorm:"column:target_value" json:"target_value"`
	CurrentValue float64   `gorm:"column:current_value" json:"current_value"`
	Status       string    `gorm:"not null;default:active;column:status" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Goal) TableName() string {
	return "goal"
}
