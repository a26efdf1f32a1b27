package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress accumulates gamification state. One row per user, created
// lazily on the first logged activity.
type UserProgress struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	XP            int       `gorm:"not null;default:0;column:xp" json:"xp"`
	Level         int       `gorm:"not null;default:1;column:level" json:"level"`
	CurrentStreak int       `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	LongestStreak int       `gorm:"not null;default:0;column:longest_streak" json:"longest_streak"`
	LastLogDate   time.Time `gorm:"column:last_log_date" json:"last_log_date"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
