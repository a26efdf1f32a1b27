package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Badge is a static achievement definition seeded at startup. Criteria is a
// JSON document of thresholds interpreted by the gamification service
// (e.g. {"min_activities": 10} or {"min_streak": 7}).
type Badge struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Icon        string         `gorm:"column:icon" json:"icon"`
	Criteria    datatypes.JSON `gorm:"column:criteria" json:"criteria"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Badge) TableName() string {
	return "badge"
}

type UserBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	BadgeID   uuid.UUID `gorm:"type:uuid;index;not null" json:"badge_id"`
	Badge     *Badge    `gorm:"foreignKey:BadgeID;references:ID" json:"badge,omitempty"`
	AwardedAt time.Time `gorm:"not null;column:awarded_at" json:"awarded_at"`
}

func (UserBadge) TableName() string {
	return "user_badge"
}
