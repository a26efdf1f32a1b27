package types

import (
	"time"

	"github.com/google/uuid"
)

// InsightDismissal hides a single insight id for a user until ExpiresAt
// (30 days after dismissal), after which the insight may surface again.
type InsightDismissal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	InsightID   string    `gorm:"not null;index;column:insight_id" json:"insight_id"`
	DismissedAt time.Time `gorm:"not null;column:dismissed_at" json:"dismissed_at"`
	ExpiresAt   time.Time `gorm:"not null;index;column:expires_at" json:"expires_at"`
}

func (InsightDismissal) TableName() string {
	return "insight_dismissal"
}
