package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CachedInsight stores the last AI-generated insight payload for a user.
// The payload column holds the serialized insights.Payload; a row with a
// payload that no longer unmarshals is treated as a cache miss, not an error.
type CachedInsight struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Source      string         `gorm:"not null;column:source" json:"source"`
	Model       string         `gorm:"column:model" json:"model"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	GeneratedAt time.Time      `gorm:"not null;index;column:generated_at" json:"generated_at"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (CachedInsight) TableName() string {
	return "cached_insight"
}
