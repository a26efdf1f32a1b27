package types

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single logged action (a trip, a day of meals, a recycling
// run). EmissionsKg is computed by the emissions calculator when the row is
// created or updated and is never recomputed on read.
type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Category    string    `gorm:"not null;index;column:category" json:"category"`
	Subtype     string    `gorm:"column:subtype" json:"subtype"`
	Description string    `gorm:"column:description" json:"description"`
	Value       float64   `gorm:"not null;column:value" json:"value"`
	Unit        string    `gorm:"column:unit" json:"unit"`
	EmissionsKg float64   `gorm:"not null;column:emissions_kg" json:"emissions_kg"`
	Date        time.Time `gorm:"not null;index;column:date" json:"date"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Activity) TableName() string {
	return "activity"
}
