package types

import (
	"time"

	"github.com/google/uuid"
)

// CalculatorProfile holds the qualitative defaults the feature extractor
// cannot infer from raw activities. At most one row per user; callers fall
// back to neutral values when the row is absent.
type CalculatorProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	EnergySource    string    `gorm:"column:energy_source" json:"energy_source"`
	DietType        string    `gorm:"column:diet_type" json:"diet_type"`
	LocalFood       bool      `gorm:"column:local_food" json:"local_food"`
	FoodWaste       bool      `gorm:"column:food_waste" json:"food_waste"`
	Compost         bool      `gorm:"column:compost" json:"compost"`
	RecyclesPaper   bool      `gorm:"column:recycles_paper" json:"recycles_paper"`
	RecyclesPlastic bool      `gorm:"column:recycles_plastic" json:"recycles_plastic"`
	RecyclesGlass   bool      `gorm:"column:recycles_glass" json:"recycles_glass"`
	RecyclesMetal   bool      `gorm:"column:recycles_metal" json:"recycles_metal"`
	PlasticLevel    string    `gorm:"column:plastic_level" json:"plastic_level"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (CalculatorProfile) TableName() string {
	return "calculator_profile"
}
