package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type CalculatorProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalculatorProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.CalculatorProfile) error
}

type calculatorProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalculatorProfileRepo(db *gorm.DB, baseLog *logger.Logger) CalculatorProfileRepo {
	return &calculatorProfileRepo{db: db, log: baseLog.With("repo", "CalculatorProfileRepo")}
}

func (r *calculatorProfileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetByUserID returns nil without error when the user has no profile;
// callers substitute neutral defaults.
func (r *calculatorProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalculatorProfile, error) {
	var profile types.CalculatorProfile
	err := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *calculatorProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.CalculatorProfile) error {
	existing, err := r.GetByUserID(ctx, tx, profile.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return r.conn(tx).WithContext(ctx).Save(profile).Error
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return r.conn(tx).WithContext(ctx).Create(profile).Error
}
