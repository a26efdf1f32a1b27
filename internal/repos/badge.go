package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type BadgeRepo interface {
	SeedDefinitions(ctx context.Context, tx *gorm.DB, badges []types.Badge) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]types.Badge, error)
	ListUserBadges(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.UserBadge, error)
	HasBadge(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (bool, error)
	Award(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) error
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// SeedDefinitions inserts badge definitions that are not present yet,
// matching on code. Existing rows are left untouched.
func (r *badgeRepo) SeedDefinitions(ctx context.Context, tx *gorm.DB, badges []types.Badge) error {
	for i := range badges {
		badge := badges[i]
		var existing types.Badge
		err := r.conn(tx).WithContext(ctx).Where("code = ?", badge.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if badge.ID == uuid.Nil {
			badge.ID = uuid.New()
		}
		if createErr := r.conn(tx).WithContext(ctx).Create(&badge).Error; createErr != nil {
			return createErr
		}
	}
	return nil
}

func (r *badgeRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]types.Badge, error) {
	var badges []types.Badge
	err := r.conn(tx).WithContext(ctx).Order("code").Find(&badges).Error
	return badges, err
}

func (r *badgeRepo) ListUserBadges(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.UserBadge, error) {
	var awarded []types.UserBadge
	err := r.conn(tx).WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awarded).Error
	return awarded, err
}

func (r *badgeRepo) HasBadge(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (r *badgeRepo) Award(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Create(&types.UserBadge{
		ID:        uuid.New(),
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: time.Now(),
	}).Error
}
