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

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) error
	GetByID(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (*types.Activity, error)
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]types.Activity, error)
	Update(ctx context.Context, tx *gorm.DB, activity *types.Activity) error
	Delete(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) error
	SumByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (map[string]float64, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountDistinctDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) error {
	return r.conn(tx).WithContext(ctx).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (*types.Activity, error) {
	var activity types.Activity
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", activityID, userID).
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListSince returns a user's activities with date >= since, newest day
// first; same-day rows are ordered by creation time.
func (r *activityRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]types.Activity, error) {
	var activities []types.Activity
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC, created_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) Update(ctx context.Context, tx *gorm.DB, activity *types.Activity) error {
	return r.conn(tx).WithContext(ctx).Save(activity).Error
}

func (r *activityRepo) Delete(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", activityID, userID).
		Delete(&types.Activity{}).Error
}

// SumByCategory aggregates emissions per category over [from, to).
func (r *activityRepo) SumByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (map[string]float64, error) {
	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	err := r.conn(tx).WithContext(ctx).Model(&types.Activity{}).
		Select("category, SUM(emissions_kg) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64, len(rows))
	for _, r := range rows {
		sums[r.Category] = r.Total
	}
	return sums, nil
}

func (r *activityRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *activityRepo) CountDistinctDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Activity{}).
		Select("COUNT(DISTINCT date)").
		Where("user_id = ?", userID).
		Scan(&count).Error
	return count, err
}
