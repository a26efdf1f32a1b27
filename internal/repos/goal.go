package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error
	GetByID(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (*types.Goal, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Goal, error)
	ListActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Goal, error)
	Update(ctx context.Context, tx *gorm.DB, goal *types.Goal) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	return &goalRepo{db: db, log: baseLog.With("repo", "GoalRepo")}
}

func (r *goalRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *goalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) error {
	return r.conn(tx).WithContext(ctx).Create(goal).Error
}

func (r *goalRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, goalID uuid.UUID) (*types.Goal, error) {
	var goal types.Goal
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Goal, error) {
	var goals []types.Goal
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) ListActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.Goal, error) {
	var goals []types.Goal
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.GoalStatusActive).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepo) Update(ctx context.Context, tx *gorm.DB, goal *types.Goal) error {
	return r.conn(tx).WithContext(ctx).Save(goal).Error
}
