package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type DismissalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dismissal *types.InsightDismissal) error
	ActiveIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (map[string]bool, error)
}

type dismissalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDismissalRepo(db *gorm.DB, baseLog *logger.Logger) DismissalRepo {
	return &dismissalRepo{db: db, log: baseLog.With("repo", "DismissalRepo")}
}

func (r *dismissalRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dismissalRepo) Create(ctx context.Context, tx *gorm.DB, dismissal *types.InsightDismissal) error {
	return r.conn(tx).WithContext(ctx).Create(dismissal).Error
}

// ActiveIDs returns the set of insight ids the user has dismissed and whose
// 30-day re-surface window has not yet passed.
func (r *dismissalRepo) ActiveIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (map[string]bool, error) {
	var rows []types.InsightDismissal
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.InsightID] = true
	}
	return ids, nil
}
