package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
)

// FeatureService assembles the per-user feature vector the insight
// generators consume.
type FeatureService interface {
	BuildForUser(ctx context.Context, userID uuid.UUID, asOf time.Time) (insights.FeatureVector, error)
}

type featureService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.ActivityRepo
	profileRepo  repos.CalculatorProfileRepo
}

func NewFeatureService(db *gorm.DB, log *logger.Logger, activityRepo repos.ActivityRepo, profileRepo repos.CalculatorProfileRepo) FeatureService {
	return &featureService{
		db:           db,
		log:          log.With("service", "FeatureService"),
		activityRepo: activityRepo,
		profileRepo:  profileRepo,
	}
}

func (fs *featureService) BuildForUser(ctx context.Context, userID uuid.UUID, asOf time.Time) (insights.FeatureVector, error) {
	since := asOf.AddDate(0, 0, -insights.FeatureWindowDays)
	activities, err := fs.activityRepo.ListSince(ctx, nil, userID, since)
	if err != nil {
		return insights.FeatureVector{}, fmt.Errorf("list activities: %w", err)
	}
	profile, err := fs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return insights.FeatureVector{}, fmt.Errorf("load profile: %w", err)
	}
	return insights.BuildFeatureVector(userID, activities, profile, asOf), nil
}
