package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/cache"
	"github.com/ecotrace/ecotrace-backend/internal/emissions"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

// ActivityInput is the payload for creating or updating an activity.
// Subtype is optional; when empty it is derived from the description, and
// failing that the category default applies.
type ActivityInput struct {
	Category    string    `json:"category" binding:"required"`
	Subtype     string    `json:"subtype"`
	Description string    `json:"description"`
	Value       float64   `json:"value" binding:"required,gt=0"`
	Unit        string    `json:"unit"`
	Date        time.Time `json:"date"`
}

type ActivityService interface {
	Create(ctx context.Context, userID uuid.UUID, input ActivityInput) (*types.Activity, error)
	GetByID(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error)
	List(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.Activity, error)
	Update(ctx context.Context, userID, activityID uuid.UUID, input ActivityInput) (*types.Activity, error)
	Delete(ctx context.Context, userID, activityID uuid.UUID) error
}

type activityService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.ActivityRepo
	gamification GamificationService
	insightCache cache.InsightCache
}

func NewActivityService(
	db *gorm.DB,
	log *logger.Logger,
	activityRepo repos.ActivityRepo,
	gamification GamificationService,
	insightCache cache.InsightCache,
) ActivityService {
	return &activityService{
		db:           db,
		log:          log.With("service", "ActivityService"),
		activityRepo: activityRepo,
		gamification: gamification,
		insightCache: insightCache,
	}
}

// resolve normalizes the input and computes the frozen emissions figure.
func (as *activityService) resolve(input ActivityInput) (ActivityInput, float64, error) {
	input.Category = emissions.NormalizeCategory(strings.TrimSpace(strings.ToLower(input.Category)))
	if !emissions.IsCategory(input.Category) {
		return input, 0, fmt.Errorf("%w: unknown category %q", ErrInvalid, input.Category)
	}

	subtype := strings.TrimSpace(strings.ToLower(input.Subtype))
	if subtype == "" && input.Description != "" {
		subtype = emissions.ClassifySubtype(input.Category, input.Description)
	}
	if _, ok := emissions.Factor(input.Category, subtype); !ok {
		subtype = emissions.DefaultSubtype(input.Category)
	}
	input.Subtype = subtype

	if input.Unit == "" {
		input.Unit = emissions.Unit(input.Category)
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	return input, emissions.Compute(input.Category, input.Subtype, input.Value), nil
}

func (as *activityService) Create(ctx context.Context, userID uuid.UUID, input ActivityInput) (*types.Activity, error) {
	input, emitted, err := as.resolve(input)
	if err != nil {
		return nil, err
	}

	activity := &types.Activity{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    input.Category,
		Subtype:     input.Subtype,
		Description: input.Description,
		Value:       input.Value,
		Unit:        input.Unit,
		EmissionsKg: emitted,
		Date:        input.Date,
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.activityRepo.Create(ctx, tx, activity); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}
		return as.gamification.HandleActivityLogged(ctx, tx, userID, activity)
	})
	if err != nil {
		return nil, err
	}

	as.invalidateInsights(ctx, userID)
	return activity, nil
}

func (as *activityService) GetByID(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error) {
	activity, err := as.activityRepo.GetByID(ctx, nil, userID, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: activity not found", ErrInvalid)
	}
	return activity, nil
}

func (as *activityService) List(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.Activity, error) {
	return as.activityRepo.ListSince(ctx, nil, userID, since)
}

// Update recomputes the frozen emissions figure from the new input; other
// rows are never touched retroactively.
func (as *activityService) Update(ctx context.Context, userID, activityID uuid.UUID, input ActivityInput) (*types.Activity, error) {
	activity, err := as.activityRepo.GetByID(ctx, nil, userID, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: activity not found", ErrInvalid)
	}

	input, emitted, err := as.resolve(input)
	if err != nil {
		return nil, err
	}

	activity.Category = input.Category
	activity.Subtype = input.Subtype
	activity.Description = input.Description
	activity.Value = input.Value
	activity.Unit = input.Unit
	activity.EmissionsKg = emitted
	activity.Date = input.Date

	if err := as.activityRepo.Update(ctx, nil, activity); err != nil {
		return nil, err
	}
	as.invalidateInsights(ctx, userID)
	return activity, nil
}

func (as *activityService) Delete(ctx context.Context, userID, activityID uuid.UUID) error {
	activity, err := as.activityRepo.GetByID(ctx, nil, userID, activityID)
	if err != nil {
		return err
	}
	if activity == nil {
		return fmt.Errorf("%w: activity not found", ErrInvalid)
	}
	if err := as.activityRepo.Delete(ctx, nil, userID, activityID); err != nil {
		return err
	}
	as.invalidateInsights(ctx, userID)
	return nil
}

// invalidateInsights drops any cached insight payload so the next fetch
// reflects the changed data. Failure is logged, not surfaced.
func (as *activityService) invalidateInsights(ctx context.Context, userID uuid.UUID) {
	if as.insightCache == nil {
		return
	}
	if err := as.insightCache.Invalidate(ctx, userID); err != nil {
		as.log.Warn("Failed to invalidate insight cache", "user_id", userID, "error", err)
	}
}
