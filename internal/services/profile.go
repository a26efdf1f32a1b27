package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/cache"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

// ProfileInput mirrors CalculatorProfile minus the bookkeeping columns.
type ProfileInput struct {
	EnergySource    string `json:"energy_source"`
	DietType        string `json:"diet_type"`
	LocalFood       bool   `json:"local_food"`
	FoodWaste       bool   `json:"food_waste"`
	Compost         bool   `json:"compost"`
	RecyclesPaper   bool   `json:"recycles_paper"`
	RecyclesPlastic bool   `json:"recycles_plastic"`
	RecyclesGlass   bool   `json:"recycles_glass"`
	RecyclesMetal   bool   `json:"recycles_metal"`
	PlasticLevel    string `json:"plastic_level"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.CalculatorProfile, error)
	Put(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.CalculatorProfile, error)
}

type profileService struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.CalculatorProfileRepo
	insightCache cache.InsightCache
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.CalculatorProfileRepo, insightCache cache.InsightCache) ProfileService {
	return &profileService{
		db:           db,
		log:          log.With("service", "ProfileService"),
		profileRepo:  profileRepo,
		insightCache: insightCache,
	}
}

// Get returns the stored profile, or nil when the user never filled one in.
func (ps *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.CalculatorProfile, error) {
	return ps.profileRepo.GetByUserID(ctx, nil, userID)
}

func (ps *profileService) Put(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.CalculatorProfile, error) {
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &types.CalculatorProfile{ID: uuid.New(), UserID: userID}
	}

	profile.EnergySource = input.EnergySource
	profile.DietType = input.DietType
	profile.LocalFood = input.LocalFood
	profile.FoodWaste = input.FoodWaste
	profile.Compost = input.Compost
	profile.RecyclesPaper = input.RecyclesPaper
	profile.RecyclesPlastic = input.RecyclesPlastic
	profile.RecyclesGlass = input.RecyclesGlass
	profile.RecyclesMetal = input.RecyclesMetal
	profile.PlasticLevel = input.PlasticLevel

	if err := ps.profileRepo.Upsert(ctx, nil, profile); err != nil {
		return nil, err
	}

	if ps.insightCache != nil {
		if err := ps.insightCache.Invalidate(ctx, userID); err != nil {
			ps.log.Warn("Failed to invalidate insight cache", "user_id", userID, "error", err)
		}
	}
	return profile, nil
}
