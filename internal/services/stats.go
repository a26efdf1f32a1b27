package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
)

// CategoryShare is one slice of the emissions breakdown.
type CategoryShare struct {
	Category    string  `json:"category"`
	EmissionsKg float64 `json:"emissions_kg"`
	Percent     float64 `json:"percent"`
}

// Breakdown is the per-category view over a trailing window.
type Breakdown struct {
	Days            int             `json:"days"`
	TotalKg         float64         `json:"total_kg"`
	Categories      []CategoryShare `json:"categories"`
	HighestCategory string          `json:"highest_category,omitempty"`
	LowestCategory  string          `json:"lowest_category,omitempty"`
}

// WeeklyComparison contrasts the current seven days with the seven before.
type WeeklyComparison struct {
	ThisWeekKg    float64 `json:"this_week_kg"`
	LastWeekKg    float64 `json:"last_week_kg"`
	ChangePercent int     `json:"change_percent"`
}

type StatsService interface {
	Breakdown(ctx context.Context, userID uuid.UUID, days int) (*Breakdown, error)
	WeeklyComparison(ctx context.Context, userID uuid.UUID) (*WeeklyComparison, error)
	TrendsForUser(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]insights.Trend, error)
}

type statsService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.ActivityRepo
}

func NewStatsService(db *gorm.DB, log *logger.Logger, activityRepo repos.ActivityRepo) StatsService {
	return &statsService{
		db:           db,
		log:          log.With("service", "StatsService"),
		activityRepo: activityRepo,
	}
}

// sumsByCategory aggregates [from, to) and folds legacy category labels into
// the canonical set before any percentages are computed.
func (ss *statsService) sumsByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]float64, error) {
	raw, err := ss.activityRepo.SumByCategory(ctx, nil, userID, from, to)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64, len(raw))
	for category, total := range raw {
		sums[emissions.NormalizeCategory(category)] += total
	}
	return sums, nil
}

func (ss *statsService) Breakdown(ctx context.Context, userID uuid.UUID, days int) (*Breakdown, error) {
	if days <= 0 {
		days = insights.FeatureWindowDays
	}
	now := time.Now().UTC()
	sums, err := ss.sumsByCategory(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}

	breakdown := &Breakdown{Days: days}
	for _, total := range sums {
		breakdown.TotalKg += total
	}

	for _, category := range emissions.Categories {
		total, ok := sums[category]
		if !ok {
			continue
		}
		share := CategoryShare{Category: category, EmissionsKg: round2(total)}
		if breakdown.TotalKg > 0 {
			share.Percent = math.Round(total/breakdown.TotalKg*1000) / 10
		}
		breakdown.Categories = append(breakdown.Categories, share)

		if breakdown.HighestCategory == "" || total > sums[breakdown.HighestCategory] {
			breakdown.HighestCategory = category
		}
		if breakdown.LowestCategory == "" || total < sums[breakdown.LowestCategory] {
			breakdown.LowestCategory = category
		}
	}
	breakdown.TotalKg = round2(breakdown.TotalKg)
	return breakdown, nil
}

func (ss *statsService) WeeklyComparison(ctx context.Context, userID uuid.UUID) (*WeeklyComparison, error) {
	now := time.Now().UTC()
	thisWeek, err := ss.sumsByCategory(ctx, userID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	lastWeek, err := ss.sumsByCategory(ctx, userID, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	cmp := &WeeklyComparison{}
	for _, total := range thisWeek {
		cmp.ThisWeekKg += total
	}
	for _, total := range lastWeek {
		cmp.LastWeekKg += total
	}
	if cmp.LastWeekKg > 0 {
		cmp.ChangePercent = int(math.Round((cmp.ThisWeekKg - cmp.LastWeekKg) / cmp.LastWeekKg * 100))
	}
	cmp.ThisWeekKg = round2(cmp.ThisWeekKg)
	cmp.LastWeekKg = round2(cmp.LastWeekKg)
	return cmp, nil
}

// TrendsForUser compares the seven days ending at asOf with the seven
// before them, per category.
func (ss *statsService) TrendsForUser(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]insights.Trend, error) {
	thisWeek, err := ss.sumsByCategory(ctx, userID, asOf.AddDate(0, 0, -7), asOf)
	if err != nil {
		return nil, err
	}
	lastWeek, err := ss.sumsByCategory(ctx, userID, asOf.AddDate(0, 0, -14), asOf.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return insights.DetectTrends(thisWeek, lastWeek), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
