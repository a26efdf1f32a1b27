package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

const (
	xpPerActivity = 10
	xpEcoBonus    = 5
	xpPerLevel    = 100
)

// BadgeStatus pairs a badge definition with the user's earned state.
type BadgeStatus struct {
	Badge     types.Badge `json:"badge"`
	Earned    bool        `json:"earned"`
	AwardedAt *time.Time  `json:"awarded_at,omitempty"`
}

type GamificationService interface {
	// HandleActivityLogged reacts to a newly created activity inside the
	// caller's transaction: XP, level, streak and badge evaluation.
	HandleActivityLogged(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activity *types.Activity) error
	GetProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, error)
	ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeStatus, error)
	SeedBadges(ctx context.Context) error
}

type gamificationService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
	badgeRepo    repos.BadgeRepo
	activityRepo repos.ActivityRepo
}

func NewGamificationService(
	db *gorm.DB,
	log *logger.Logger,
	progressRepo repos.ProgressRepo,
	badgeRepo repos.BadgeRepo,
	activityRepo repos.ActivityRepo,
) GamificationService {
	return &gamificationService{
		db:           db,
		log:          log.With("service", "GamificationService"),
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		activityRepo: activityRepo,
	}
}

// LevelForXP maps accumulated XP onto a level, one level per 100 XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/xpPerLevel + 1
}

// NextStreak advances a daily streak given the previous log date. Logging
// again on the same day leaves the streak alone; the next calendar day
// extends it; any gap resets it to one.
func NextStreak(current int, lastLog, newLog time.Time) int {
	last := dateOnly(lastLog)
	next := dateOnly(newLog)
	switch {
	case last.IsZero() || current == 0:
		return 1
	case next.Equal(last):
		return current
	case next.Equal(last.AddDate(0, 0, 1)):
		return current + 1
	case next.Before(last):
		// Backdated entry; leave the streak untouched.
		return current
	default:
		return 1
	}
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (gs *gamificationService) HandleActivityLogged(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activity *types.Activity) error {
	progress, err := gs.progressRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if progress == nil {
		progress = &types.UserProgress{UserID: userID, Level: 1}
	}

	earned := xpPerActivity
	if activity.EmissionsKg == 0 {
		earned += xpEcoBonus
	}
	progress.XP += earned
	progress.Level = LevelForXP(progress.XP)

	progress.CurrentStreak = NextStreak(progress.CurrentStreak, progress.LastLogDate, activity.Date)
	if progress.CurrentStreak > progress.LongestStreak {
		progress.LongestStreak = progress.CurrentStreak
	}
	if activity.Date.After(progress.LastLogDate) {
		progress.LastLogDate = dateOnly(activity.Date)
	}

	if err := gs.progressRepo.Save(ctx, tx, progress); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return gs.evaluateBadges(ctx, tx, userID, progress)
}

// badgeCriteria is the JSON shape stored on a badge definition. Zero-valued
// fields are unconstrained.
type badgeCriteria struct {
	MinActivities int `json:"min_activities,omitempty"`
	MinStreak     int `json:"min_streak,omitempty"`
	MinLevel      int `json:"min_level,omitempty"`
}

func (gs *gamificationService) evaluateBadges(ctx context.Context, tx *gorm.DB, userID uuid.UUID, progress *types.UserProgress) error {
	badges, err := gs.badgeRepo.ListAll(ctx, tx)
	if err != nil {
		return fmt.Errorf("list badges: %w", err)
	}

	var activityCount int64 = -1
	for _, badge := range badges {
		var criteria badgeCriteria
		if err := json.Unmarshal(badge.Criteria, &criteria); err != nil {
			gs.log.Warn("Badge has malformed criteria, skipping", "code", badge.Code, "error", err)
			continue
		}

		if criteria.MinActivities > 0 {
			if activityCount < 0 {
				activityCount, err = gs.activityRepo.CountByUser(ctx, tx, userID)
				if err != nil {
					return fmt.Errorf("count activities: %w", err)
				}
			}
			if activityCount < int64(criteria.MinActivities) {
				continue
			}
		}
		if criteria.MinStreak > 0 && progress.CurrentStreak < criteria.MinStreak {
			continue
		}
		if criteria.MinLevel > 0 && progress.Level < criteria.MinLevel {
			continue
		}

		owned, err := gs.badgeRepo.HasBadge(ctx, tx, userID, badge.ID)
		if err != nil {
			return fmt.Errorf("check badge: %w", err)
		}
		if owned {
			continue
		}
		if err := gs.badgeRepo.Award(ctx, tx, userID, badge.ID); err != nil {
			return fmt.Errorf("award badge: %w", err)
		}
		gs.log.Info("Badge awarded", "user_id", userID, "code", badge.Code)
	}
	return nil
}

func (gs *gamificationService) GetProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, error) {
	progress, err := gs.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &types.UserProgress{UserID: userID, Level: 1}
	}
	return progress, nil
}

func (gs *gamificationService) ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeStatus, error) {
	all, err := gs.badgeRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	awarded, err := gs.badgeRepo.ListUserBadges(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	awardedAt := make(map[uuid.UUID]time.Time, len(awarded))
	for _, ub := range awarded {
		awardedAt[ub.BadgeID] = ub.AwardedAt
	}

	statuses := make([]BadgeStatus, 0, len(all))
	for _, badge := range all {
		status := BadgeStatus{Badge: badge}
		if at, ok := awardedAt[badge.ID]; ok {
			status.Earned = true
			t := at
			status.AwardedAt = &t
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func mustCriteria(c badgeCriteria) datatypes.JSON {
	raw, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}

// SeedBadges installs the static badge catalogue; safe to run on every
// startup.
func (gs *gamificationService) SeedBadges(ctx context.Context) error {
	return gs.badgeRepo.SeedDefinitions(ctx, nil, []types.Badge{
		{Code: "first-steps", Name: "First Steps", Description: "Log your first activity.", Icon: "seedling", Criteria: mustCriteria(badgeCriteria{MinActivities: 1})},
		{Code: "getting-into-it", Name: "Getting Into It", Description: "Log ten activities.", Icon: "sprout", Criteria: mustCriteria(badgeCriteria{MinActivities: 10})},
		{Code: "centurion", Name: "Centurion", Description: "Log a hundred activities.", Icon: "tree", Criteria: mustCriteria(badgeCriteria{MinActivities: 100})},
		{Code: "week-streak", Name: "Week Streak", Description: "Log something seven days in a row.", Icon: "flame", Criteria: mustCriteria(badgeCriteria{MinStreak: 7})},
		{Code: "month-streak", Name: "Month Streak", Description: "Log something thirty days in a row.", Icon: "calendar", Criteria: mustCriteria(badgeCriteria{MinStreak: 30})},
		{Code: "level-five", Name: "Level Five", Description: "Reach level five.", Icon: "star", Criteria: mustCriteria(badgeCriteria{MinLevel: 5})},
	})
}
