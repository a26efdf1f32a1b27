package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/repos"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

type GoalInput struct {
	Type        string  `json:"type" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	TargetValue float64 `json:"target_value"`
}

type GoalService interface {
	Create(ctx context.Context, userID uuid.UUID, input GoalInput) (*types.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]types.Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*types.Goal, error)
	SetStatus(ctx context.Context, userID, goalID uuid.UUID, status string) (*types.Goal, error)
}

type goalService struct {
	db       *gorm.DB
	log      *logger.Logger
	goalRepo repos.GoalRepo
}

func NewGoalService(db *gorm.DB, log *logger.Logger, goalRepo repos.GoalRepo) GoalService {
	return &goalService{
		db:       db,
		log:      log.With("service", "GoalService"),
		goalRepo: goalRepo,
	}
}

func (gs *goalService) Create(ctx context.Context, userID uuid.UUID, input GoalInput) (*types.Goal, error) {
	goal := &types.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        input.Type,
		Title:       input.Title,
		TargetValue: input.TargetValue,
		Status:      types.GoalStatusActive,
	}
	if err := gs.goalRepo.Create(ctx, nil, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (gs *goalService) List(ctx context.Context, userID uuid.UUID) ([]types.Goal, error) {
	return gs.goalRepo.ListByUser(ctx, nil, userID)
}

func (gs *goalService) get(ctx context.Context, userID, goalID uuid.UUID) (*types.Goal, error) {
	goal, err := gs.goalRepo.GetByID(ctx, nil, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, fmt.Errorf("%w: goal not found", ErrInvalid)
	}
	return goal, nil
}

// UpdateProgress records the latest value and flips the goal to completed
// once the target is reached.
func (gs *goalService) UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*types.Goal, error) {
	goal, err := gs.get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	goal.CurrentValue = currentValue
	if goal.Status == types.GoalStatusActive && goal.TargetValue > 0 && currentValue >= goal.TargetValue {
		goal.Status = types.GoalStatusCompleted
		gs.log.Info("Goal completed", "user_id", userID, "goal_id", goalID)
	}
	if err := gs.goalRepo.Update(ctx, nil, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (gs *goalService) SetStatus(ctx context.Context, userID, goalID uuid.UUID, status string) (*types.Goal, error) {
	switch status {
	case types.GoalStatusActive, types.GoalStatusCompleted, types.GoalStatusAbandoned:
	default:
		return nil, fmt.Errorf("%w: unknown goal status %q", ErrInvalid, status)
	}
	goal, err := gs.get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	goal.Status = status
	if err := gs.goalRepo.Update(ctx, nil, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
