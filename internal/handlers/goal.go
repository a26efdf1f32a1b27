package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type GoalHandler struct {
	goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (gh *GoalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	goal, err := gh.goalService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

func (gh *GoalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goals, err := gh.goalService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"goals": goals})
}

type goalUpdateRequest struct {
	CurrentValue *float64 `json:"current_value"`
	Status       *string  `json:"status"`
}

// Update accepts a progress value, a status change, or both.
func (gh *GoalHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goalID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req goalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.CurrentValue == nil && req.Status == nil {
		RespondError(c, http.StatusBadRequest, "bad_request", nil)
		return
	}

	ctx := c.Request.Context()
	if req.CurrentValue != nil {
		if _, err := gh.goalService.UpdateProgress(ctx, userID, goalID, *req.CurrentValue); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Status != nil {
		if _, err := gh.goalService.SetStatus(ctx, userID, goalID, *req.Status); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	goals, err := gh.goalService.List(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	for i := range goals {
		if goals[i].ID == goalID {
			RespondOK(c, gin.H{"goal": goals[i]})
			return
		}
	}
	RespondError(c, http.StatusNotFound, "not_found", nil)
}
