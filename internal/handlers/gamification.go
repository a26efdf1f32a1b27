package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type GamificationHandler struct {
	gamificationService services.GamificationService
}

func NewGamificationHandler(gamificationService services.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService}
}

func (gh *GamificationHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	progress, err := gh.gamificationService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (gh *GamificationHandler) ListBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	badges, err := gh.gamificationService.ListBadges(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"badges": badges})
}
