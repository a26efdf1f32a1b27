package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) Breakdown(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	breakdown, err := sh.statsService.Breakdown(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"breakdown": breakdown})
}

func (sh *StatsHandler) Weekly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cmp, err := sh.statsService.WeeklyComparison(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weekly": cmp})
}

func (sh *StatsHandler) Trends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trends, err := sh.statsService.TrendsForUser(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"trends": trends})
}
