package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type InsightHandler struct {
	insightService services.InsightService
	statsService   services.StatsService
}

func NewInsightHandler(insightService services.InsightService, statsService services.StatsService) *InsightHandler {
	return &InsightHandler{insightService: insightService, statsService: statsService}
}

// Get serves the full insight payload. `refresh=true` bypasses the cache;
// `limit` caps the number of insights returned.
func (ih *InsightHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	refresh := c.Query("refresh") == "true"
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		limit = parsed
	}
	payload, err := ih.insightService.GetInsights(c.Request.Context(), userID, refresh, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Derived statistics ride along so clients render one response. Their
	// failure is not worth failing the insights for.
	response := gin.H{"insights": payload}
	if breakdown, err := ih.statsService.Breakdown(c.Request.Context(), userID, 0); err == nil {
		response["breakdown"] = breakdown
	}
	if weekly, err := ih.statsService.WeeklyComparison(c.Request.Context(), userID); err == nil {
		response["weekly"] = weekly
	}
	RespondOK(c, response)
}

// Refresh forces regeneration and returns only a small receipt; clients
// re-fetch the full payload through Get.
func (ih *InsightHandler) Refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	payload, err := ih.insightService.GetInsights(c.Request.Context(), userID, true, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"source":       payload.Source,
		"generated_at": payload.GeneratedAt,
	})
}

func (ih *InsightHandler) GetOne(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	insight, err := ih.insightService.GetInsight(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"insight": insight})
}

func (ih *InsightHandler) GetByCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	category := emissions.NormalizeCategory(c.Param("category"))
	if !emissions.IsCategory(category) {
		RespondError(c, http.StatusBadRequest, "bad_request", nil)
		return
	}
	matched, err := ih.insightService.GetByCategory(c.Request.Context(), userID, category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"insights": matched})
}

func (ih *InsightHandler) Dismiss(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := ih.insightService.Dismiss(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "dismissed"})
}
