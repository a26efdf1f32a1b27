package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return uuid.Nil, false
	}
	return id, true
}

func (ah *ActivityHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	activity, err := ah.activityService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// List returns activities from the trailing `days` window, 30 by default.
func (ah *ActivityHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	activities, err := ah.activityService.List(c.Request.Context(), userID, since)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activities": activities})
}

func (ah *ActivityHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	activity, err := ah.activityService.GetByID(c.Request.Context(), userID, activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activity": activity})
}

func (ah *ActivityHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	activity, err := ah.activityService.Update(c.Request.Context(), userID, activityID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activity": activity})
}

func (ah *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ah.activityService.Delete(c.Request.Context(), userID, activityID); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
