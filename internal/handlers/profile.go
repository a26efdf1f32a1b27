package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := ph.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

func (ph *ProfileHandler) Put(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile, err := ph.profileService.Put(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
