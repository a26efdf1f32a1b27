package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps service failures onto HTTP statuses: validation
// sentinels become 400, everything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalid) {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
