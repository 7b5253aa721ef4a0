package controller

import (
	"errors"
	"net/http"

	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/service"
	"github.com/gin-gonic/gin"
)

// RespondError maps the service error taxonomy onto HTTP status codes. Not
// found and ownership violations share one answer so the API never confirms
// that another user's record exists.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNoQuestions):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error", Details: []string{err.Error()}})
	}
}
