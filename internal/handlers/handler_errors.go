package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrLocked):
		return http.StatusLocked
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError logs the error at the appropriate level and writes the
// mapped status. Internal errors get the fallback message so details stay
// out of responses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
