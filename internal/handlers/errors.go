package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// kindStatus maps voucher rule kinds to HTTP statuses.
var kindStatus = map[apperrors.Kind]int{
	apperrors.KindHeader:     http.StatusBadRequest,
	apperrors.KindPolicy:     http.StatusBadRequest,
	apperrors.KindReference:  http.StatusUnprocessableEntity,
	apperrors.KindLifecycle:  http.StatusConflict,
	apperrors.KindPermission: http.StatusForbidden,
}

// respondError writes the JSON error for a service failure. Rule failures keep
// their message and kind; unexpected failures are logged and hidden behind
// fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if kind, ok := apperrors.KindOf(err); ok {
		logger.Warn("Voucher rule rejected request", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		c.JSON(kindStatus[kind], gin.H{"error": err.Error(), "kind": kind})
		return
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest:
		logger.Warn("Bad request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// actorOrAbort returns the acting user ID, writing a 401 when it is missing.
func actorOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
