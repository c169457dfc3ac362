package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/SscSPs/voucher_engine/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogRejection records a business rule failure at warn level. Errors without a
// rule kind are logged as errors.
func (s *BaseService) LogRejection(ctx context.Context, err error, msg string, keyvals ...any) {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.Metrics.RecordRejection(string(kind))
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// Now returns the current UTC time, or the injected clock's time in tests.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
