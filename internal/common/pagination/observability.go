package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs an incoming page navigation at debug level.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Debug("page requested",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit))
}

// LogResponse logs a served page. An empty page past the end of the catalog
// is logged the same way; returned_count tells them apart.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("page served",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int("status", statusCode))
}

// LogError logs a rejected navigation. errorType matches the label passed to
// RecordError.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Warn("page request failed",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Any("error", err),
		slog.String("error_type", errorType))
}
