package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSessionID adds flow session ID to logger context
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("session_id", sessionID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Booking flow logging methods

// LogSeatMapFallback logs a fail-open seat map build after an upstream failure
func (l *Logger) LogSeatMapFallback(ctx context.Context, flightID string, err error) {
	l.Logger.WarnContext(ctx,
		"Seat map fail-open: booked-seats fetch failed, serving all-available map",
		slog.String("flight_id", flightID),
		slog.String("error", err.Error()),
	)
}

// LogDraftWritten logs when a booking draft is written for a session
func (l *Logger) LogDraftWritten(ctx context.Context, sessionID, flightID string, total float64) {
	l.Logger.InfoContext(ctx,
		"Booking Draft Written",
		slog.String("session_id", sessionID),
		slog.String("flight_id", flightID),
		slog.Float64("total_amount", total),
	)
}

// LogBookingCreated logs when an upstream booking is created
func (l *Logger) LogBookingCreated(ctx context.Context, bookingID int64, flightID, sessionID string) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.Int64("booking_id", bookingID),
		slog.String("flight_id", flightID),
		slog.String("session_id", sessionID),
	)
}

// LogBookingAbandoned logs a payment abandonment cleanup
func (l *Logger) LogBookingAbandoned(ctx context.Context, bookingID int64, sessionID string) {
	l.Logger.InfoContext(ctx,
		"Booking Abandoned",
		slog.Int64("booking_id", bookingID),
		slog.String("session_id", sessionID),
	)
}

// LogCleanupFailure logs a swallowed abandonment cleanup error
func (l *Logger) LogCleanupFailure(ctx context.Context, bookingID int64, step string, err error) {
	l.Logger.WarnContext(ctx,
		"Abandonment cleanup failed (ignored)",
		slog.Int64("booking_id", bookingID),
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// LogGuardRejected logs a flow guard rejection
func (l *Logger) LogGuardRejected(ctx context.Context, sessionID, screen, state string) {
	l.Logger.WarnContext(ctx,
		"Flow Guard Rejected",
		slog.String("session_id", sessionID),
		slog.String("screen", screen),
		slog.String("flow_state", state),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
