package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger emits structured audit records for logins, record mutations and
// denied actions. Records go to the process log; nothing is persisted here.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, userID int, username, action, entity, entityID, status, details string) {
	requestID := ""
	if reqID := ctx.Value("request_id"); reqID != nil {
		requestID, _ = reqID.(string)
	}

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("entity", entity),
		slog.String("entity_id", entityID),
		slog.Int("user_id", userID),
		slog.String("username", username),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogLogin(ctx context.Context, username, status, details string) {
	al.LogAction(ctx, 0, username, "login", "session", "", status, details)
}

func (al *Logger) LogMutation(ctx context.Context, userID int, username, action, entity, entityID, status string) {
	al.LogAction(ctx, userID, username, action, entity, entityID, status, "")
}

func (al *Logger) LogDenied(ctx context.Context, userID int, username, reason string) {
	al.LogAction(ctx, userID, username, "access_denied", "api", "", "denied", reason)
}
