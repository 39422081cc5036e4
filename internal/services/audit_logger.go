package services

import (
	"log/slog"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// SlogAuditLogger implements domain.AuditLogger on top of log/slog
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger creates an audit logger writing to the given slog
// logger, or slog.Default() when nil.
func NewSlogAuditLogger(logger *slog.Logger) domain.AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (l *SlogAuditLogger) LogEvent(event *domain.AuditEvent) {
	attrs := []any{
		"event", string(event.EventType),
		"user_id", event.UserID,
		"email", event.Email,
		"success", event.Success,
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, "error", event.ErrorMsg)
	}

	if event.Success {
		l.logger.Info("auth audit", attrs...)
	} else {
		l.logger.Warn("auth audit", attrs...)
	}
}
