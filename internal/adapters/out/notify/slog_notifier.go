// Package notify surfaces workflow notifications through structured logging.
package notify

import (
	"context"
	"log/slog"

	"quickship/internal/core/ports"
)

// SlogNotifier implements ports.Notifier by writing each notification to a
// structured logger. Headless deployments use it as the default sink; an
// interactive front end can replace it with a push channel.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier backed by the given logger. A nil logger
// falls back to slog.Default.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger.With("component", "notifier")}
}

// Notify logs the message at a level matching its severity.
func (n *SlogNotifier) Notify(ctx context.Context, severity ports.Severity, message string) {
	switch severity {
	case ports.SeverityError:
		n.logger.ErrorContext(ctx, message, "severity", severity)
	case ports.SeverityWarning:
		n.logger.WarnContext(ctx, message, "severity", severity)
	default:
		n.logger.InfoContext(ctx, message, "severity", severity)
	}
}
