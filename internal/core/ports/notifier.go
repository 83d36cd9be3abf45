package ports

import "context"

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier surfaces human-readable messages to the invoking UI. Every
// terminal workflow error produces exactly one notification; warnings carry
// non-fatal sub-failures such as a blocked-carrier list that failed to load.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}
