package services

import (
	"context"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// AuditSvc defines operations for the audit trail.
type AuditSvc interface {
	// RecordChange appends a change entry to the audit log. Failures are
	// reported but must not abort the business operation that triggered
	// the entry.
	RecordChange(ctx context.Context, user, tableName, recordID, action, oldValue, newValue string) error

	// ListRecent retrieves the most recent audit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
