package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

const defaultAuditListLimit = 100

// auditService appends change entries to the audit log and serves the
// recent-changes view.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// RecordChange appends a change entry to the audit log. Callers log and
// continue on error; an audit failure never aborts the business write.
func (s *auditService) RecordChange(ctx context.Context, user, tableName, recordID, action, oldValue, newValue string) error {
	entry := domain.AuditEntry{
		User:      user,
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  newValue,
		Timestamp: time.Now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to save audit entry",
			"table", tableName, "record_id", recordID, "action", action, "error", err)
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent audit entries, newest first.
func (s *auditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > defaultAuditListLimit {
		limit = defaultAuditListLimit
	}
	entries, err := s.auditRepo.ListAuditEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
