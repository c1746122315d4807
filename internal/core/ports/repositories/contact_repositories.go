package repositories

import (
	"context"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// ContactRepository defines persistence operations for customers and suppliers.
type ContactRepository interface {
	// SaveContact persists a new contact and returns its assigned ID.
	SaveContact(ctx context.Context, contact domain.Contact) (int64, error)

	// FindContactByID retrieves a contact by ID and kind.
	FindContactByID(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.Contact, error)

	// ListContacts retrieves all contacts of the given kind, ordered by name.
	ListContacts(ctx context.Context, kind domain.ContactKind) ([]domain.Contact, error)
}

// AuditRepository defines persistence operations for the audit log.
type AuditRepository interface {
	// SaveAuditEntry appends an entry to the audit log.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListAuditEntries retrieves the most recent audit entries, newest first.
	ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
