package services

import (
	"context"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
)

// ContactReaderSvc defines read operations for contact data
type ContactReaderSvc interface {
	// GetContactByID retrieves a contact by ID and kind.
	GetContactByID(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.Contact, error)

	// ListContacts retrieves all contacts of the given kind.
	ListContacts(ctx context.Context, kind domain.ContactKind) ([]domain.Contact, error)
}

// ContactWriterSvc defines write operations for contact data
type ContactWriterSvc interface {
	// CreateContact persists a new customer or supplier.
	CreateContact(ctx context.Context, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error)
}

// ContactSvcFacade combines all contact-related service interfaces
type ContactSvcFacade interface {
	ContactReaderSvc
	ContactWriterSvc
}
