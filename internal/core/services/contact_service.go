package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

// contactService manages the customer and supplier directory.
type contactService struct {
	contactRepo portsrepo.ContactRepository
	auditSvc    portssvc.AuditSvc
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepository, auditSvc portssvc.AuditSvc) portssvc.ContactSvcFacade {
	return &contactService{
		contactRepo: contactRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

// CreateContact persists a new customer or supplier.
func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: contact name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	contact := domain.Contact{
		Kind:        domain.ContactKind(req.Kind),
		Name:        name,
		ContactInfo: req.ContactInfo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	contactID, err := s.contactRepo.SaveContact(ctx, contact)
	if err != nil {
		logger.Error("failed to save contact", "name", name, "error", err)
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	contact.ContactID = contactID

	if err := s.auditSvc.RecordChange(ctx, creatorUserID, "contacts", fmt.Sprintf("%d", contactID), "INSERT", "", contact.DisplayRef()); err != nil {
		logger.Warn("audit record failed for contact creation", "contact_id", contactID, "error", err)
	}

	logger.Info("contact created", "contact_id", contactID, "kind", contact.Kind)
	return &contact, nil
}

// GetContactByID retrieves a contact by ID and kind.
func (s *contactService) GetContactByID(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact %d: %w", contactID, err)
	}
	return contact, nil
}

// ListContacts retrieves all contacts of the given kind.
func (s *contactService) ListContacts(ctx context.Context, kind domain.ContactKind) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}
