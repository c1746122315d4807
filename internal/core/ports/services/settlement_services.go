package services

import (
	"context"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
)

// SettlementReaderSvc defines read operations for payments and balances
type SettlementReaderSvc interface {
	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)

	// ListPaymentsByContact retrieves payments recorded against a contact.
	ListPaymentsByContact(ctx context.Context, contactID int64, kind domain.ContactKind) ([]domain.Payment, error)

	// GetContactBalance derives the outstanding balance of a contact from
	// its unpaid invoices and recorded payments.
	GetContactBalance(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.ContactBalance, error)
}

// SettlementWriterSvc defines write operations for payments
type SettlementWriterSvc interface {
	// ApplyPayment records a payment and, when linked to an open invoice,
	// transitions the invoice to PAID or PARTIALLY_PAID.
	ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, creatorUserID string) (*dto.ApplyPaymentResponse, error)

	// UpdatePayment edits a recorded payment. Linked invoice statuses are
	// not re-evaluated.
	UpdatePayment(ctx context.Context, paymentID int64, req dto.UpdatePaymentRequest, requestingUserID string) (*domain.Payment, error)

	// DeletePayment removes a recorded payment. Linked invoice statuses are
	// not re-evaluated.
	DeletePayment(ctx context.Context, paymentID int64, requestingUserID string) error
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
