package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)

	// ListPaymentsByContact retrieves all payments recorded against a contact,
	// newest first.
	ListPaymentsByContact(ctx context.Context, contactID int64, kind domain.ContactKind) ([]domain.Payment, error)

	// SumPayments sums, in USD, the payment amounts recorded for a contact of
	// the given kind, converting each amount by the rate stored on its row.
	// Customer sums cover rows where customerId is set and supplierId is null;
	// supplier sums the inverse.
	SumPayments(ctx context.Context, contactID int64, kind domain.ContactKind) (decimal.Decimal, error)
}

// PaymentWriter defines write operations for payment data.
type PaymentWriter interface {
	// InsertPayment persists a new payment row and returns its ID.
	InsertPayment(ctx context.Context, payment domain.Payment) (int64, error)

	// UpdatePayment rewrites the mutable fields of a payment (amount, date,
	// currency, rate, status). It never touches any linked invoice.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment removes a payment row. It never touches any linked invoice.
	DeletePayment(ctx context.Context, paymentID int64) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
