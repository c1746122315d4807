package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header with its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// GetInvoiceSettlementInfo retrieves just the total, currency, rate and
	// settlement status of an invoice, as needed by payment application.
	GetInvoiceSettlementInfo(ctx context.Context, invoiceID string) (*domain.InvoiceSettlementInfo, error)

	// ListInvoices retrieves a paginated list of invoice headers ordered by
	// date descending, using token pagination.
	ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// MaxInvoiceSequence returns the highest sequence number already issued for
	// the given ID prefix, or 0 when none exists. The authoritative read runs
	// inside SaveInvoice's transaction; this method serves previews only.
	MaxInvoiceSequence(ctx context.Context, prefix string) (int, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice header together with all its line
	// items in one transaction. The invoice ID is generated inside the same
	// transaction (read max sequence for prefix, insert row) and returned.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.LineItem) (string, error)

	// UpdateInvoice rewrites an invoice header and replaces its line items in
	// one transaction.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.LineItem) error

	// ReplaceLineItems deletes the existing line items of an invoice and
	// inserts the provided set, transactionally.
	ReplaceLineItems(ctx context.Context, invoiceID string, lineItems []domain.LineItem) error

	// UpdateInvoiceStatus sets the settlement status of an invoice.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error

	// DeleteInvoice removes an invoice and its line items.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSettlementSupport defines aggregate reads used by balance derivation.
type InvoiceSettlementSupport interface {
	// SumUnpaidInvoices sums, in USD, the totals of a contact's invoices of
	// the given type whose status is not PAID. Each total is converted by the
	// rate stored on its invoice.
	SumUnpaidInvoices(ctx context.Context, contactID int64, invoiceType domain.InvoiceType) (decimal.Decimal, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceSettlementSupport
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
