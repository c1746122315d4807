package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with its line items.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices, newest first.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// NextInvoiceID previews the identifier the next invoice of the given
	// type would receive. The authoritative assignment happens at save time.
	NextInvoiceID(ctx context.Context, invoiceType domain.InvoiceType) (string, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice with its line items, deriving
	// prices, fee allocation and the aggregate total.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice updates invoice details. When line items are supplied
	// they replace the existing set and all derived amounts are recomputed.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and its line items.
	DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// InvoiceCalculatorSvc defines the pure pricing computations of the engine.
// These take no repository round trips and are safe to call on drafts.
type InvoiceCalculatorSvc interface {
	// ComputeLineItem derives the adjusted unit price and line total from
	// the original price, discount percent and quantity.
	ComputeLineItem(item domain.LineItem) (domain.LineItem, error)

	// AllocateFees spreads the invoice fees across line items in proportion
	// to each line's share of the original value, returning the reworked
	// lines. Allocation always starts from original prices.
	AllocateFees(lines []domain.LineItem, fees domain.FeeSet) ([]domain.LineItem, error)

	// AggregateTotal sums line totals into the invoice display currency.
	AggregateTotal(lines []domain.LineItem, displayCurrency domain.CurrencyCode, displayRate decimal.Decimal) (decimal.Decimal, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceCalculatorSvc
}
