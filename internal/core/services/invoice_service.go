package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
	"github.com/zhiyar-dev/finman_backend/internal/utils/fx"
)

var (
	ErrUnknownInvoiceType = errors.New("unknown invoice type")
	ErrContactMismatch    = errors.New("invoice contact does not match its type")
	ErrNoLineItems        = errors.New("invoice must have at least one line item")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var oneHundred = decimal.NewFromInt(100)

// invoiceService provides invoice pricing, fee allocation and persistence.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	contactRepo portsrepo.ContactRepository
	auditSvc    portssvc.AuditSvc
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryWithTx, contactRepo portsrepo.ContactRepository, auditSvc portssvc.AuditSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		auditSvc:    auditSvc,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// ComputeLineItem derives the adjusted unit price and line total.
// adjusted = original * (1 - discount/100), total = quantity * adjusted.
// The original unit price is left untouched.
func (s *invoiceService) ComputeLineItem(item domain.LineItem) (domain.LineItem, error) {
	if item.Quantity <= 0 {
		return item, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if item.OriginalUnitPrice.IsNegative() {
		return item, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
	}
	if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(oneHundred) {
		return item, fmt.Errorf("%w: discount percent must be between 0 and 100", apperrors.ErrValidation)
	}

	discountFraction := item.DiscountPercent.Div(oneHundred)
	item.AdjustedUnitPrice = item.OriginalUnitPrice.Mul(decimal.NewFromInt(1).Sub(discountFraction))
	item.TotalPrice = decimal.NewFromInt(item.Quantity).Mul(item.AdjustedUnitPrice)
	return item, nil
}

// AllocateFees spreads the fee total across line items in proportion to each
// line's share of the pre-discount value. Every run starts from the original
// unit prices, so re-allocating after a fee edit never compounds, and any
// line discount is superseded by the landed-cost markup.
//
// factor = totalFeesUSD / sum(original * quantity); each adjusted unit price
// becomes original * (1 + factor). A zero base value leaves lines unchanged.
func (s *invoiceService) AllocateFees(lines []domain.LineItem, fees domain.FeeSet) ([]domain.LineItem, error) {
	totalFeesUSD := decimal.Zero
	for _, fee := range fees.All() {
		if fee.Amount.IsZero() {
			continue
		}
		feeUSD, err := fx.FeeToUSD(fee)
		if err != nil {
			return nil, fmt.Errorf("failed to convert fee to USD: %w", err)
		}
		totalFeesUSD = totalFeesUSD.Add(feeUSD)
	}

	baseValue := decimal.Zero
	for _, line := range lines {
		baseValue = baseValue.Add(line.OriginalUnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	factor := decimal.Zero
	if !totalFeesUSD.IsZero() && baseValue.IsPositive() {
		factor = totalFeesUSD.Div(baseValue)
	}

	out := make([]domain.LineItem, len(lines))
	for i, line := range lines {
		line.AdjustedUnitPrice = line.OriginalUnitPrice.Mul(decimal.NewFromInt(1).Add(factor))
		line.TotalPrice = decimal.NewFromInt(line.Quantity).Mul(line.AdjustedUnitPrice)
		out[i] = line
	}
	return out, nil
}

// AggregateTotal sums line totals (stored in USD) and converts the sum into
// the invoice display currency. Fees are never added here: on import
// purchases they are already folded into the line totals by allocation.
func (s *invoiceService) AggregateTotal(lines []domain.LineItem, displayCurrency domain.CurrencyCode, displayRate decimal.Decimal) (decimal.Decimal, error) {
	sumUSD := decimal.Zero
	for _, line := range lines {
		sumUSD = sumUSD.Add(line.TotalPrice)
	}
	total, err := fx.FromUSD(sumUSD, displayCurrency, displayRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert invoice total: %w", err)
	}
	return total, nil
}

// CreateInvoice derives all prices, allocates fees on import purchases,
// aggregates the total and persists the invoice. The invoice ID is assigned
// inside the save transaction.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateInvoiceType(req.InvoiceType); err != nil {
		return nil, err
	}
	if err := validateContactLinkage(req.InvoiceType, req.CustomerID, req.SupplierID); err != nil {
		return nil, err
	}
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoLineItems)
	}

	displayCurrency := domain.CurrencyCode(req.CurrencyCode)
	if displayCurrency != domain.USD && req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate %s for currency %s", apperrors.ErrInvalidRate, req.ExchangeRate.String(), displayCurrency)
	}

	if err := s.verifyContact(ctx, req.InvoiceType, req.CustomerID, req.SupplierID); err != nil {
		return nil, err
	}

	lines, err := s.buildLineItems(req.LineItems, displayCurrency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	fees := feeSetFromRequest(req.Fees, displayCurrency, req.ExchangeRate)
	if req.InvoiceType == domain.ImportPurchase {
		lines, err = s.AllocateFees(lines, fees)
		if err != nil {
			return nil, err
		}
	}

	total, err := s.AggregateTotal(lines, displayCurrency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	taxAmount, err := taxInDisplayCurrency(fees.Tax, displayCurrency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceType:         req.InvoiceType,
		CustomerID:          req.CustomerID,
		SupplierID:          req.SupplierID,
		Date:                req.Date,
		CurrencyCode:        displayCurrency,
		ExchangeRate:        req.ExchangeRate,
		TotalAmount:         total,
		TaxAmount:           taxAmount,
		Status:              domain.StatusOpen,
		PaymentInstructions: req.PaymentInstructions,
		PaymentTerm:         req.PaymentTerm,
		Notes:               req.Notes,
		Fees:                fees,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	invoiceID, err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines)
	if err != nil {
		logger.Error("failed to save invoice", "invoice_type", req.InvoiceType, "error", err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	invoice.InvoiceID = invoiceID
	for i := range lines {
		lines[i].InvoiceID = invoiceID
	}
	invoice.LineItems = lines

	if err := s.auditSvc.RecordChange(ctx, creatorUserID, "invoices", invoiceID, "INSERT", "", fmt.Sprintf("total=%s %s", total.Round(2), displayCurrency)); err != nil {
		logger.Warn("audit record failed for invoice creation", "invoice_id", invoiceID, "error", err)
	}

	logger.Info("invoice created", "invoice_id", invoiceID, "invoice_type", invoice.InvoiceType, "total", total.String())
	return &invoice, nil
}

// UpdateInvoice applies header changes, replaces line items when a new set is
// supplied, and recomputes all derived amounts. Import purchase fee edits
// re-run allocation from the original unit prices.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	oldTotal := invoice.TotalAmount

	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.CurrencyCode != nil {
		invoice.CurrencyCode = domain.CurrencyCode(*req.CurrencyCode)
	}
	if req.ExchangeRate != nil {
		invoice.ExchangeRate = *req.ExchangeRate
	}
	if req.PaymentInstructions != nil {
		invoice.PaymentInstructions = *req.PaymentInstructions
	}
	if req.PaymentTerm != nil {
		invoice.PaymentTerm = *req.PaymentTerm
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if invoice.CurrencyCode != domain.USD && invoice.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate %s for currency %s", apperrors.ErrInvalidRate, invoice.ExchangeRate.String(), invoice.CurrencyCode)
	}
	if req.Fees != nil {
		invoice.Fees = feeSetFromRequest(req.Fees, invoice.CurrencyCode, invoice.ExchangeRate)
	}

	lines := invoice.LineItems
	if req.LineItems != nil {
		lines, err = s.buildLineItems(req.LineItems, invoice.CurrencyCode, invoice.ExchangeRate)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].InvoiceID = invoiceID
		}
	}

	if invoice.InvoiceType == domain.ImportPurchase {
		lines, err = s.AllocateFees(lines, invoice.Fees)
		if err != nil {
			return nil, err
		}
	}

	invoice.TotalAmount, err = s.AggregateTotal(lines, invoice.CurrencyCode, invoice.ExchangeRate)
	if err != nil {
		return nil, err
	}
	invoice.TaxAmount, err = taxInDisplayCurrency(invoice.Fees.Tax, invoice.CurrencyCode, invoice.ExchangeRate)
	if err != nil {
		return nil, err
	}

	invoice.LineItems = lines
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, lines); err != nil {
		logger.Error("failed to update invoice", "invoice_id", invoiceID, "error", err)
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	if err := s.auditSvc.RecordChange(ctx, requestingUserID, "invoices", invoiceID, "UPDATE",
		fmt.Sprintf("total=%s", oldTotal.Round(2)), fmt.Sprintf("total=%s", invoice.TotalAmount.Round(2))); err != nil {
		logger.Warn("audit record failed for invoice update", "invoice_id", invoiceID, "error", err)
	}

	logger.Info("invoice updated", "invoice_id", invoiceID, "total", invoice.TotalAmount.String())
	return invoice, nil
}

// DeleteInvoice removes an invoice and its line items.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		logger.Error("failed to delete invoice", "invoice_id", invoiceID, "error", err)
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}

	if err := s.auditSvc.RecordChange(ctx, requestingUserID, "invoices", invoiceID, "DELETE",
		fmt.Sprintf("total=%s %s", invoice.TotalAmount.Round(2), invoice.CurrencyCode), ""); err != nil {
		logger.Warn("audit record failed for invoice deletion", "invoice_id", invoiceID, "error", err)
	}

	logger.Info("invoice deleted", "invoice_id", invoiceID)
	return nil
}

// GetInvoiceByID retrieves an invoice with its line items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves a paginated list of invoices, newest first.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return &dto.ListInvoicesResponse{
		Invoices:  responses,
		NextToken: nextToken,
	}, nil
}

// NextInvoiceID previews the ID the next invoice of the given type would get.
// The preview can go stale under concurrent saves; the authoritative sequence
// read happens inside the save transaction.
func (s *invoiceService) NextInvoiceID(ctx context.Context, invoiceType domain.InvoiceType) (string, error) {
	if err := validateInvoiceType(invoiceType); err != nil {
		return "", err
	}
	prefix := domain.PrefixForType(invoiceType)
	maxSeq, err := s.invoiceRepo.MaxInvoiceSequence(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read invoice sequence for prefix %s: %w", prefix, err)
	}
	return domain.FormatInvoiceID(prefix, maxSeq+1), nil
}

// buildLineItems converts request lines into domain lines with USD prices and
// derived amounts. A line missing its own rate inherits the invoice rate when
// the currencies match.
func (s *invoiceService) buildLineItems(reqLines []dto.CreateLineItemRequest, invoiceCurrency domain.CurrencyCode, invoiceRate decimal.Decimal) ([]domain.LineItem, error) {
	lines := make([]domain.LineItem, len(reqLines))
	for i, rl := range reqLines {
		lineCurrency := domain.CurrencyCode(rl.CurrencyCode)
		lineRate := rl.ExchangeRate
		if lineRate.IsZero() && lineCurrency == invoiceCurrency {
			lineRate = invoiceRate
		}

		originalUSD, err := fx.ToUSD(rl.OriginalUnitPrice, lineCurrency, lineRate)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		line := domain.LineItem{
			ProductID:         rl.ProductID,
			WarehouseID:       rl.WarehouseID,
			Quantity:          rl.Quantity,
			Unit:              rl.Unit,
			OriginalUnitPrice: originalUSD,
			DiscountPercent:   rl.DiscountPercent,
			CurrencyCode:      lineCurrency,
		}
		line, err = s.ComputeLineItem(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = line
	}
	return lines, nil
}

// verifyContact checks that the linked customer or supplier exists.
func (s *invoiceService) verifyContact(ctx context.Context, invoiceType domain.InvoiceType, customerID, supplierID *int64) error {
	if invoiceType == domain.ImportPurchase {
		if _, err := s.contactRepo.FindContactByID(ctx, *supplierID, domain.Supplier); err != nil {
			return fmt.Errorf("failed to verify supplier %d: %w", *supplierID, err)
		}
		return nil
	}
	if _, err := s.contactRepo.FindContactByID(ctx, *customerID, domain.Customer); err != nil {
		return fmt.Errorf("failed to verify customer %d: %w", *customerID, err)
	}
	return nil
}

func validateInvoiceType(t domain.InvoiceType) error {
	switch t {
	case domain.Sale, domain.Purchase, domain.ImportPurchase, domain.CreditNote:
		return nil
	default:
		return fmt.Errorf("%w: %w: %q", apperrors.ErrValidation, ErrUnknownInvoiceType, t)
	}
}

// validateContactLinkage enforces the customer/supplier split: import
// purchases link a supplier, every other type links a customer.
func validateContactLinkage(t domain.InvoiceType, customerID, supplierID *int64) error {
	if t == domain.ImportPurchase {
		if supplierID == nil || customerID != nil {
			return fmt.Errorf("%w: %w: import purchase requires a supplier and no customer", apperrors.ErrValidation, ErrContactMismatch)
		}
		return nil
	}
	if customerID == nil || supplierID != nil {
		return fmt.Errorf("%w: %w: %s requires a customer and no supplier", apperrors.ErrValidation, ErrContactMismatch, t)
	}
	return nil
}

// feeSetFromRequest fills in a fee set, defaulting each fee's currency and
// rate to the invoice's when unset.
func feeSetFromRequest(req *dto.FeeSetRequest, invoiceCurrency domain.CurrencyCode, invoiceRate decimal.Decimal) domain.FeeSet {
	if req == nil {
		return domain.FeeSet{}
	}
	return domain.FeeSet{
		Shipping:     feeFromRequest(req.Shipping, invoiceCurrency, invoiceRate),
		Transporting: feeFromRequest(req.Transporting, invoiceCurrency, invoiceRate),
		Uploading:    feeFromRequest(req.Uploading, invoiceCurrency, invoiceRate),
		Tax:          feeFromRequest(req.Tax, invoiceCurrency, invoiceRate),
	}
}

func feeFromRequest(req *dto.FeeRequest, invoiceCurrency domain.CurrencyCode, invoiceRate decimal.Decimal) domain.Fee {
	if req == nil {
		return domain.Fee{}
	}
	fee := domain.Fee{
		Amount:       req.Amount,
		CurrencyCode: domain.CurrencyCode(req.CurrencyCode),
		ExchangeRate: req.ExchangeRate,
	}
	if fee.CurrencyCode == "" {
		fee.CurrencyCode = invoiceCurrency
		if fee.ExchangeRate.IsZero() {
			fee.ExchangeRate = invoiceRate
		}
	}
	return fee
}

// taxInDisplayCurrency converts the tax fee into the invoice display
// currency for the header's tax column. The tax is already part of the
// allocated line totals on import purchases; this value is informational.
func taxInDisplayCurrency(tax domain.Fee, displayCurrency domain.CurrencyCode, displayRate decimal.Decimal) (decimal.Decimal, error) {
	if tax.Amount.IsZero() {
		return decimal.Zero, nil
	}
	taxUSD, err := fx.FeeToUSD(tax)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert tax fee: %w", err)
	}
	taxDisplay, err := fx.FromUSD(taxUSD, displayCurrency, displayRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert tax fee: %w", err)
	}
	return taxDisplay, nil
}
