package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
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

// settlementService records payments, drives invoice status transitions and
// derives contact balances.
type settlementService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	contactRepo portsrepo.ContactRepository
	auditSvc    portssvc.AuditSvc
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, contactRepo portsrepo.ContactRepository, auditSvc portssvc.AuditSvc) portssvc.SettlementSvcFacade {
	return &settlementService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		auditSvc:    auditSvc,
	}
}

// Ensure settlementService implements the portssvc.SettlementSvcFacade interface
var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// ParseContactRef extracts the contact ID from a "{id} - {name}" reference.
// The name part is ignored; only the leading ID matters.
func ParseContactRef(ref string) (int64, error) {
	parts := strings.SplitN(ref, " - ", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrReferenceFormat, ref)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrReferenceFormat, ref)
	}
	return id, nil
}

// ApplyPayment records a payment against a contact, and when linked to an
// OPEN invoice, settles it: remaining = invoice total (USD) - payment (USD),
// PAID when nothing remains, PARTIALLY_PAID otherwise. Invoices in any other
// status are left untouched.
func (s *settlementService) ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, creatorUserID string) (*dto.ApplyPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	contactID, err := ParseContactRef(req.ContactRef)
	if err != nil {
		return nil, err
	}
	kind := domain.ContactKind(req.ContactKind)
	if _, err := s.contactRepo.FindContactByID(ctx, contactID, kind); err != nil {
		return nil, fmt.Errorf("failed to verify contact %d: %w", contactID, err)
	}

	currency := domain.CurrencyCode(req.CurrencyCode)
	paymentUSD, err := fx.ToUSD(req.Amount, currency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := domain.Payment{
		Amount:          req.Amount,
		CurrencyCode:    currency,
		ExchangeRate:    req.ExchangeRate,
		Date:            req.Date,
		LinkedInvoiceID: req.LinkedInvoiceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if kind == domain.Supplier {
		payment.SupplierID = &contactID
		payment.Status = domain.PaymentPaid
	} else {
		payment.CustomerID = &contactID
		payment.Status = domain.PaymentReceived
	}

	paymentID, err := s.paymentRepo.InsertPayment(ctx, payment)
	if err != nil {
		logger.Error("failed to insert payment", "contact_id", contactID, "error", err)
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	payment.PaymentID = paymentID

	resp := &dto.ApplyPaymentResponse{Payment: dto.ToPaymentResponse(&payment)}

	if req.LinkedInvoiceID != nil {
		status, remaining, err := s.settleInvoice(ctx, *req.LinkedInvoiceID, paymentUSD, creatorUserID)
		if err != nil {
			return nil, err
		}
		if status != "" {
			statusStr := string(status)
			remainingRounded := remaining.Round(2)
			resp.InvoiceStatus = &statusStr
			resp.RemainingBalance = &remainingRounded
		}
	}

	if err := s.auditSvc.RecordChange(ctx, creatorUserID, "payments", strconv.FormatInt(paymentID, 10), "INSERT", "",
		fmt.Sprintf("amount=%s %s", req.Amount.Round(2), currency)); err != nil {
		logger.Warn("audit record failed for payment", "payment_id", paymentID, "error", err)
	}

	logger.Info("payment recorded", "payment_id", paymentID, "contact_id", contactID, "kind", kind)
	return resp, nil
}

// settleInvoice applies a USD payment amount against an invoice. Only OPEN
// invoices transition; a payment against a PARTIALLY_PAID or PAID invoice is
// recorded without touching the invoice again.
func (s *settlementService) settleInvoice(ctx context.Context, invoiceID string, paymentUSD decimal.Decimal, userID string) (domain.InvoiceStatus, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	info, err := s.invoiceRepo.GetInvoiceSettlementInfo(ctx, invoiceID)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to load invoice %s for settlement: %w", invoiceID, err)
	}
	if info.Status != domain.StatusOpen {
		logger.Info("linked invoice not open, status unchanged", "invoice_id", invoiceID, "status", info.Status)
		return "", decimal.Zero, nil
	}

	totalUSD, err := fx.ToUSD(info.TotalAmount, info.CurrencyCode, info.ExchangeRate)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to convert invoice total for %s: %w", invoiceID, err)
	}

	remaining := totalUSD.Sub(paymentUSD)
	newStatus := domain.StatusPartiallyPaid
	if remaining.LessThanOrEqual(decimal.Zero) {
		newStatus = domain.StatusPaid
		remaining = decimal.Zero
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, newStatus); err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}

	if err := s.auditSvc.RecordChange(ctx, userID, "invoices", invoiceID, "UPDATE",
		fmt.Sprintf("status=%s", domain.StatusOpen), fmt.Sprintf("status=%s", newStatus)); err != nil {
		logger.Warn("audit record failed for invoice settlement", "invoice_id", invoiceID, "error", err)
	}

	logger.Info("invoice settled", "invoice_id", invoiceID, "status", newStatus, "remaining_usd", remaining.String())
	return newStatus, remaining, nil
}

// UpdatePayment edits a recorded payment. The linked invoice, if any, keeps
// its current status; settlement is not re-evaluated.
func (s *settlementService) UpdatePayment(ctx context.Context, paymentID int64, req dto.UpdatePaymentRequest, requestingUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %d: %w", paymentID, err)
	}
	oldAmount := payment.Amount

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		payment.CurrencyCode = domain.CurrencyCode(*req.CurrencyCode)
	}
	if req.ExchangeRate != nil {
		payment.ExchangeRate = *req.ExchangeRate
	}
	if req.Date != nil {
		payment.Date = *req.Date
	}
	if payment.CurrencyCode != domain.USD && payment.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate %s for currency %s", apperrors.ErrInvalidRate, payment.ExchangeRate.String(), payment.CurrencyCode)
	}

	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = requestingUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Error("failed to update payment", "payment_id", paymentID, "error", err)
		return nil, fmt.Errorf("failed to update payment %d: %w", paymentID, err)
	}

	if err := s.auditSvc.RecordChange(ctx, requestingUserID, "payments", strconv.FormatInt(paymentID, 10), "UPDATE",
		fmt.Sprintf("amount=%s", oldAmount.Round(2)), fmt.Sprintf("amount=%s", payment.Amount.Round(2))); err != nil {
		logger.Warn("audit record failed for payment update", "payment_id", paymentID, "error", err)
	}

	return payment, nil
}

// DeletePayment removes a recorded payment. The linked invoice, if any,
// keeps its current status.
func (s *settlementService) DeletePayment(ctx context.Context, paymentID int64, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to find payment %d: %w", paymentID, err)
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		logger.Error("failed to delete payment", "payment_id", paymentID, "error", err)
		return fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
	}

	if err := s.auditSvc.RecordChange(ctx, requestingUserID, "payments", strconv.FormatInt(paymentID, 10), "DELETE",
		fmt.Sprintf("amount=%s %s", payment.Amount.Round(2), payment.CurrencyCode), ""); err != nil {
		logger.Warn("audit record failed for payment deletion", "payment_id", paymentID, "error", err)
	}

	logger.Info("payment deleted", "payment_id", paymentID)
	return nil
}

// GetPaymentByID retrieves a payment.
func (s *settlementService) GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %d: %w", paymentID, err)
	}
	return payment, nil
}

// ListPaymentsByContact retrieves payments recorded against a contact.
func (s *settlementService) ListPaymentsByContact(ctx context.Context, contactID int64, kind domain.ContactKind) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByContact(ctx, contactID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for contact %d: %w", contactID, err)
	}
	return payments, nil
}

// GetContactBalance derives the outstanding balance of a contact in USD.
// Customers: unpaid Sale invoices minus payments received, positive means
// the customer owes us. Suppliers: unpaid Import Purchase invoices minus
// payments made, positive means we owe the supplier.
func (s *settlementService) GetContactBalance(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.ContactBalance, error) {
	if _, err := s.contactRepo.FindContactByID(ctx, contactID, kind); err != nil {
		return nil, fmt.Errorf("failed to verify contact %d: %w", contactID, err)
	}

	invoiceType := domain.Sale
	label := domain.OwesUs
	if kind == domain.Supplier {
		invoiceType = domain.ImportPurchase
		label = domain.WeOwe
	}

	unpaid, err := s.invoiceRepo.SumUnpaidInvoices(ctx, contactID, invoiceType)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unpaid invoices for contact %d: %w", contactID, err)
	}
	paid, err := s.paymentRepo.SumPayments(ctx, contactID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments for contact %d: %w", contactID, err)
	}

	return &domain.ContactBalance{
		ContactID: contactID,
		Kind:      kind,
		Balance:   unpaid.Sub(paid),
		Label:     label,
	}, nil
}
