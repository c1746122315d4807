package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// ApplyPaymentRequest defines the payload for recording a payment.
// ContactRef carries the "{id} - {name}" form used by client pickers.
type ApplyPaymentRequest struct {
	ContactRef      string          `json:"contactRef" binding:"required"`
	ContactKind     string          `json:"contactKind" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Date            time.Time       `json:"date" binding:"required"`
	LinkedInvoiceID *string         `json:"linkedInvoiceID,omitempty"`
}

// UpdatePaymentRequest defines the payload for editing a recorded payment.
type UpdatePaymentRequest struct {
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,uppercase,len=3"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	Date         *time.Time       `json:"date,omitempty"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       int64           `json:"paymentID"`
	CustomerID      *int64          `json:"customerID,omitempty"`
	SupplierID      *int64          `json:"supplierID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Date            time.Time       `json:"date"`
	Status          string          `json:"status"`
	LinkedInvoiceID *string         `json:"linkedInvoiceID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ApplyPaymentResponse combines the recorded payment with the settlement
// outcome of the linked invoice, if any.
type ApplyPaymentResponse struct {
	Payment          PaymentResponse  `json:"payment"`
	InvoiceStatus    *string          `json:"invoiceStatus,omitempty"`
	RemainingBalance *decimal.Decimal `json:"remainingBalance,omitempty"`
}

// BalanceResponse defines the outstanding balance of a contact.
type BalanceResponse struct {
	ContactID int64           `json:"contactID"`
	Kind      string          `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	Label     string          `json:"label"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		CustomerID:      p.CustomerID,
		SupplierID:      p.SupplierID,
		Amount:          p.Amount.Round(2),
		CurrencyCode:    string(p.CurrencyCode),
		ExchangeRate:    p.ExchangeRate,
		Date:            p.Date,
		Status:          string(p.Status),
		LinkedInvoiceID: p.LinkedInvoiceID,
		CreatedAt:       p.CreatedAt,
	}
}

// ToBalanceResponse converts a domain.ContactBalance to BalanceResponse DTO.
func ToBalanceResponse(b *domain.ContactBalance) BalanceResponse {
	return BalanceResponse{
		ContactID: b.ContactID,
		Kind:      string(b.Kind),
		Balance:   b.Balance.Round(2),
		Label:     string(b.Label),
	}
}
