package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus records the direction of a payment: money received from a
// customer or money paid out to a supplier.
type PaymentStatus string

const (
	PaymentReceived PaymentStatus = "RECEIVED"
	PaymentPaid     PaymentStatus = "PAID"
)

// Payment is a settlement record against a contact. Exactly one of
// CustomerID/SupplierID is set. A payment may optionally be linked to an
// invoice, in which case recording it drives the invoice status transition.
type Payment struct {
	PaymentID       int64           `json:"paymentID"`
	CustomerID      *int64          `json:"customerID,omitempty"`
	SupplierID      *int64          `json:"supplierID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    CurrencyCode    `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // rate to USD
	Date            time.Time       `json:"date"`
	Status          PaymentStatus   `json:"status"`
	LinkedInvoiceID *string         `json:"linkedInvoiceID,omitempty"`
	AuditFields
}
