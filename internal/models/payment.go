package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the persistence shape of a payment row.
type Payment struct {
	PaymentID       int64
	CustomerID      *int64
	SupplierID      *int64
	Amount          decimal.Decimal
	CurrencyCode    string
	ExchangeRate    decimal.Decimal
	Date            time.Time
	Status          string
	LinkedInvoiceID *string
	AuditFields
}
