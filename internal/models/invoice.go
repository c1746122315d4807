package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors domain.InvoiceStatus at the persistence boundary.
type InvoiceStatus string

// Invoice is the persistence shape of an invoice header row.
type Invoice struct {
	InvoiceID           string
	InvoiceType         string
	CustomerID          *int64
	SupplierID          *int64
	Date                time.Time
	CurrencyCode        string
	ExchangeRate        decimal.Decimal
	TotalAmount         decimal.Decimal
	TaxAmount           decimal.Decimal
	Status              InvoiceStatus
	PaymentInstructions string
	PaymentTerm         string
	Notes               string
	ShippingFee         decimal.Decimal
	ShippingCurrency    string
	ShippingRate        decimal.Decimal
	TransportingFee     decimal.Decimal
	TransportingCurrency string
	TransportingRate    decimal.Decimal
	UploadingFee        decimal.Decimal
	UploadingCurrency   string
	UploadingRate       decimal.Decimal
	TaxFee              decimal.Decimal
	TaxFeeCurrency      string
	TaxFeeRate          decimal.Decimal
	AuditFields
}
