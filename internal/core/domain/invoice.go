package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType classifies an invoice. Import purchases are supplier-side and
// carry landed-cost fees; all other types are customer-side.
type InvoiceType string

const (
	Sale           InvoiceType = "Sale"
	Purchase       InvoiceType = "Purchase"
	ImportPurchase InvoiceType = "Import Purchase"
	CreditNote     InvoiceType = "Credit Note"
)

// InvoiceStatus indicates the settlement state of an invoice.
type InvoiceStatus string

const (
	StatusOpen          InvoiceStatus = "OPEN"
	StatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	StatusPaid          InvoiceStatus = "PAID"
	StatusCancelled     InvoiceStatus = "CANCELLED"
)

// Fee is a single landed-cost charge, independently priced and converted.
type Fee struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode CurrencyCode    `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // rate to USD, caller-supplied
}

// FeeSet holds the four landed-cost fee categories of an import purchase.
type FeeSet struct {
	Shipping     Fee `json:"shipping"`
	Transporting Fee `json:"transporting"`
	Uploading    Fee `json:"uploading"`
	Tax          Fee `json:"tax"`
}

// All returns the fees in a fixed order for iteration.
func (f FeeSet) All() []Fee {
	return []Fee{f.Shipping, f.Transporting, f.Uploading, f.Tax}
}

// Invoice is the header of a billing document plus its line items.
// CustomerID is set for Sale/Purchase/Credit Note invoices; SupplierID is set
// for Import Purchase invoices. The two are mutually exclusive.
type Invoice struct {
	InvoiceID           string          `json:"invoiceID"` // e.g. "Sell 00042"
	InvoiceType         InvoiceType     `json:"invoiceType"`
	CustomerID          *int64          `json:"customerID,omitempty"`
	SupplierID          *int64          `json:"supplierID,omitempty"`
	Date                time.Time       `json:"date"`
	CurrencyCode        CurrencyCode    `json:"currencyCode"` // display currency
	ExchangeRate        decimal.Decimal `json:"exchangeRate"` // display currency rate to USD
	TotalAmount         decimal.Decimal `json:"totalAmount"`  // in display currency
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	Status              InvoiceStatus   `json:"status"`
	PaymentInstructions string          `json:"paymentInstructions"`
	PaymentTerm         string          `json:"paymentTerm"`
	Notes               string          `json:"notes"`
	Fees                FeeSet          `json:"fees"`
	LineItems           []LineItem      `json:"lineItems,omitempty"`
	AuditFields
}

// InvoiceSettlementInfo is the slice of an invoice header that payment
// application needs: enough to convert the total to USD and gate the
// status transition.
type InvoiceSettlementInfo struct {
	InvoiceID    string
	TotalAmount  decimal.Decimal
	CurrencyCode CurrencyCode
	ExchangeRate decimal.Decimal
	Status       InvoiceStatus
}

// PrefixForType maps an invoice type to its human-readable ID prefix.
func PrefixForType(t InvoiceType) string {
	switch t {
	case Sale:
		return "Sell"
	case Purchase:
		return "Purch"
	case ImportPurchase:
		return "Imp"
	case CreditNote:
		return "Cred"
	default:
		return "Inv"
	}
}

// FormatInvoiceID renders a type prefix and sequence number as a display ID.
// Sequences start at 1 and render zero-padded to five digits.
func FormatInvoiceID(prefix string, seq int) string {
	return fmt.Sprintf("%s %05d", prefix, seq)
}
