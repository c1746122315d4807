package models

import "github.com/shopspring/decimal"

// LineItem is the persistence shape of an invoice line item row.
type LineItem struct {
	LineItemID        int64
	InvoiceID         string
	ProductID         int64
	WarehouseID       int64
	Quantity          int64
	Unit              string
	OriginalUnitPrice decimal.Decimal
	AdjustedUnitPrice decimal.Decimal
	DiscountPercent   decimal.Decimal
	TotalPrice        decimal.Decimal
	CurrencyCode      string
}
