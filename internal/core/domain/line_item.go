package domain

import "github.com/shopspring/decimal"

// LineItem is a single product row on an invoice. Prices are stored in USD
// after input-time conversion. OriginalUnitPrice is never mutated after
// creation; it is the base for proportional fee allocation. AdjustedUnitPrice
// and TotalPrice are re-derived by fee allocation on import purchases.
type LineItem struct {
	LineItemID        int64           `json:"lineItemID"`
	InvoiceID         string          `json:"invoiceID"`
	ProductID         int64           `json:"productID"`
	WarehouseID       int64           `json:"warehouseID"`
	Quantity          int64           `json:"quantity"`
	Unit              string          `json:"unit"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice"` // USD, immutable post-creation
	AdjustedUnitPrice decimal.Decimal `json:"adjustedUnitPrice"` // USD
	DiscountPercent   decimal.Decimal `json:"discountPercent"`   // 0..100
	TotalPrice        decimal.Decimal `json:"totalPrice"`        // USD
	CurrencyCode      CurrencyCode    `json:"currencyCode"`      // input currency, recorded for display
}
