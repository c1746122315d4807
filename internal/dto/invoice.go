package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// CreateLineItemRequest defines the payload for a single invoice line.
type CreateLineItemRequest struct {
	ProductID         int64           `json:"productID" binding:"required"`
	WarehouseID       int64           `json:"warehouseID"`
	Quantity          int64           `json:"quantity" binding:"required,gt=0"`
	Unit              string          `json:"unit"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice" binding:"required"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
}

// FeeRequest defines a single import fee with its own currency and rate.
type FeeRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,uppercase,len=3"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// FeeSetRequest defines the optional fee block of an import purchase.
type FeeSetRequest struct {
	Shipping     *FeeRequest `json:"shipping,omitempty"`
	Transporting *FeeRequest `json:"transporting,omitempty"`
	Uploading    *FeeRequest `json:"uploading,omitempty"`
	Tax          *FeeRequest `json:"tax,omitempty"`
}

// CreateInvoiceRequest defines the payload for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceType         domain.InvoiceType      `json:"invoiceType" binding:"required"`
	CustomerID          *int64                  `json:"customerID,omitempty"`
	SupplierID          *int64                  `json:"supplierID,omitempty"`
	Date                time.Time               `json:"date" binding:"required"`
	CurrencyCode        string                  `json:"currencyCode" binding:"required,uppercase,len=3"`
	ExchangeRate        decimal.Decimal         `json:"exchangeRate"`
	PaymentInstructions string                  `json:"paymentInstructions"`
	PaymentTerm         string                  `json:"paymentTerm"`
	Notes               string                  `json:"notes"`
	Fees                *FeeSetRequest          `json:"fees,omitempty"`
	LineItems           []CreateLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the payload for updating an invoice.
// Line items, when present, replace the existing set entirely.
type UpdateInvoiceRequest struct {
	Date                *time.Time              `json:"date,omitempty"`
	CurrencyCode        *string                 `json:"currencyCode,omitempty" binding:"omitempty,uppercase,len=3"`
	ExchangeRate        *decimal.Decimal        `json:"exchangeRate,omitempty"`
	PaymentInstructions *string                 `json:"paymentInstructions,omitempty"`
	PaymentTerm         *string                 `json:"paymentTerm,omitempty"`
	Notes               *string                 `json:"notes,omitempty"`
	Fees                *FeeSetRequest          `json:"fees,omitempty"`
	LineItems           []CreateLineItemRequest `json:"lineItems,omitempty" binding:"omitempty,min=1,dive"`
}

// LineItemResponse defines the data returned for an invoice line.
type LineItemResponse struct {
	LineItemID        int64           `json:"lineItemID"`
	ProductID         int64           `json:"productID"`
	WarehouseID       int64           `json:"warehouseID"`
	Quantity          int64           `json:"quantity"`
	Unit              string          `json:"unit,omitempty"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice"`
	AdjustedUnitPrice decimal.Decimal `json:"adjustedUnitPrice"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
}

// FeeResponse defines a single fee as returned to clients.
type FeeResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// FeeSetResponse defines the fee block as returned to clients.
type FeeSetResponse struct {
	Shipping     FeeResponse `json:"shipping"`
	Transporting FeeResponse `json:"transporting"`
	Uploading    FeeResponse `json:"uploading"`
	Tax          FeeResponse `json:"tax"`
}

// InvoiceResponse defines the data returned for an invoice.
// Monetary amounts are rounded to 2 decimal places for presentation;
// stored values keep full precision.
type InvoiceResponse struct {
	InvoiceID           string             `json:"invoiceID"`
	InvoiceType         domain.InvoiceType `json:"invoiceType"`
	CustomerID          *int64             `json:"customerID,omitempty"`
	SupplierID          *int64             `json:"supplierID,omitempty"`
	Date                time.Time          `json:"date"`
	CurrencyCode        string             `json:"currencyCode"`
	ExchangeRate        decimal.Decimal    `json:"exchangeRate"`
	TotalAmount         decimal.Decimal    `json:"totalAmount"`
	TaxAmount           decimal.Decimal    `json:"taxAmount"`
	Status              string             `json:"status"`
	PaymentInstructions string             `json:"paymentInstructions,omitempty"`
	PaymentTerm         string             `json:"paymentTerm,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	Fees                FeeSetResponse     `json:"fees"`
	LineItems           []LineItemResponse `json:"lineItems,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
}

// ListInvoicesParams defines pagination parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse defines the paginated response for listing invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func toFeeResponse(f domain.Fee) FeeResponse {
	return FeeResponse{
		Amount:       f.Amount.Round(2),
		CurrencyCode: string(f.CurrencyCode),
		ExchangeRate: f.ExchangeRate,
	}
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:        li.LineItemID,
		ProductID:         li.ProductID,
		WarehouseID:       li.WarehouseID,
		Quantity:          li.Quantity,
		Unit:              li.Unit,
		OriginalUnitPrice: li.OriginalUnitPrice.Round(2),
		AdjustedUnitPrice: li.AdjustedUnitPrice.Round(2),
		DiscountPercent:   li.DiscountPercent,
		TotalPrice:        li.TotalPrice.Round(2),
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]LineItemResponse, len(inv.LineItems))
	for i := range inv.LineItems {
		lines[i] = ToLineItemResponse(&inv.LineItems[i])
	}
	return InvoiceResponse{
		InvoiceID:           inv.InvoiceID,
		InvoiceType:         inv.InvoiceType,
		CustomerID:          inv.CustomerID,
		SupplierID:          inv.SupplierID,
		Date:                inv.Date,
		CurrencyCode:        string(inv.CurrencyCode),
		ExchangeRate:        inv.ExchangeRate,
		TotalAmount:         inv.TotalAmount.Round(2),
		TaxAmount:           inv.TaxAmount.Round(2),
		Status:              string(inv.Status),
		PaymentInstructions: inv.PaymentInstructions,
		PaymentTerm:         inv.PaymentTerm,
		Notes:               inv.Notes,
		Fees: FeeSetResponse{
			Shipping:     toFeeResponse(inv.Fees.Shipping),
			Transporting: toFeeResponse(inv.Fees.Transporting),
			Uploading:    toFeeResponse(inv.Fees.Uploading),
			Tax:          toFeeResponse(inv.Fees.Tax),
		},
		LineItems: lines,
		CreatedAt: inv.CreatedAt,
		CreatedBy: inv.CreatedBy,
	}
}
