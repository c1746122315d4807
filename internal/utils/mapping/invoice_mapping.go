package mapping

import (
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice header to its persistence shape.
// Line items are mapped separately; they live in their own table.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:            d.InvoiceID,
		InvoiceType:          string(d.InvoiceType),
		CustomerID:           d.CustomerID,
		SupplierID:           d.SupplierID,
		Date:                 d.Date,
		CurrencyCode:         string(d.CurrencyCode),
		ExchangeRate:         d.ExchangeRate,
		TotalAmount:          d.TotalAmount,
		TaxAmount:            d.TaxAmount,
		Status:               models.InvoiceStatus(d.Status),
		PaymentInstructions:  d.PaymentInstructions,
		PaymentTerm:          d.PaymentTerm,
		Notes:                d.Notes,
		ShippingFee:          d.Fees.Shipping.Amount,
		ShippingCurrency:     string(d.Fees.Shipping.CurrencyCode),
		ShippingRate:         d.Fees.Shipping.ExchangeRate,
		TransportingFee:      d.Fees.Transporting.Amount,
		TransportingCurrency: string(d.Fees.Transporting.CurrencyCode),
		TransportingRate:     d.Fees.Transporting.ExchangeRate,
		UploadingFee:         d.Fees.Uploading.Amount,
		UploadingCurrency:    string(d.Fees.Uploading.CurrencyCode),
		UploadingRate:        d.Fees.Uploading.ExchangeRate,
		TaxFee:               d.Fees.Tax.Amount,
		TaxFeeCurrency:       string(d.Fees.Tax.CurrencyCode),
		TaxFeeRate:           d.Fees.Tax.ExchangeRate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice header back to the domain shape.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:           m.InvoiceID,
		InvoiceType:         domain.InvoiceType(m.InvoiceType),
		CustomerID:          m.CustomerID,
		SupplierID:          m.SupplierID,
		Date:                m.Date,
		CurrencyCode:        domain.CurrencyCode(m.CurrencyCode),
		ExchangeRate:        m.ExchangeRate,
		TotalAmount:         m.TotalAmount,
		TaxAmount:           m.TaxAmount,
		Status:              domain.InvoiceStatus(m.Status),
		PaymentInstructions: m.PaymentInstructions,
		PaymentTerm:         m.PaymentTerm,
		Notes:               m.Notes,
		Fees: domain.FeeSet{
			Shipping:     domain.Fee{Amount: m.ShippingFee, CurrencyCode: domain.CurrencyCode(m.ShippingCurrency), ExchangeRate: m.ShippingRate},
			Transporting: domain.Fee{Amount: m.TransportingFee, CurrencyCode: domain.CurrencyCode(m.TransportingCurrency), ExchangeRate: m.TransportingRate},
			Uploading:    domain.Fee{Amount: m.UploadingFee, CurrencyCode: domain.CurrencyCode(m.UploadingCurrency), ExchangeRate: m.UploadingRate},
			Tax:          domain.Fee{Amount: m.TaxFee, CurrencyCode: domain.CurrencyCode(m.TaxFeeCurrency), ExchangeRate: m.TaxFeeRate},
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to its persistence shape.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:        d.LineItemID,
		InvoiceID:         d.InvoiceID,
		ProductID:         d.ProductID,
		WarehouseID:       d.WarehouseID,
		Quantity:          d.Quantity,
		Unit:              d.Unit,
		OriginalUnitPrice: d.OriginalUnitPrice,
		AdjustedUnitPrice: d.AdjustedUnitPrice,
		DiscountPercent:   d.DiscountPercent,
		TotalPrice:        d.TotalPrice,
		CurrencyCode:      string(d.CurrencyCode),
	}
}

// ToDomainLineItem converts a model LineItem back to the domain shape.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:        m.LineItemID,
		InvoiceID:         m.InvoiceID,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		OriginalUnitPrice: m.OriginalUnitPrice,
		AdjustedUnitPrice: m.AdjustedUnitPrice,
		DiscountPercent:   m.DiscountPercent,
		TotalPrice:        m.TotalPrice,
		CurrencyCode:      domain.CurrencyCode(m.CurrencyCode),
	}
}

// ToDomainLineItemSlice converts a slice of model line items.
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
