package mapping

import (
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/models"
)

// ToModelPayment converts a domain Payment to its persistence shape.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		CustomerID:      d.CustomerID,
		SupplierID:      d.SupplierID,
		Amount:          d.Amount,
		CurrencyCode:    string(d.CurrencyCode),
		ExchangeRate:    d.ExchangeRate,
		Date:            d.Date,
		Status:          string(d.Status),
		LinkedInvoiceID: d.LinkedInvoiceID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment back to the domain shape.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		CustomerID:      m.CustomerID,
		SupplierID:      m.SupplierID,
		Amount:          m.Amount,
		CurrencyCode:    domain.CurrencyCode(m.CurrencyCode),
		ExchangeRate:    m.ExchangeRate,
		Date:            m.Date,
		Status:          domain.PaymentStatus(m.Status),
		LinkedInvoiceID: m.LinkedInvoiceID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
