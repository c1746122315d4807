package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

func TestPrefixForType(t *testing.T) {
	tests := []struct {
		name        string
		invoiceType domain.InvoiceType
		want        string
	}{
		{name: "sale", invoiceType: domain.Sale, want: "Sell"},
		{name: "purchase", invoiceType: domain.Purchase, want: "Purch"},
		{name: "import purchase", invoiceType: domain.ImportPurchase, want: "Imp"},
		{name: "credit note", invoiceType: domain.CreditNote, want: "Cred"},
		{name: "unknown type falls back", invoiceType: domain.InvoiceType("Adjustment"), want: "Inv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PrefixForType(tt.invoiceType))
		})
	}
}

func TestFormatInvoiceID(t *testing.T) {
	assert.Equal(t, "Sell 00001", domain.FormatInvoiceID("Sell", 1))
	assert.Equal(t, "Imp 00043", domain.FormatInvoiceID("Imp", 43))
	assert.Equal(t, "Purch 12345", domain.FormatInvoiceID("Purch", 12345))
}

func TestContact_DisplayRef(t *testing.T) {
	c := domain.Contact{ContactID: 7, Kind: domain.Customer, Name: "Acme Trading"}
	assert.Equal(t, "7 - Acme Trading", c.DisplayRef())
}
