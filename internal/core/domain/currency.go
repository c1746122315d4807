package domain

// CurrencyCode identifies a supported currency.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	IQD CurrencyCode = "IQD"
	RMB CurrencyCode = "RMB"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string       `json:"symbol"`       // e.g., "$"
	Name         string       `json:"name"`         // e.g., "US Dollar"
	AuditFields
}
