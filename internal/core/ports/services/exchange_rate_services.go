package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// ExchangeRateSvc provides default USD exchange rates for invoice and
// payment entry. Rates are quoted as units of the target currency per USD.
type ExchangeRateSvc interface {
	// DefaultRate returns the default USD rate for a currency. USD itself
	// always yields 1.
	DefaultRate(ctx context.Context, currencyCode domain.CurrencyCode) (decimal.Decimal, error)

	// ListDefaultRates returns all known default rates keyed by currency.
	ListDefaultRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error)
}
