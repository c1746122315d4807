package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
)

// exchangeRateService serves the fixed default rates offered at invoice and
// payment entry. Users can override the rate per transaction; these values
// only pre-fill the form.
type exchangeRateService struct {
	defaults map[domain.CurrencyCode]decimal.Decimal
}

// NewExchangeRateService creates a new exchange rate service with the
// built-in default rate table.
func NewExchangeRateService() portssvc.ExchangeRateSvc {
	return &exchangeRateService{
		defaults: map[domain.CurrencyCode]decimal.Decimal{
			domain.USD: decimal.NewFromInt(1),
			domain.IQD: decimal.NewFromInt(1310),
			domain.RMB: decimal.NewFromInt(7),
		},
	}
}

var _ portssvc.ExchangeRateSvc = (*exchangeRateService)(nil)

// DefaultRate returns the default USD rate for a currency.
func (s *exchangeRateService) DefaultRate(ctx context.Context, currencyCode domain.CurrencyCode) (decimal.Decimal, error) {
	rate, ok := s.defaults[currencyCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no default rate for currency %s", apperrors.ErrNotFound, currencyCode)
	}
	return rate, nil
}

// ListDefaultRates returns a copy of the default rate table.
func (s *exchangeRateService) ListDefaultRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(s.defaults))
	for code, rate := range s.defaults {
		rates[code] = rate
	}
	return rates, nil
}
