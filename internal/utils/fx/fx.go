// Package fx holds the pure currency conversion arithmetic shared by the
// pricing, allocation and settlement services. Rates always travel with the
// transaction; nothing in this package consults a rate table.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// ToUSD converts an amount in the given currency to USD using the supplied
// rate (units of currency per USD). USD amounts pass through untouched.
func ToUSD(amount decimal.Decimal, currency domain.CurrencyCode, rate decimal.Decimal) (decimal.Decimal, error) {
	if currency == domain.USD {
		return amount, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: rate %s for currency %s", apperrors.ErrInvalidRate, rate.String(), currency)
	}
	return amount.Div(rate), nil
}

// FromUSD converts a USD amount into the given currency using the supplied
// rate. USD amounts pass through untouched.
func FromUSD(amountUSD decimal.Decimal, currency domain.CurrencyCode, rate decimal.Decimal) (decimal.Decimal, error) {
	if currency == domain.USD {
		return amountUSD, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: rate %s for currency %s", apperrors.ErrInvalidRate, rate.String(), currency)
	}
	return amountUSD.Mul(rate), nil
}

// FeeToUSD converts a single landed-cost fee to USD using the rate it carries.
func FeeToUSD(fee domain.Fee) (decimal.Decimal, error) {
	return ToUSD(fee.Amount, fee.CurrencyCode, fee.ExchangeRate)
}
