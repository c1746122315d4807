package fx_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/utils/fx"
)

func TestToUSD_USDPassesThrough(t *testing.T) {
	amount := decimal.NewFromFloat(123.45)
	got, err := fx.ToUSD(amount, domain.USD, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, amount.Equal(got))
}

func TestToUSD_DividesByRate(t *testing.T) {
	got, err := fx.ToUSD(decimal.NewFromInt(1310), domain.IQD, decimal.NewFromInt(1310))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(got))
}

func TestToUSD_NonPositiveRate(t *testing.T) {
	_, err := fx.ToUSD(decimal.NewFromInt(100), domain.RMB, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)

	_, err = fx.ToUSD(decimal.NewFromInt(100), domain.RMB, decimal.NewFromInt(-7))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}

func TestFromUSD_MultipliesByRate(t *testing.T) {
	got, err := fx.FromUSD(decimal.NewFromInt(10), domain.RMB, decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(got))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency domain.CurrencyCode
		rate     decimal.Decimal
	}{
		{name: "IQD market rate", amount: decimal.NewFromInt(250000), currency: domain.IQD, rate: decimal.NewFromInt(1310)},
		{name: "RMB", amount: decimal.NewFromFloat(99.99), currency: domain.RMB, rate: decimal.NewFromInt(7)},
		{name: "fractional rate", amount: decimal.NewFromInt(42), currency: domain.IQD, rate: decimal.NewFromFloat(1305.5)},
	}

	epsilon := decimal.New(1, -9)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usd, err := fx.ToUSD(tt.amount, tt.currency, tt.rate)
			require.NoError(t, err)
			back, err := fx.FromUSD(usd, tt.currency, tt.rate)
			require.NoError(t, err)
			assert.True(t, back.Sub(tt.amount).Abs().LessThan(epsilon),
				"round trip drifted: %s -> %s", tt.amount, back)
		})
	}
}

func TestFeeToUSD(t *testing.T) {
	fee := domain.Fee{
		Amount:       decimal.NewFromInt(1310),
		CurrencyCode: domain.IQD,
		ExchangeRate: decimal.NewFromInt(1310),
	}
	got, err := fx.FeeToUSD(fee)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(got))
}
