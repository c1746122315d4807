package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/core/services"
)

func TestDefaultRate(t *testing.T) {
	svc := services.NewExchangeRateService()
	ctx := context.Background()

	tests := []struct {
		currency domain.CurrencyCode
		want     string
	}{
		{domain.USD, "1"},
		{domain.IQD, "1310"},
		{domain.RMB, "7"},
	}
	for _, tt := range tests {
		rate, err := svc.DefaultRate(ctx, tt.currency)
		require.NoError(t, err, "DefaultRate(%s)", tt.currency)
		assert.True(t, rate.Equal(decimal.RequireFromString(tt.want)), "DefaultRate(%s) = %s, want %s", tt.currency, rate, tt.want)
	}
}

func TestDefaultRate_UnknownCurrency(t *testing.T) {
	svc := services.NewExchangeRateService()

	_, err := svc.DefaultRate(context.Background(), "EUR")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListDefaultRates_ReturnsCopy(t *testing.T) {
	svc := services.NewExchangeRateService()
	ctx := context.Background()

	rates, err := svc.ListDefaultRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 3)

	// Mutating the returned map must not leak into the service.
	rates[domain.IQD] = decimal.NewFromInt(1)
	again, err := svc.ListDefaultRates(ctx)
	require.NoError(t, err)
	assert.True(t, again[domain.IQD].Equal(decimal.NewFromInt(1310)))
}
