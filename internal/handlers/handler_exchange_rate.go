package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

// exchangeRateHandler serves default exchange rate lookups used to prefill
// invoice and payment forms.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(s portssvc.ExchangeRateSvc) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: s}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvc) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listDefaultRates)
		rates.GET("/:currency", h.getDefaultRate)
	}
}

func (h *exchangeRateHandler) listDefaultRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListDefaultRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list default exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (h *exchangeRateHandler) getDefaultRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := domain.CurrencyCode(strings.ToUpper(c.Param("currency")))

	rate, err := h.exchangeRateService.DefaultRate(c.Request.Context(), currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No default rate for currency"})
		} else {
			logger.Error("Failed to get default exchange rate", slog.String("currency", string(currency)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencyCode": currency, "rate": rate})
}
