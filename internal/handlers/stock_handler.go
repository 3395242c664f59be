package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// StockHandler serves market prices from the shared quote cache.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GetPrices returns prices for several tickers
// @Summary     Batch prices
// @Description Price up to ten comma-separated tickers. Tickers without data map to null.
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       tickers query string true "Comma-separated tickers" example(VWRL,ISF)
// @Success     200 {object} map[string]interface{} "Prices by ticker"
// @Failure     400 {object} ErrorResponse "Missing or too many tickers"
// @Router      /stocks/prices [get]
func (h *StockHandler) GetPrices(c *gin.Context) {
	param := c.Query("tickers")
	if strings.TrimSpace(param) == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tickers parameter is required"))
		return
	}

	var tickers []string
	for _, t := range strings.Split(param, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}

	prices, err := h.stockService.GetPrices(c.Request.Context(), tickers)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": prices})
}

// GetQuote returns the price of one ticker
// @Summary     Single quote
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       ticker path string true "Ticker"
// @Success     200 {object} quotes.Quote "Quote"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Failure     404 {object} ErrorResponse "No data for ticker"
// @Failure     502 {object} ErrorResponse "Provider failure"
// @Router      /stocks/quote/{ticker} [get]
func (h *StockHandler) GetQuote(c *gin.Context) {
	quote, err := h.stockService.GetQuote(c.Request.Context(), strings.ToUpper(c.Param("ticker")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
