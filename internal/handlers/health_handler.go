package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// HealthHandler reports liveness and quote cache state.
type HealthHandler struct {
	stockService services.StockServicer
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(stockService services.StockServicer) *HealthHandler {
	return &HealthHandler{stockService: stockService}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status     string       `json:"status"`
	QuoteCache quotes.Stats `json:"quote_cache"`
}

// Health reports service status
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Service is up"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", QuoteCache: h.stockService.CacheStats()})
}
