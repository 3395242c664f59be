package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// HoldingHandler handles stock holdings inside pensions.
type HoldingHandler struct {
	holdingService services.HoldingServicer
	auditService   services.AuditServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService services.HoldingServicer, auditService services.AuditServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService, auditService: auditService}
}

// CreateHoldingRequest represents the request payload for adding a holding.
type CreateHoldingRequest struct {
	Ticker       string              `json:"ticker" binding:"required,ticker" example:"VWRL"`
	Shares       *decimal.Decimal    `json:"shares" binding:"required" swaggertype:"number"`
	CurrencyUnit models.CurrencyUnit `json:"currency_unit" binding:"omitempty,currency_unit" enums:"pounds,pence"`
}

// UpdateHoldingRequest represents the request payload for updating a holding.
type UpdateHoldingRequest struct {
	Ticker       *string              `json:"ticker" binding:"omitempty,ticker"`
	Shares       *decimal.Decimal     `json:"shares" swaggertype:"number"`
	CurrencyUnit *models.CurrencyUnit `json:"currency_unit" binding:"omitempty,currency_unit" enums:"pounds,pence"`
}

// ListHoldings returns a pension's holdings
// @Summary     List holdings
// @Description List a pension's holdings in ticker order
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Success     200 {object} map[string][]models.Holding "Holdings"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id}/holdings [get]
func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pensionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.holdingService.GetPensionHoldings(userID, pensionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// CreateHolding adds a holding
// @Summary     Add holding
// @Description Add a ticker position to a pension; each ticker at most once per pension
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Param       request body CreateHoldingRequest true "Holding"
// @Success     201 {object} map[string]models.Holding "Holding created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Failure     409 {object} ErrorResponse "Ticker already held"
// @Router      /pensions/{id}/holdings [post]
func (h *HoldingHandler) CreateHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pensionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.CreateHolding(userID, pensionID, req.Ticker, *req.Shares, req.CurrencyUnit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateHolding, "holding", holding.ID, c.ClientIP(),
		map[string]interface{}{"pension_id": pensionID, "ticker": holding.Ticker, "shares": holding.Shares.String()})

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// UpdateHolding updates a holding
// @Summary     Update holding
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Param       request body UpdateHoldingRequest true "Fields to change"
// @Success     200 {object} map[string]models.Holding "Holding updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not your holding"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     409 {object} ErrorResponse "Ticker already held"
// @Router      /holdings/{id} [put]
func (h *HoldingHandler) UpdateHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.UpdateHolding(userID, holdingID, req.Ticker, req.Shares, req.CurrencyUnit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateHolding, "holding", holdingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding deletes a holding
// @Summary     Delete holding
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Success     200 {object} SuccessResponse "Holding deleted"
// @Failure     403 {object} ErrorResponse "Not your holding"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /holdings/{id} [delete]
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.holdingService.DeleteHolding(userID, holdingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteHolding, "holding", holdingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
