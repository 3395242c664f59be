package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// PensionHandler handles pension-related requests.
type PensionHandler struct {
	pensionService services.PensionServicer
	auditService   services.AuditServicer
}

// NewPensionHandler creates a new PensionHandler.
func NewPensionHandler(pensionService services.PensionServicer, auditService services.AuditServicer) *PensionHandler {
	return &PensionHandler{pensionService: pensionService, auditService: auditService}
}

// CreatePensionRequest represents the request payload for creating a pension.
// monthly_amount and day_of_month are required for regular_fixed pensions and
// ignored otherwise.
type CreatePensionRequest struct {
	Name             string                     `json:"name" binding:"required,min=1,max=100"`
	Type             models.PensionType         `json:"type" binding:"required,pension_type"`
	ContributionType reconcile.ContributionType `json:"contribution_type" binding:"required,contribution_type"`
	MonthlyAmount    *decimal.Decimal           `json:"monthly_amount" swaggertype:"number"`
	DayOfMonth       *int                       `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// UpdatePensionRequest represents the request payload for updating a pension.
type UpdatePensionRequest struct {
	Name             *string                     `json:"name" binding:"omitempty,min=1,max=100"`
	Type             *models.PensionType         `json:"type" binding:"omitempty,pension_type"`
	ContributionType *reconcile.ContributionType `json:"contribution_type" binding:"omitempty,contribution_type"`
	MonthlyAmount    *decimal.Decimal            `json:"monthly_amount" swaggertype:"number"`
	DayOfMonth       *int                        `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// ListPensions returns the user's pensions
// @Summary     List pensions
// @Description List the authenticated user's pensions, newest first, with contribution totals
// @Tags        pensions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Pension "Pensions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pensions [get]
func (h *PensionHandler) ListPensions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pensions, err := h.pensionService.GetUserPensions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pensions": pensions})
}

// GetPension returns a single pension
// @Summary     Get pension
// @Description Get one of the authenticated user's pensions
// @Tags        pensions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Success     200 {object} map[string]models.Pension "Pension"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id} [get]
func (h *PensionHandler) GetPension(c *gin.Context) {
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

	pension, err := h.pensionService.GetPensionByID(userID, pensionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pension": pension})
}

// CreatePension creates a pension
// @Summary     Create pension
// @Description Create a pension for the authenticated user
// @Tags        pensions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePensionRequest true "Pension details"
// @Success     201 {object} map[string]models.Pension "Pension created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /pensions [post]
func (h *PensionHandler) CreatePension(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pension, err := h.pensionService.CreatePension(userID, services.PensionInput{
		Name:             req.Name,
		Type:             req.Type,
		ContributionType: req.ContributionType,
		MonthlyAmount:    req.MonthlyAmount,
		DayOfMonth:       req.DayOfMonth,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreatePension, "pension", pension.ID, c.ClientIP(),
		map[string]interface{}{"name": pension.Name, "type": pension.Type, "contribution_type": pension.ContributionType})

	c.JSON(http.StatusCreated, gin.H{"pension": pension})
}

// UpdatePension updates a pension
// @Summary     Update pension
// @Description Update fields of one of the authenticated user's pensions
// @Tags        pensions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Param       request body UpdatePensionRequest true "Fields to change"
// @Success     200 {object} map[string]models.Pension "Pension updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id} [put]
func (h *PensionHandler) UpdatePension(c *gin.Context) {
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

	var req UpdatePensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pension, err := h.pensionService.UpdatePension(userID, pensionID, services.PensionUpdate{
		Name:             req.Name,
		Type:             req.Type,
		ContributionType: req.ContributionType,
		MonthlyAmount:    req.MonthlyAmount,
		DayOfMonth:       req.DayOfMonth,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdatePension, "pension", pensionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"pension": pension})
}

// DeletePension deletes a pension
// @Summary     Delete pension
// @Description Delete a pension with its contributions and holdings
// @Tags        pensions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Success     200 {object} SuccessResponse "Pension deleted"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id} [delete]
func (h *PensionHandler) DeletePension(c *gin.Context) {
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

	if err := h.pensionService.DeletePension(userID, pensionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeletePension, "pension", pensionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
