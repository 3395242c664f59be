package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/pagination"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// ContributionHandler handles contributions and contribution reconciliation.
type ContributionHandler struct {
	contributionService services.ContributionServicer
	auditService        services.AuditServicer
	now                 func() time.Time
}

// NewContributionHandler creates a new ContributionHandler.
func NewContributionHandler(contributionService services.ContributionServicer, auditService services.AuditServicer) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService, auditService: auditService, now: time.Now}
}

// CreateContributionRequest represents the request payload for recording a contribution.
type CreateContributionRequest struct {
	Amount           *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number"`
	ContributionDate string           `json:"contribution_date" binding:"required" example:"2025-03-15"`
}

// UpdateContributionRequest represents the request payload for updating a contribution.
type UpdateContributionRequest struct {
	Amount           *decimal.Decimal `json:"amount" swaggertype:"number"`
	ContributionDate *string          `json:"contribution_date" example:"2025-03-15"`
}

// ExpectedContributionsQuery bounds the projection window.
type ExpectedContributionsQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// ListContributions returns a page of a pension's contributions
// @Summary     List contributions
// @Description List a pension's contributions, newest first
// @Tags        contributions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {object} map[string]interface{} "Contributions with pagination metadata"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id}/contributions [get]
func (h *ContributionHandler) ListContributions(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.contributionService.GetPensionContributions(userID, pensionID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Body("contributions"))
}

// CreateContribution records a contribution
// @Summary     Record contribution
// @Description Record a payment into one of the authenticated user's pensions
// @Tags        contributions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Param       request body CreateContributionRequest true "Contribution"
// @Success     201 {object} map[string]models.Contribution "Contribution recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id}/contributions [post]
func (h *ContributionHandler) CreateContribution(c *gin.Context) {
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

	var req CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount and contribution date are required"))
		return
	}

	date, err := parseDate(req.ContributionDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contribution, err := h.contributionService.CreateContribution(userID, pensionID, *req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateContribution, "contribution", contribution.ID, c.ClientIP(),
		map[string]interface{}{"pension_id": pensionID, "amount": contribution.Amount.String(), "contribution_date": req.ContributionDate})

	c.JSON(http.StatusCreated, gin.H{"contribution": contribution})
}

// UpdateContribution updates a contribution
// @Summary     Update contribution
// @Description Change the amount or date of a contribution
// @Tags        contributions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contribution ID"
// @Param       request body UpdateContributionRequest true "Fields to change"
// @Success     200 {object} map[string]models.Contribution "Contribution updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not your contribution"
// @Failure     404 {object} ErrorResponse "Contribution not found"
// @Router      /contributions/{id} [put]
func (h *ContributionHandler) UpdateContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contributionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.ContributionDate != nil {
		parsed, err := parseDate(*req.ContributionDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = &parsed
	}

	contribution, err := h.contributionService.UpdateContribution(userID, contributionID, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateContribution, "contribution", contributionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"contribution": contribution})
}

// DeleteContribution deletes a contribution
// @Summary     Delete contribution
// @Tags        contributions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contribution ID"
// @Success     200 {object} SuccessResponse "Contribution deleted"
// @Failure     403 {object} ErrorResponse "Not your contribution"
// @Failure     404 {object} ErrorResponse "Contribution not found"
// @Router      /contributions/{id} [delete]
func (h *ContributionHandler) DeleteContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contributionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contributionService.DeleteContribution(userID, contributionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteContribution, "contribution", contributionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetExpectedContributions projects a pension's schedule
// @Summary     Expected contributions
// @Description Project the monthly schedule between start and end (default: the last twelve months) and classify each month as received, pending, late or missing
// @Tags        contributions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Param       start query string false "First day of the window (YYYY-MM-DD)"
// @Param       end query string false "Last day of the window (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Expected contributions"
// @Failure     400 {object} ErrorResponse "Invalid dates"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id}/expected-contributions [get]
func (h *ContributionHandler) GetExpectedContributions(c *gin.Context) {
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

	var q ExpectedContributionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	end := h.now()
	if q.End != "" {
		if end, err = parseDate(q.End); err != nil {
			respondWithError(c, err)
			return
		}
	}
	start := end.AddDate(0, -reconcile.TrailingMonths, 0)
	if q.Start != "" {
		if start, err = parseDate(q.Start); err != nil {
			respondWithError(c, err)
			return
		}
	}

	expected, err := h.contributionService.CalculateExpectedContributions(userID, pensionID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expected_contributions": expected})
}

// GetMissingContributions lists overdue contributions
// @Summary     Missing contributions
// @Description List the expected contributions of the last twelve months that are more than three days overdue
// @Tags        contributions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Pension ID"
// @Success     200 {object} map[string]interface{} "Missing contributions"
// @Failure     403 {object} ErrorResponse "Not your pension"
// @Failure     404 {object} ErrorResponse "Pension not found"
// @Router      /pensions/{id}/missing-contributions [get]
func (h *ContributionHandler) GetMissingContributions(c *gin.Context) {
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

	missing, err := h.contributionService.GetMissingContributions(userID, pensionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"missing_contributions": missing})
}
