package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/pagination"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// contributionService handles contributions and their reconciliation.
type contributionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewContributionService creates a new ContributionServicer.
func NewContributionService(db *gorm.DB) ContributionServicer {
	return &contributionService{db: db, now: time.Now}
}

// CreateContribution records a payment into a pension owned by userID.
func (s *contributionService) CreateContribution(userID, pensionID string, amount decimal.Decimal, date time.Time) (*models.Contribution, error) {
	if err := validateContribution(amount, date); err != nil {
		return nil, err
	}

	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return nil, err
	}

	contribution := &models.Contribution{
		PensionID:        pension.ID,
		Amount:           amount,
		ContributionDate: calendarDate(date),
	}
	if err := s.db.Create(contribution).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contribution, nil
}

// GetPensionContributions lists a pension's contributions, newest first.
func (s *contributionService) GetPensionContributions(userID, pensionID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error) {
	if _, err := loadOwnedPension(s.db, userID, pensionID); err != nil {
		return nil, err
	}
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Contribution{}).Where("pension_id = ?", pensionID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contributions []models.Contribution
	if err := base.Order("contribution_date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contributions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateContribution changes the amount and/or date of a contribution.
func (s *contributionService) UpdateContribution(userID, contributionID string, amount *decimal.Decimal, date *time.Time) (*models.Contribution, error) {
	contribution, err := s.loadOwnedContribution(userID, contributionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if date != nil {
		if date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution_date is required")
		}
		updates["contribution_date"] = calendarDate(*date)
	}

	if len(updates) > 0 {
		if err := s.db.Model(contribution).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	var updated models.Contribution
	if err := s.db.Where("id = ?", contribution.ID).First(&updated).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &updated, nil
}

// DeleteContribution removes a contribution.
func (s *contributionService) DeleteContribution(userID, contributionID string) error {
	contribution, err := s.loadOwnedContribution(userID, contributionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(contribution).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CalculateExpectedContributions projects the pension's schedule over
// [start, end] and classifies each month against the recorded contributions.
// Pensions without a regular schedule yield an empty slice.
func (s *contributionService) CalculateExpectedContributions(userID, pensionID string, start, end time.Time) ([]reconcile.ExpectedContribution, error) {
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end must not be before start")
	}

	pension, actuals, err := s.loadSchedule(userID, pensionID)
	if err != nil {
		return nil, err
	}
	return reconcile.Project(pension.Schedule(), actuals, start, end, s.now()), nil
}

// GetMissingContributions lists the expected payments of the trailing twelve
// months that are overdue beyond the grace period.
func (s *contributionService) GetMissingContributions(userID, pensionID string) ([]reconcile.MissingContribution, error) {
	pension, actuals, err := s.loadSchedule(userID, pensionID)
	if err != nil {
		return nil, err
	}
	return reconcile.Missing(pension.Schedule(), actuals, s.now()), nil
}

// loadSchedule fetches an owned pension and all of its contributions once.
func (s *contributionService) loadSchedule(userID, pensionID string) (*models.Pension, []reconcile.Contribution, error) {
	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return nil, nil, err
	}

	contributions, err := pensionContributions(s.db, pension.ID)
	if err != nil {
		return nil, nil, err
	}
	return pension, models.ToActuals(contributions), nil
}

func (s *contributionService) loadOwnedContribution(userID, contributionID string) (*models.Contribution, error) {
	var contribution models.Contribution
	if err := s.db.Where("id = ?", contributionID).First(&contribution).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContributionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := loadOwnedPension(s.db, userID, contribution.PensionID); err != nil {
		// A contribution whose pension is gone is not addressable by anyone.
		if errors.Is(err, apperrors.ErrPensionNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return &contribution, nil
}

// pensionContributions returns every contribution of a pension, newest first.
func pensionContributions(db *gorm.DB, pensionID string) ([]models.Contribution, error) {
	var contributions []models.Contribution
	if err := db.Where("pension_id = ?", pensionID).
		Order("contribution_date DESC, created_at DESC").
		Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contributions, nil
}

func validateContribution(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution_date is required")
	}
	return nil
}

// calendarDate keeps only the calendar day of t, as UTC midnight.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
