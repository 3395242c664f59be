package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// pensionService handles pension-related business logic.
type pensionService struct {
	db *gorm.DB
}

// NewPensionService creates a new PensionServicer.
func NewPensionService(db *gorm.DB) PensionServicer {
	return &pensionService{db: db}
}

// CreatePension creates a pension owned by userID.
func (s *pensionService) CreatePension(userID string, input PensionInput) (*models.Pension, error) {
	pension := &models.Pension{
		UserID:           userID,
		Name:             strings.TrimSpace(input.Name),
		Type:             input.Type,
		ContributionType: input.ContributionType,
	}
	if input.MonthlyAmount != nil {
		pension.MonthlyAmount = decimal.NewNullDecimal(*input.MonthlyAmount)
	}
	pension.DayOfMonth = input.DayOfMonth

	if err := normalizePension(pension); err != nil {
		return nil, err
	}

	if err := s.db.Create(pension).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	pension.TotalContributions = decimal.Zero
	return pension, nil
}

// GetUserPensions returns every pension of a user, newest first, with
// contribution totals filled in.
func (s *pensionService) GetUserPensions(userID string) ([]models.Pension, error) {
	var pensions []models.Pension
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&pensions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if pensions == nil {
		pensions = []models.Pension{}
	}

	if err := fillContributionTotals(s.db, pensions); err != nil {
		return nil, err
	}
	return pensions, nil
}

// GetPensionByID returns a single pension owned by userID.
func (s *pensionService) GetPensionByID(userID, pensionID string) (*models.Pension, error) {
	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return nil, err
	}

	list := []models.Pension{*pension}
	if err := fillContributionTotals(s.db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// UpdatePension applies the non-nil fields of update. The merged pension is
// validated as a whole, so switching to a manual schedule clears the amount
// and day.
func (s *pensionService) UpdatePension(userID, pensionID string, update PensionUpdate) (*models.Pension, error) {
	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		pension.Name = strings.TrimSpace(*update.Name)
	}
	if update.Type != nil {
		pension.Type = *update.Type
	}
	if update.ContributionType != nil {
		pension.ContributionType = *update.ContributionType
	}
	if update.MonthlyAmount != nil {
		pension.MonthlyAmount = decimal.NewNullDecimal(*update.MonthlyAmount)
	}
	if update.DayOfMonth != nil {
		pension.DayOfMonth = update.DayOfMonth
	}

	if err := normalizePension(pension); err != nil {
		return nil, err
	}

	if err := s.db.Model(pension).Select("name", "type", "contribution_type", "monthly_amount", "day_of_month").
		Updates(pension).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetPensionByID(userID, pensionID)
}

// DeletePension removes a pension with its contributions and holdings.
func (s *pensionService) DeletePension(userID, pensionID string) error {
	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pension_id = ?", pension.ID).Delete(&models.Contribution{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("pension_id = ?", pension.ID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Delete(pension).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizePension validates a pension and clears the schedule fields of
// non-regular pensions.
func normalizePension(p *models.Pension) error {
	if p.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	switch p.Type {
	case models.PensionTypeSIPP, models.PensionTypeManaged:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be SIPP or managed")
	}

	switch p.ContributionType {
	case reconcile.ContributionTypeRegularFixed:
		if !p.MonthlyAmount.Valid || !p.MonthlyAmount.Decimal.IsPositive() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly_amount must be positive for regular_fixed pensions")
		}
		if p.DayOfMonth == nil || *p.DayOfMonth < 1 || *p.DayOfMonth > 31 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_month must be between 1 and 31 for regular_fixed pensions")
		}
	case reconcile.ContributionTypeManual:
		p.MonthlyAmount = decimal.NullDecimal{}
		p.DayOfMonth = nil
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution_type must be regular_fixed or manual")
	}
	return nil
}

// loadOwnedPension fetches a pension and checks it belongs to userID. An
// absent pension is not found; another user's pension is forbidden.
func loadOwnedPension(db *gorm.DB, userID, pensionID string) (*models.Pension, error) {
	var pension models.Pension
	if err := db.Where("id = ?", pensionID).First(&pension).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPensionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if pension.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &pension, nil
}

type pensionTotal struct {
	PensionID string
	Total     decimal.NullDecimal
}

// fillContributionTotals sets TotalContributions on each pension in place.
func fillContributionTotals(db *gorm.DB, pensions []models.Pension) error {
	if len(pensions) == 0 {
		return nil
	}

	ids := make([]string, len(pensions))
	for i := range pensions {
		ids[i] = pensions[i].ID
		pensions[i].TotalContributions = decimal.Zero
	}

	var totals []pensionTotal
	if err := db.Model(&models.Contribution{}).
		Select("pension_id, SUM(amount) AS total").
		Where("pension_id IN ?", ids).
		Group("pension_id").
		Scan(&totals).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		if t.Total.Valid {
			byID[t.PensionID] = t.Total.Decimal.Round(2)
		}
	}
	for i := range pensions {
		if total, ok := byID[pensions[i].ID]; ok {
			pensions[i].TotalContributions = total
		}
	}
	return nil
}
