package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/validator"
)

// holdingService handles stock holdings inside pensions.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// CreateHolding adds a ticker position to a pension. A pension holds each
// ticker at most once.
func (s *holdingService) CreateHolding(userID, pensionID, ticker string, shares decimal.Decimal, unit models.CurrencyUnit) (*models.Holding, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if !shares.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be positive")
	}
	if unit == "" {
		unit = models.CurrencyUnitPounds
	}
	if err := validateCurrencyUnit(unit); err != nil {
		return nil, err
	}

	pension, err := loadOwnedPension(s.db, userID, pensionID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTickerFree(pension.ID, ticker, ""); err != nil {
		return nil, err
	}

	holding := &models.Holding{
		PensionID:    pension.ID,
		Ticker:       ticker,
		Shares:       shares,
		CurrencyUnit: unit,
	}
	if err := s.db.Create(holding).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateHolding
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding, nil
}

// GetPensionHoldings lists a pension's holdings in ticker order.
func (s *holdingService) GetPensionHoldings(userID, pensionID string) ([]models.Holding, error) {
	if _, err := loadOwnedPension(s.db, userID, pensionID); err != nil {
		return nil, err
	}
	return pensionHoldings(s.db, pensionID)
}

// UpdateHolding applies the non-nil fields to a holding.
func (s *holdingService) UpdateHolding(userID, holdingID string, ticker *string, shares *decimal.Decimal, unit *models.CurrencyUnit) (*models.Holding, error) {
	holding, err := s.loadOwnedHolding(userID, holdingID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if ticker != nil {
		normalized, err := normalizeTicker(*ticker)
		if err != nil {
			return nil, err
		}
		if normalized != holding.Ticker {
			if err := s.ensureTickerFree(holding.PensionID, normalized, holding.ID); err != nil {
				return nil, err
			}
			updates["ticker"] = normalized
		}
	}
	if shares != nil {
		if !shares.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be positive")
		}
		updates["shares"] = *shares
	}
	if unit != nil {
		if err := validateCurrencyUnit(*unit); err != nil {
			return nil, err
		}
		updates["currency_unit"] = *unit
	}

	if len(updates) > 0 {
		if err := s.db.Model(holding).Updates(updates).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil, apperrors.ErrDuplicateHolding
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	var updated models.Holding
	if err := s.db.Where("id = ?", holding.ID).First(&updated).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &updated, nil
}

// DeleteHolding removes a holding permanently so its ticker can be added
// again later.
func (s *holdingService) DeleteHolding(userID, holdingID string) error {
	holding, err := s.loadOwnedHolding(userID, holdingID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(holding).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *holdingService) ensureTickerFree(pensionID, ticker, exceptID string) error {
	q := s.db.Model(&models.Holding{}).Where("pension_id = ? AND ticker = ?", pensionID, ticker)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateHolding
	}
	return nil
}

func (s *holdingService) loadOwnedHolding(userID, holdingID string) (*models.Holding, error) {
	var holding models.Holding
	if err := s.db.Where("id = ?", holdingID).First(&holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := loadOwnedPension(s.db, userID, holding.PensionID); err != nil {
		if errors.Is(err, apperrors.ErrPensionNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return &holding, nil
}

// pensionHoldings returns a pension's holdings ordered by ticker.
func pensionHoldings(db *gorm.DB, pensionID string) ([]models.Holding, error) {
	holdings := []models.Holding{}
	if err := db.Where("pension_id = ?", pensionID).Order("ticker ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

func normalizeTicker(ticker string) (string, error) {
	ticker = strings.TrimSpace(ticker)
	if !validator.ValidTicker(ticker) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid ticker format")
	}
	return strings.ToUpper(ticker), nil
}

func validateCurrencyUnit(unit models.CurrencyUnit) error {
	switch unit {
	case models.CurrencyUnitPounds, models.CurrencyUnitPence:
		return nil
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "currency_unit must be pounds or pence")
	}
}
