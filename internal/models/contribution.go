package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// Contribution is an actual payment into a pension. Several may fall in the
// same month.
type Contribution struct {
	Base
	PensionID        string          `gorm:"type:uuid;not null;index" json:"pension_id"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	ContributionDate time.Time       `gorm:"type:date;not null;index" json:"contribution_date"`
}

// Actual converts the record for reconciliation.
func (c *Contribution) Actual() reconcile.Contribution {
	return reconcile.Contribution{ID: c.ID, Amount: c.Amount, Date: c.ContributionDate}
}

// ToActuals converts a slice of records for reconciliation, preserving order.
func ToActuals(contributions []Contribution) []reconcile.Contribution {
	actuals := make([]reconcile.Contribution, len(contributions))
	for i := range contributions {
		actuals[i] = contributions[i].Actual()
	}
	return actuals
}
