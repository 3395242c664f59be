package models

import (
	"github.com/shopspring/decimal"

	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// PensionType distinguishes self-invested pensions, valued from their stock
// holdings, from managed ones, valued at what has been paid in.
type PensionType string

const (
	PensionTypeSIPP    PensionType = "SIPP"
	PensionTypeManaged PensionType = "managed"
)

// Pension is a single pension account owned by a user.
type Pension struct {
	Base
	UserID           string                     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string                     `gorm:"not null" json:"name"`
	Type             PensionType                `gorm:"not null" json:"type"`
	ContributionType reconcile.ContributionType `gorm:"not null" json:"contribution_type"`
	MonthlyAmount    decimal.NullDecimal        `gorm:"type:numeric(14,2)" json:"monthly_amount"`
	DayOfMonth       *int                       `json:"day_of_month"`

	// TotalContributions is computed at query time.
	TotalContributions decimal.Decimal `gorm:"-" json:"total_contributions"`

	Contributions []Contribution `gorm:"foreignKey:PensionID" json:"contributions,omitempty"`
	Holdings      []Holding      `gorm:"foreignKey:PensionID" json:"holdings,omitempty"`
}

// Schedule returns the recurring-contribution settings in the form the
// reconciliation engine consumes. Missing fields yield an unprojectable
// schedule rather than an error.
func (p *Pension) Schedule() reconcile.Schedule {
	s := reconcile.Schedule{ContributionType: p.ContributionType}
	if p.MonthlyAmount.Valid {
		s.MonthlyAmount = p.MonthlyAmount.Decimal
	}
	if p.DayOfMonth != nil {
		s.DayOfMonth = *p.DayOfMonth
	}
	return s
}
