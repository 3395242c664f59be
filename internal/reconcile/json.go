package reconcile

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type contributionJSON struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	ContributionDate string          `json:"contribution_date"`
}

// MarshalJSON renders dates as calendar dates.
func (e ExpectedContribution) MarshalJSON() ([]byte, error) {
	out := struct {
		Date   string            `json:"date"`
		Amount decimal.Decimal   `json:"amount"`
		Status Status            `json:"status"`
		Actual *contributionJSON `json:"actual_contribution,omitempty"`
	}{
		Date:   e.Date.Format(DateLayout),
		Amount: e.Amount,
		Status: e.Status,
	}
	if e.Actual != nil {
		out.Actual = &contributionJSON{
			ID:               e.Actual.ID,
			Amount:           e.Actual.Amount,
			ContributionDate: e.Actual.Date.Format(DateLayout),
		}
	}
	return json.Marshal(out)
}

// MarshalJSON renders the expected date as a calendar date.
func (m MissingContribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ExpectedDate string          `json:"expected_date"`
		Amount       decimal.Decimal `json:"amount"`
		DaysOverdue  int             `json:"days_overdue"`
	}{
		ExpectedDate: m.ExpectedDate.Format(DateLayout),
		Amount:       m.Amount,
		DaysOverdue:  m.DaysOverdue,
	})
}
