// Package reconcile projects the contributions a recurring pension schedule
// expects and classifies each expected payment against the contributions that
// were actually recorded.
//
// Everything in this package is a pure function of its inputs. Callers fetch
// the actual contributions once and pass "now" explicitly, so the same inputs
// always produce the same projection.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// GracePeriodDays is the window, in calendar days either side of an
	// expected date, in which an actual contribution counts as a match. It is
	// also the number of days an unmatched payment may be overdue before it is
	// reported as missing rather than late.
	GracePeriodDays = 3

	// TrailingMonths is the lookback used by the missing-contribution report.
	TrailingMonths = 12

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// amountTolerance is the relative difference below which an actual amount
// matches the expected one.
var amountTolerance = decimal.NewFromFloat(0.10)

// ContributionType describes how money is paid into a pension.
type ContributionType string

const (
	ContributionTypeRegularFixed ContributionType = "regular_fixed"
	ContributionTypeManual       ContributionType = "manual"
)

// Schedule is the recurring-contribution part of a pension.
type Schedule struct {
	ContributionType ContributionType
	MonthlyAmount    decimal.Decimal
	DayOfMonth       int
}

// Projectable reports whether the schedule has everything needed to project
// expected contributions.
func (s Schedule) Projectable() bool {
	return s.ContributionType == ContributionTypeRegularFixed &&
		s.MonthlyAmount.IsPositive() &&
		s.DayOfMonth >= 1 && s.DayOfMonth <= 31
}

// Contribution is an actual, recorded payment into a pension.
type Contribution struct {
	ID     string
	Amount decimal.Decimal
	Date   time.Time
}

// Status is the reconciliation outcome of one expected contribution.
type Status string

const (
	StatusReceived Status = "received"
	StatusPending  Status = "pending"
	StatusLate     Status = "late"
	StatusMissing  Status = "missing"
)

// ExpectedContribution is one projected payment. It is derived on every call
// and never stored.
type ExpectedContribution struct {
	Date   time.Time
	Amount decimal.Decimal
	Status Status
	// Actual is the first recorded contribution within the grace window of
	// Date, regardless of amount. It is for display only and can differ from
	// the contribution that made Status received.
	Actual *Contribution
}

// MissingContribution is an expected payment that is overdue beyond the
// grace period.
type MissingContribution struct {
	ExpectedDate time.Time
	Amount       decimal.Decimal
	DaysOverdue  int
}

// Project returns one expected contribution per calendar month, starting with
// the month of start and ending with the last month whose expected date is not
// after end. Schedules that cannot be projected yield an empty slice.
func Project(s Schedule, actuals []Contribution, start, end, now time.Time) []ExpectedContribution {
	expected := make([]ExpectedContribution, 0)
	if !s.Projectable() {
		return expected
	}

	last := dateOf(end)
	year, month, _ := start.Date()
	for {
		date := ExpectedDate(year, month, s.DayOfMonth)
		if date.After(last) {
			break
		}

		expected = append(expected, ExpectedContribution{
			Date:   date,
			Amount: s.MonthlyAmount,
			Status: Classify(date, s.MonthlyAmount, actuals, now),
			Actual: FindMatching(date, actuals),
		})

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return expected
}

// Classify decides the status of a single expected contribution.
func Classify(expected time.Time, amount decimal.Decimal, actuals []Contribution, now time.Time) Status {
	day := dateOf(expected)
	for _, c := range actuals {
		if withinGrace(day, c.Date) && amountMatches(c.Amount, amount) {
			return StatusReceived
		}
	}

	today := dateOf(now)
	if day.After(today) {
		return StatusPending
	}
	if daysBetween(day, today) > GracePeriodDays {
		return StatusMissing
	}
	return StatusLate
}

// FindMatching returns the first actual contribution dated within the grace
// window of expected, ignoring its amount, or nil.
func FindMatching(expected time.Time, actuals []Contribution) *Contribution {
	day := dateOf(expected)
	for _, c := range actuals {
		if withinGrace(day, c.Date) {
			match := c
			return &match
		}
	}
	return nil
}

// Missing re-runs the trailing twelve month projection up to now and keeps the
// entries classified as missing.
func Missing(s Schedule, actuals []Contribution, now time.Time) []MissingContribution {
	missing := make([]MissingContribution, 0)
	if s.ContributionType != ContributionTypeRegularFixed {
		return missing
	}

	start := now.AddDate(0, -TrailingMonths, 0)
	for _, e := range Project(s, actuals, start, now, now) {
		if e.Status != StatusMissing {
			continue
		}
		missing = append(missing, MissingContribution{
			ExpectedDate: e.Date,
			Amount:       e.Amount,
			DaysOverdue:  daysBetween(e.Date, now),
		})
	}
	return missing
}

// ExpectedDate resolves day against the real length of the month, clamping
// down (31 becomes 30, 29 or 28) instead of rolling into the next month.
func ExpectedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf drops the time of day, keeping the calendar date as seen in t's own
// location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}

func withinGrace(expected, actual time.Time) bool {
	diff := daysBetween(expected, actual)
	if diff < 0 {
		diff = -diff
	}
	return diff <= GracePeriodDays
}

func amountMatches(actual, expected decimal.Decimal) bool {
	if !expected.IsPositive() {
		return false
	}
	return actual.Sub(expected).Abs().Div(expected).LessThan(amountTolerance)
}
