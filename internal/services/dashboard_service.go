package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// dashboardService values a user's pensions and reconciles their schedules.
type dashboardService struct {
	db     *gorm.DB
	prices PriceSource
	now    func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, prices PriceSource) DashboardServicer {
	return &dashboardService{db: db, prices: prices, now: time.Now}
}

// GetDashboard builds the overview for every pension of a user. SIPP pensions
// are valued from their holdings at the last known prices, managed pensions
// at what has been paid in. Holdings without a price contribute nothing.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := s.now()

	var pensions []models.Pension
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&pensions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := fillContributionTotals(s.db, pensions); err != nil {
		return nil, err
	}

	holdings, err := s.holdingsByPension(pensions)
	if err != nil {
		return nil, err
	}
	prices := s.priceHoldings(ctx, holdings)

	dashboard := &Dashboard{
		Pensions:           make([]PensionSummary, 0, len(pensions)),
		TotalContributions: decimal.Zero,
		TotalValue:         decimal.Zero,
		GeneratedAt:        now,
	}

	for i := range pensions {
		p := pensions[i]
		summary := PensionSummary{Pension: p, CurrentValue: p.TotalContributions}

		if p.Type == models.PensionTypeSIPP {
			summary.CurrentValue = decimal.Zero
			for _, h := range holdings[p.ID] {
				v := valueHolding(h, prices)
				if v.Value != nil {
					summary.CurrentValue = summary.CurrentValue.Add(*v.Value)
				}
				summary.Holdings = append(summary.Holdings, v)
			}
		}

		if p.ContributionType == reconcile.ContributionTypeRegularFixed {
			contributions, err := pensionContributions(s.db, p.ID)
			if err != nil {
				return nil, err
			}
			actuals := models.ToActuals(contributions)
			start := now.AddDate(0, -reconcile.TrailingMonths, 0)
			summary.ExpectedContributions = reconcile.Project(p.Schedule(), actuals, start, now, now)
			summary.MissingContributions = reconcile.Missing(p.Schedule(), actuals, now)
			dashboard.MissingCount += len(summary.MissingContributions)
		}

		dashboard.TotalContributions = dashboard.TotalContributions.Add(p.TotalContributions)
		dashboard.TotalValue = dashboard.TotalValue.Add(summary.CurrentValue)
		dashboard.Pensions = append(dashboard.Pensions, summary)
	}

	return dashboard, nil
}

// holdingsByPension loads the holdings of every SIPP pension in one query.
func (s *dashboardService) holdingsByPension(pensions []models.Pension) (map[string][]models.Holding, error) {
	var ids []string
	for i := range pensions {
		if pensions[i].Type == models.PensionTypeSIPP {
			ids = append(ids, pensions[i].ID)
		}
	}

	byPension := make(map[string][]models.Holding, len(ids))
	if len(ids) == 0 {
		return byPension, nil
	}

	var holdings []models.Holding
	if err := s.db.Where("pension_id IN ?", ids).Order("ticker ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, h := range holdings {
		byPension[h.PensionID] = append(byPension[h.PensionID], h)
	}
	return byPension, nil
}

// priceHoldings looks up each distinct ticker once, in ticker order.
func (s *dashboardService) priceHoldings(ctx context.Context, holdings map[string][]models.Holding) map[string]*quotes.Quote {
	seen := make(map[string]bool)
	var tickers []string
	for _, list := range holdings {
		for _, h := range list {
			if !seen[h.Ticker] {
				seen[h.Ticker] = true
				tickers = append(tickers, h.Ticker)
			}
		}
	}
	if len(tickers) == 0 || s.prices == nil {
		return map[string]*quotes.Quote{}
	}
	sort.Strings(tickers)
	return s.prices.GetPrices(ctx, tickers)
}

func valueHolding(h models.Holding, prices map[string]*quotes.Quote) HoldingValuation {
	v := HoldingValuation{Holding: h}
	q := prices[h.Ticker]
	if q == nil {
		return v
	}
	price := q.Price
	value := h.Value(price)
	fetchedAt := q.FetchedAt
	v.Price = &price
	v.Currency = q.Currency
	v.Value = &value
	v.PricedAt = &fetchedAt
	return v
}
