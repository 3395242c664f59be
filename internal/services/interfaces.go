package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/pagination"
	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	EnsureUser(username, password string) (user *models.User, created bool, err error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
}

// PensionInput holds the fields for a new pension.
type PensionInput struct {
	Name             string
	Type             models.PensionType
	ContributionType reconcile.ContributionType
	MonthlyAmount    *decimal.Decimal
	DayOfMonth       *int
}

// PensionUpdate holds optional pension changes; nil fields are left as is.
type PensionUpdate struct {
	Name             *string
	Type             *models.PensionType
	ContributionType *reconcile.ContributionType
	MonthlyAmount    *decimal.Decimal
	DayOfMonth       *int
}

// PensionServicer defines the contract for pension-related business logic.
type PensionServicer interface {
	CreatePension(userID string, input PensionInput) (*models.Pension, error)
	GetUserPensions(userID string) ([]models.Pension, error)
	GetPensionByID(userID, pensionID string) (*models.Pension, error)
	UpdatePension(userID, pensionID string, update PensionUpdate) (*models.Pension, error)
	DeletePension(userID, pensionID string) error
}

// ContributionServicer defines the contract for contributions and their
// reconciliation against a pension's schedule.
type ContributionServicer interface {
	CreateContribution(userID, pensionID string, amount decimal.Decimal, date time.Time) (*models.Contribution, error)
	GetPensionContributions(userID, pensionID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error)
	UpdateContribution(userID, contributionID string, amount *decimal.Decimal, date *time.Time) (*models.Contribution, error)
	DeleteContribution(userID, contributionID string) error
	CalculateExpectedContributions(userID, pensionID string, start, end time.Time) ([]reconcile.ExpectedContribution, error)
	GetMissingContributions(userID, pensionID string) ([]reconcile.MissingContribution, error)
}

// HoldingServicer defines the contract for stock holdings inside pensions.
type HoldingServicer interface {
	CreateHolding(userID, pensionID, ticker string, shares decimal.Decimal, unit models.CurrencyUnit) (*models.Holding, error)
	GetPensionHoldings(userID, pensionID string) ([]models.Holding, error)
	UpdateHolding(userID, holdingID string, ticker *string, shares *decimal.Decimal, unit *models.CurrencyUnit) (*models.Holding, error)
	DeleteHolding(userID, holdingID string) error
}

// PriceSource is the part of the quote service the stock and dashboard
// services depend on.
type PriceSource interface {
	GetPrice(ctx context.Context, ticker string) (*quotes.Quote, error)
	GetPrices(ctx context.Context, tickers []string) map[string]*quotes.Quote
	Stats() quotes.Stats
}

// StockServicer defines the contract for stock price lookups.
type StockServicer interface {
	GetQuote(ctx context.Context, ticker string) (*quotes.Quote, error)
	GetPrices(ctx context.Context, tickers []string) (map[string]*quotes.Quote, error)
	CacheStats() quotes.Stats
}

// HoldingValuation is a holding priced at its last known quote. Price and
// Value are nil when no quote is available.
type HoldingValuation struct {
	models.Holding
	Price    *decimal.Decimal `json:"current_price,omitempty"`
	Currency string           `json:"currency,omitempty"`
	Value    *decimal.Decimal `json:"total_value,omitempty"`
	PricedAt *time.Time       `json:"priced_at,omitempty"`
}

// PensionSummary is a pension with its valuation and reconciliation state.
type PensionSummary struct {
	models.Pension
	CurrentValue          decimal.Decimal                  `json:"current_value"`
	Holdings              []HoldingValuation               `json:"holdings,omitempty"`
	ExpectedContributions []reconcile.ExpectedContribution `json:"expected_contributions,omitempty"`
	MissingContributions  []reconcile.MissingContribution  `json:"missing_contributions,omitempty"`
}

// Dashboard aggregates every pension of a user.
type Dashboard struct {
	Pensions           []PensionSummary `json:"pensions"`
	TotalContributions decimal.Decimal  `json:"total_contributions"`
	TotalValue         decimal.Decimal  `json:"total_value"`
	MissingCount       int              `json:"missing_count"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// DashboardServicer defines the contract for the valuation overview.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
