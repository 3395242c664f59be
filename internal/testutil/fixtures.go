package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPension creates a managed pension with manual contributions.
func CreateTestPension(t *testing.T, db *gorm.DB, userID string) *models.Pension {
	t.Helper()

	pension := &models.Pension{
		UserID:           userID,
		Name:             fmt.Sprintf("Test Pension %d", nextID()),
		Type:             models.PensionTypeManaged,
		ContributionType: reconcile.ContributionTypeManual,
	}
	if err := db.Create(pension).Error; err != nil {
		t.Fatalf("failed to create test pension: %v", err)
	}
	return pension
}

// CreateTestRegularPension creates a pension of the given type paying amount
// on day every month.
func CreateTestRegularPension(t *testing.T, db *gorm.DB, userID string, pensionType models.PensionType, amount string, day int) *models.Pension {
	t.Helper()

	pension := &models.Pension{
		UserID:           userID,
		Name:             fmt.Sprintf("Test Regular Pension %d", nextID()),
		Type:             pensionType,
		ContributionType: reconcile.ContributionTypeRegularFixed,
		MonthlyAmount:    decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		DayOfMonth:       &day,
	}
	if err := db.Create(pension).Error; err != nil {
		t.Fatalf("failed to create test regular pension: %v", err)
	}
	return pension
}

// CreateTestContribution records a contribution of amount on date.
func CreateTestContribution(t *testing.T, db *gorm.DB, pensionID, amount string, date time.Time) *models.Contribution {
	t.Helper()

	contribution := &models.Contribution{
		PensionID:        pensionID,
		Amount:           decimal.RequireFromString(amount),
		ContributionDate: date,
	}
	if err := db.Create(contribution).Error; err != nil {
		t.Fatalf("failed to create test contribution: %v", err)
	}
	return contribution
}

// CreateTestHolding creates a pounds-quoted holding of ticker.
func CreateTestHolding(t *testing.T, db *gorm.DB, pensionID, ticker, shares string) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		PensionID:    pensionID,
		Ticker:       ticker,
		Shares:       decimal.RequireFromString(shares),
		CurrencyUnit: models.CurrencyUnitPounds,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
