package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/pagination"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
)

const testContributionID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a61"

// --- mock contribution service ---

type mockContributionService struct {
	createContributionFn      func(userID, pensionID string, amount decimal.Decimal, date time.Time) (*models.Contribution, error)
	getPensionContributionsFn func(userID, pensionID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error)
	updateContributionFn      func(userID, contributionID string, amount *decimal.Decimal, date *time.Time) (*models.Contribution, error)
	deleteContributionFn      func(userID, contributionID string) error
	calculateExpectedFn       func(userID, pensionID string, start, end time.Time) ([]reconcile.ExpectedContribution, error)
	getMissingFn              func(userID, pensionID string) ([]reconcile.MissingContribution, error)
}

func (m *mockContributionService) CreateContribution(userID, pensionID string, amount decimal.Decimal, date time.Time) (*models.Contribution, error) {
	if m.createContributionFn != nil {
		return m.createContributionFn(userID, pensionID, amount, date)
	}
	return &models.Contribution{}, nil
}

func (m *mockContributionService) GetPensionContributions(userID, pensionID string, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error) {
	if m.getPensionContributionsFn != nil {
		return m.getPensionContributionsFn(userID, pensionID, page)
	}
	resp := pagination.NewPageResponse[models.Contribution](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockContributionService) UpdateContribution(userID, contributionID string, amount *decimal.Decimal, date *time.Time) (*models.Contribution, error) {
	if m.updateContributionFn != nil {
		return m.updateContributionFn(userID, contributionID, amount, date)
	}
	return &models.Contribution{}, nil
}

func (m *mockContributionService) DeleteContribution(userID, contributionID string) error {
	if m.deleteContributionFn != nil {
		return m.deleteContributionFn(userID, contributionID)
	}
	return nil
}

func (m *mockContributionService) CalculateExpectedContributions(userID, pensionID string, start, end time.Time) ([]reconcile.ExpectedContribution, error) {
	if m.calculateExpectedFn != nil {
		return m.calculateExpectedFn(userID, pensionID, start, end)
	}
	return []reconcile.ExpectedContribution{}, nil
}

func (m *mockContributionService) GetMissingContributions(userID, pensionID string) ([]reconcile.MissingContribution, error) {
	if m.getMissingFn != nil {
		return m.getMissingFn(userID, pensionID)
	}
	return []reconcile.MissingContribution{}, nil
}

func setupContributionRouter(handler *ContributionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/pensions/:id/contributions", handler.ListContributions)
	auth.POST("/pensions/:id/contributions", handler.CreateContribution)
	auth.GET("/pensions/:id/expected-contributions", handler.GetExpectedContributions)
	auth.GET("/pensions/:id/missing-contributions", handler.GetMissingContributions)
	auth.PUT("/contributions/:id", handler.UpdateContribution)
	auth.DELETE("/contributions/:id", handler.DeleteContribution)
	return r
}

func calDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- tests ---

func TestContributionHandler_ListContributions(t *testing.T) {
	t.Run("returns 200 with page metadata", func(t *testing.T) {
		var gotPage pagination.PageRequest
		svc := &mockContributionService{
			getPensionContributionsFn: func(_, _ string, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error) {
				gotPage = page
				resp := pagination.NewPageResponse([]models.Contribution{
					{Base: models.Base{ID: testContributionID}, Amount: decimal.NewFromInt(100), ContributionDate: calDate(2025, time.March, 15)},
				}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/contributions?page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if items, ok := result["contributions"].([]interface{}); !ok || len(items) != 1 {
			t.Errorf("expected 1 contribution, got %v", result["contributions"])
		}
		if result["total_pages"] != float64(2) {
			t.Errorf("expected total_pages 2, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on page size above limit", func(t *testing.T) {
		r := setupContributionRouter(NewContributionHandler(&mockContributionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/contributions?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestContributionHandler_CreateContribution(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotDate time.Time
		svc := &mockContributionService{
			createContributionFn: func(_, pensionID string, amount decimal.Decimal, d time.Time) (*models.Contribution, error) {
				gotAmount, gotDate = amount, d
				return &models.Contribution{Base: models.Base{ID: testContributionID}, PensionID: pensionID, Amount: amount, ContributionDate: d}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupContributionRouter(NewContributionHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/pensions/"+testPensionID+"/contributions",
			`{"amount":"102.50","contribution_date":"2025-03-17"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("102.5")) {
			t.Errorf("expected amount 102.5, got %s", gotAmount)
		}
		if !gotDate.Equal(calDate(2025, time.March, 17)) {
			t.Errorf("expected 2025-03-17, got %s", gotDate)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_CONTRIBUTION" {
			t.Errorf("expected CREATE_CONTRIBUTION audit entry, got %v", audit.entries)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupContributionRouter(NewContributionHandler(&mockContributionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/pensions/"+testPensionID+"/contributions", `{"contribution_date":"2025-03-17"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupContributionRouter(NewContributionHandler(&mockContributionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/pensions/"+testPensionID+"/contributions", `{"amount":100,"contribution_date":"17/03/2025"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 403 when pension belongs to someone else", func(t *testing.T) {
		svc := &mockContributionService{
			createContributionFn: func(_, _ string, _ decimal.Decimal, _ time.Time) (*models.Contribution, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/pensions/"+testPensionID+"/contributions", `{"amount":100,"contribution_date":"2025-03-17"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestContributionHandler_UpdateContribution(t *testing.T) {
	t.Run("returns 200 with partial update", func(t *testing.T) {
		var gotAmount *decimal.Decimal
		var gotDate *time.Time
		svc := &mockContributionService{
			updateContributionFn: func(_, id string, amount *decimal.Decimal, d *time.Time) (*models.Contribution, error) {
				gotAmount, gotDate = amount, d
				return &models.Contribution{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/contributions/"+testContributionID, `{"contribution_date":"2025-04-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAmount != nil {
			t.Errorf("expected nil amount, got %s", gotAmount)
		}
		if gotDate == nil || !gotDate.Equal(calDate(2025, time.April, 1)) {
			t.Errorf("expected 2025-04-01, got %v", gotDate)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockContributionService{
			updateContributionFn: func(_, _ string, _ *decimal.Decimal, _ *time.Time) (*models.Contribution, error) {
				return nil, apperrors.ErrContributionNotFound
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/contributions/"+testContributionID, `{"amount":5}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CONTRIBUTION_NOT_FOUND")
	})
}

func TestContributionHandler_DeleteContribution(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted string
		svc := &mockContributionService{
			deleteContributionFn: func(_, id string) error {
				deleted = id
				return nil
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodDelete, "/contributions/"+testContributionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != testContributionID {
			t.Errorf("expected %q deleted, got %q", testContributionID, deleted)
		}
	})
}

func TestContributionHandler_GetExpectedContributions(t *testing.T) {
	t.Run("defaults to the trailing twelve months", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		svc := &mockContributionService{
			calculateExpectedFn: func(_, _ string, start, end time.Time) ([]reconcile.ExpectedContribution, error) {
				gotStart, gotEnd = start, end
				return []reconcile.ExpectedContribution{
					{Date: calDate(2025, time.March, 15), Amount: decimal.NewFromInt(100), Status: reconcile.StatusReceived,
						Actual: &reconcile.Contribution{ID: testContributionID, Amount: decimal.NewFromInt(102), Date: calDate(2025, time.March, 17)}},
				}, nil
			},
		}
		handler := NewContributionHandler(svc, &mockAuditService{})
		handler.now = func() time.Time { return calDate(2025, time.May, 25) }
		r := setupContributionRouter(handler)

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/expected-contributions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotEnd.Equal(calDate(2025, time.May, 25)) || !gotStart.Equal(calDate(2024, time.May, 25)) {
			t.Errorf("expected 2024-05-25..2025-05-25, got %s..%s", gotStart, gotEnd)
		}

		items := parseJSON(t, rec)["expected_contributions"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		item := items[0].(map[string]interface{})
		if item["date"] != "2025-03-15" || item["status"] != "received" {
			t.Errorf("unexpected item %v", item)
		}
		actual, ok := item["actual_contribution"].(map[string]interface{})
		if !ok || actual["contribution_date"] != "2025-03-17" {
			t.Errorf("expected actual contribution on 2025-03-17, got %v", item["actual_contribution"])
		}
	})

	t.Run("uses explicit window", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		svc := &mockContributionService{
			calculateExpectedFn: func(_, _ string, start, end time.Time) ([]reconcile.ExpectedContribution, error) {
				gotStart, gotEnd = start, end
				return []reconcile.ExpectedContribution{}, nil
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/expected-contributions?start=2025-01-01&end=2025-06-30", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotStart.Equal(calDate(2025, time.January, 1)) || !gotEnd.Equal(calDate(2025, time.June, 30)) {
			t.Errorf("unexpected window %s..%s", gotStart, gotEnd)
		}
		if items := parseJSON(t, rec)["expected_contributions"].([]interface{}); len(items) != 0 {
			t.Errorf("expected empty list, got %v", items)
		}
	})

	t.Run("returns 400 on malformed start", func(t *testing.T) {
		r := setupContributionRouter(NewContributionHandler(&mockContributionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/expected-contributions?start=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestContributionHandler_GetMissingContributions(t *testing.T) {
	t.Run("returns 200 with missing list", func(t *testing.T) {
		svc := &mockContributionService{
			getMissingFn: func(_, _ string) ([]reconcile.MissingContribution, error) {
				return []reconcile.MissingContribution{
					{ExpectedDate: calDate(2025, time.March, 20), Amount: decimal.NewFromInt(100), DaysOverdue: 66},
				}, nil
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/missing-contributions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items := parseJSON(t, rec)["missing_contributions"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		item := items[0].(map[string]interface{})
		if item["expected_date"] != "2025-03-20" || item["days_overdue"] != float64(66) {
			t.Errorf("unexpected item %v", item)
		}
	})

	t.Run("returns 404 when pension missing", func(t *testing.T) {
		svc := &mockContributionService{
			getMissingFn: func(_, _ string) ([]reconcile.MissingContribution, error) {
				return nil, apperrors.ErrPensionNotFound
			},
		}
		r := setupContributionRouter(NewContributionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID+"/missing-contributions", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
