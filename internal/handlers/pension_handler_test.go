package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/reconcile"
	"github.com/JimJafar/pension-tracker/internal/services"
)

const testPensionID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a60"

// --- mock pension service ---

type mockPensionService struct {
	createPensionFn   func(userID string, input services.PensionInput) (*models.Pension, error)
	getUserPensionsFn func(userID string) ([]models.Pension, error)
	getPensionByIDFn  func(userID, pensionID string) (*models.Pension, error)
	updatePensionFn   func(userID, pensionID string, update services.PensionUpdate) (*models.Pension, error)
	deletePensionFn   func(userID, pensionID string) error
}

func (m *mockPensionService) CreatePension(userID string, input services.PensionInput) (*models.Pension, error) {
	if m.createPensionFn != nil {
		return m.createPensionFn(userID, input)
	}
	return &models.Pension{}, nil
}

func (m *mockPensionService) GetUserPensions(userID string) ([]models.Pension, error) {
	if m.getUserPensionsFn != nil {
		return m.getUserPensionsFn(userID)
	}
	return []models.Pension{}, nil
}

func (m *mockPensionService) GetPensionByID(userID, pensionID string) (*models.Pension, error) {
	if m.getPensionByIDFn != nil {
		return m.getPensionByIDFn(userID, pensionID)
	}
	return &models.Pension{}, nil
}

func (m *mockPensionService) UpdatePension(userID, pensionID string, update services.PensionUpdate) (*models.Pension, error) {
	if m.updatePensionFn != nil {
		return m.updatePensionFn(userID, pensionID, update)
	}
	return &models.Pension{}, nil
}

func (m *mockPensionService) DeletePension(userID, pensionID string) error {
	if m.deletePensionFn != nil {
		return m.deletePensionFn(userID, pensionID)
	}
	return nil
}

func setupPensionRouter(handler *PensionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/pensions", handler.ListPensions)
	auth.POST("/pensions", handler.CreatePension)
	auth.GET("/pensions/:id", handler.GetPension)
	auth.PUT("/pensions/:id", handler.UpdatePension)
	auth.DELETE("/pensions/:id", handler.DeletePension)
	r.GET("/anonymous/pensions", handler.ListPensions)
	return r
}

// --- tests ---

func TestPensionHandler_ListPensions(t *testing.T) {
	t.Run("returns 200 with pensions", func(t *testing.T) {
		svc := &mockPensionService{
			getUserPensionsFn: func(userID string) ([]models.Pension, error) {
				if userID != testUserID {
					t.Errorf("expected user %q, got %q", testUserID, userID)
				}
				return []models.Pension{
					{Base: models.Base{ID: testPensionID}, Name: "Work", Type: models.PensionTypeManaged,
						TotalContributions: decimal.RequireFromString("1200")},
				}, nil
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		pensions, ok := parseJSON(t, rec)["pensions"].([]interface{})
		if !ok || len(pensions) != 1 {
			t.Fatalf("expected 1 pension, got %v", pensions)
		}
		p := pensions[0].(map[string]interface{})
		if p["total_contributions"] != "1200" {
			t.Errorf("expected total_contributions \"1200\", got %v", p["total_contributions"])
		}
	})

	t.Run("returns 401 without user", func(t *testing.T) {
		r := setupPensionRouter(NewPensionHandler(&mockPensionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/anonymous/pensions", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})
}

func TestPensionHandler_GetPension(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockPensionService{
			getPensionByIDFn: func(_, pensionID string) (*models.Pension, error) {
				return &models.Pension{Base: models.Base{ID: pensionID}, Name: "SIPP", Type: models.PensionTypeSIPP}, nil
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		p := parseJSON(t, rec)["pension"].(map[string]interface{})
		if p["id"] != testPensionID {
			t.Errorf("expected id %q, got %v", testPensionID, p["id"])
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupPensionRouter(NewPensionHandler(&mockPensionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPensionService{
			getPensionByIDFn: func(_, _ string) (*models.Pension, error) {
				return nil, apperrors.ErrPensionNotFound
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PENSION_NOT_FOUND")
	})

	t.Run("returns 403 for another user's pension", func(t *testing.T) {
		svc := &mockPensionService{
			getPensionByIDFn: func(_, _ string) (*models.Pension, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/pensions/"+testPensionID, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})
}

func TestPensionHandler_CreatePension(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.PensionInput
		svc := &mockPensionService{
			createPensionFn: func(_ string, input services.PensionInput) (*models.Pension, error) {
				got = input
				return &models.Pension{Base: models.Base{ID: testPensionID}, Name: input.Name, Type: input.Type,
					ContributionType: input.ContributionType}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPensionRouter(NewPensionHandler(svc, audit))

		body := `{"name":"Work","type":"managed","contribution_type":"regular_fixed","monthly_amount":100,"day_of_month":15}`
		rec := doRequest(r, http.MethodPost, "/pensions", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.ContributionType != reconcile.ContributionTypeRegularFixed {
			t.Errorf("expected regular_fixed, got %q", got.ContributionType)
		}
		if got.MonthlyAmount == nil || !got.MonthlyAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected monthly amount 100, got %v", got.MonthlyAmount)
		}
		if got.DayOfMonth == nil || *got.DayOfMonth != 15 {
			t.Errorf("expected day 15, got %v", got.DayOfMonth)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditCreatePension {
			t.Errorf("expected CREATE_PENSION audit entry, got %v", audit.entries)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupPensionRouter(NewPensionHandler(&mockPensionService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/pensions", `{"name":"Work","type":"ISA","contribution_type":"manual"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on day out of range", func(t *testing.T) {
		r := setupPensionRouter(NewPensionHandler(&mockPensionService{}, &mockAuditService{}))

		body := `{"name":"Work","type":"SIPP","contribution_type":"regular_fixed","monthly_amount":100,"day_of_month":32}`
		rec := doRequest(r, http.MethodPost, "/pensions", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns service validation errors", func(t *testing.T) {
		svc := &mockPensionService{
			createPensionFn: func(_ string, _ services.PensionInput) (*models.Pension, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly_amount is required")
			},
		}
		audit := &mockAuditService{}
		r := setupPensionRouter(NewPensionHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/pensions", `{"name":"Work","type":"SIPP","contribution_type":"regular_fixed"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Error("expected no audit entry on failure")
		}
	})
}

func TestPensionHandler_UpdatePension(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var got services.PensionUpdate
		svc := &mockPensionService{
			updatePensionFn: func(_, pensionID string, update services.PensionUpdate) (*models.Pension, error) {
				got = update
				return &models.Pension{Base: models.Base{ID: pensionID}, Name: *update.Name}, nil
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/pensions/"+testPensionID, `{"name":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name == nil || *got.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %v", got.Name)
		}
		if got.Type != nil || got.ContributionType != nil || got.MonthlyAmount != nil || got.DayOfMonth != nil {
			t.Errorf("expected other fields nil, got %+v", got)
		}
	})

	t.Run("returns 403 for another user's pension", func(t *testing.T) {
		svc := &mockPensionService{
			updatePensionFn: func(_, _ string, _ services.PensionUpdate) (*models.Pension, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPut, "/pensions/"+testPensionID, `{"name":"Mine now"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestPensionHandler_DeletePension(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupPensionRouter(NewPensionHandler(&mockPensionService{}, audit))

		rec := doRequest(r, http.MethodDelete, "/pensions/"+testPensionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["success"] != true {
			t.Error("expected success true")
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testPensionID {
			t.Errorf("expected DELETE_PENSION audit entry, got %v", audit.entries)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPensionService{
			deletePensionFn: func(_, _ string) error { return apperrors.ErrPensionNotFound },
		}
		r := setupPensionRouter(NewPensionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodDelete, "/pensions/"+testPensionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
