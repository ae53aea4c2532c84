package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studentsites/internal/domain"
	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
)

type mockLifecycleService struct {
	SubmitFunc     func(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error)
	TransitionFunc func(ctx context.Context, id string, status string, expectedVersion *int64) (*domain.Order, error)
}

func (m *mockLifecycleService) Submit(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error) {
	return m.SubmitFunc(ctx, sub)
}

func (m *mockLifecycleService) Transition(ctx context.Context, id string, status string, expectedVersion *int64) (*domain.Order, error) {
	return m.TransitionFunc(ctx, id, status, expectedVersion)
}

type mockQueryService struct {
	ListAllFunc            func(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error)
	ListPublicProjectsFunc func(ctx context.Context) ([]domain.ProjectSummary, error)
}

func (m *mockQueryService) ListAll(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error) {
	return m.ListAllFunc(ctx, criteria)
}

func (m *mockQueryService) ListPublicProjects(ctx context.Context) ([]domain.ProjectSummary, error) {
	return m.ListPublicProjectsFunc(ctx)
}

func newTestRouter(lifecycle *mockLifecycleService, queries *mockQueryService) http.Handler {
	c := NewOrderController(lifecycle, queries, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/orders", c.Submit)
	r.Patch("/api/orders/{id}/status", c.UpdateStatus)
	r.Get("/api/orders/all", c.ListAll)
	r.Get("/api/projects", c.ListProjects)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Submit

func TestSubmit_Created(t *testing.T) {
	var received domain.OrderSubmission
	lifecycle := &mockLifecycleService{
		SubmitFunc: func(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error) {
			received = sub
			return &domain.Order{ID: "new", Status: domain.StatusPending}, nil
		},
	}

	body := `{"name":"Jane","email":"jane@example.com","phone":"555","websiteType":"Blog","package":"pro","status":"Completed"}`
	rec := do(t, newTestRouter(lifecycle, &mockQueryService{}), http.MethodPost, "/api/orders", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Order received successfully!"}`, rec.Body.String())
	assert.Equal(t, "Jane", received.Name)
	assert.Equal(t, "pro", received.Package)
}

func TestSubmit_ValidationError(t *testing.T) {
	lifecycle := &mockLifecycleService{
		SubmitFunc: func(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error) {
			return nil, apperrors.NewValidationError("Order validation failed.",
				apperrors.ValidationDetail{Field: "email", Message: "email is required"})
		},
	}

	rec := do(t, newTestRouter(lifecycle, &mockQueryService{}), http.MethodPost, "/api/orders", `{"name":"Jane"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "email", resp.Details[0].Field)
}

func TestSubmit_InvalidJSON(t *testing.T) {
	rec := do(t, newTestRouter(&mockLifecycleService{}, &mockQueryService{}), http.MethodPost, "/api/orders", `{name:`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

// UpdateStatus

func TestUpdateStatus_OK(t *testing.T) {
	orderDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	lifecycle := &mockLifecycleService{
		TransitionFunc: func(ctx context.Context, id string, status string, expectedVersion *int64) (*domain.Order, error) {
			assert.Equal(t, "abc", id)
			assert.Equal(t, "Accepted", status)
			require.NotNil(t, expectedVersion)
			assert.Equal(t, int64(3), *expectedVersion)
			return &domain.Order{
				ID: id, Name: "Jane", Email: "jane@example.com", Phone: "555",
				WebsiteType: "Blog", Package: domain.PackagePro,
				Status: domain.StatusAccepted, OrderDate: orderDate, Version: 4,
			}, nil
		},
	}

	rec := do(t, newTestRouter(lifecycle, &mockQueryService{}), http.MethodPatch, "/api/orders/abc/status", `{"status":"Accepted","version":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "abc", resp.ID)
	assert.Equal(t, "Accepted", resp.Status)
	assert.Equal(t, int64(4), resp.Version)
	assert.True(t, orderDate.Equal(resp.OrderDate))
}

func TestUpdateStatus_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"invalid status", apperrors.NewValidationError("Invalid status value."), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown order", apperrors.NewNotFoundError("Order not found."), http.StatusNotFound, "NOT_FOUND"},
		{"stale version", apperrors.NewConflictError("order abc was modified by another request"), http.StatusConflict, "CONFLICT"},
		{"storage failure", apperrors.NewPersistenceError("updating order status", assert.AnError), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lifecycle := &mockLifecycleService{
				TransitionFunc: func(ctx context.Context, id string, status string, expectedVersion *int64) (*domain.Order, error) {
					return nil, tc.err
				},
			}

			rec := do(t, newTestRouter(lifecycle, &mockQueryService{}), http.MethodPatch, "/api/orders/abc/status", `{"status":"Accepted"}`)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.expectedCode, resp.Error)
		})
	}
}

// ListAll

func TestListAll_PassesFilterQuery(t *testing.T) {
	var received domain.FilterCriteria
	queries := &mockQueryService{
		ListAllFunc: func(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error) {
			received = criteria
			return []domain.Order{{ID: "1", Status: domain.StatusPending, Package: domain.PackageBasic}}, nil
		},
	}

	rec := do(t, newTestRouter(&mockLifecycleService{}, queries), http.MethodGet, "/api/orders/all?websiteType=Blog&package=All&referral=insta", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FilterCriteria{WebsiteType: "Blog", Package: "All", Referral: "insta"}, received)

	var resp []dto.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "1", resp[0].ID)
}

func TestListAll_EmptyIsArray(t *testing.T) {
	queries := &mockQueryService{
		ListAllFunc: func(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error) {
			return []domain.Order{}, nil
		},
	}

	rec := do(t, newTestRouter(&mockLifecycleService{}, queries), http.MethodGet, "/api/orders/all", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ListProjects

func TestListProjects_OmitsContactDetails(t *testing.T) {
	queries := &mockQueryService{
		ListPublicProjectsFunc: func(ctx context.Context) ([]domain.ProjectSummary, error) {
			return []domain.ProjectSummary{{ID: "p1", Name: "Jane", WebsiteType: "Portfolio", Status: domain.StatusCompleted}}, nil
		},
	}

	rec := do(t, newTestRouter(&mockLifecycleService{}, queries), http.MethodGet, "/api/projects", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]interface{}{
		"_id":         "p1",
		"name":        "Jane",
		"websiteType": "Portfolio",
		"status":      "Completed",
	}, raw[0])
}

func TestListProjects_InternalError(t *testing.T) {
	queries := &mockQueryService{
		ListPublicProjectsFunc: func(ctx context.Context) ([]domain.ProjectSummary, error) {
			return nil, apperrors.NewPersistenceError("querying orders", assert.AnError)
		},
	}

	rec := do(t, newTestRouter(&mockLifecycleService{}, queries), http.MethodGet, "/api/projects", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
