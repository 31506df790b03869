package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewdash/internal/analytics"
	apierrors "reviewdash/internal/errors"
	"reviewdash/internal/services"
	"reviewdash/internal/shared/testutil"
	"reviewdash/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (analytics.Summary, error) {
	args := m.Called()
	return args.Get(0).(analytics.Summary), args.Error(1)
}

func (m *MockDashboardService) Categories(ctx context.Context, types []string) ([]analytics.CategoryMeasure, error) {
	args := m.Called(types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CategoryMeasure), args.Error(1)
}

func (m *MockDashboardService) CompanyTypes(ctx context.Context, categories []string) ([]analytics.TypeMeasure, error) {
	args := m.Called(categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.TypeMeasure), args.Error(1)
}

func (m *MockDashboardService) CrossTab(ctx context.Context) (*analytics.CrossTab, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CrossTab), args.Error(1)
}

func (m *MockDashboardService) Companies(ctx context.Context, category string) ([]analytics.CompanyEntry, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CompanyEntry), args.Error(1)
}

func (m *MockDashboardService) Vocabulary(ctx context.Context) (services.Vocabulary, error) {
	args := m.Called()
	return args.Get(0).(services.Vocabulary), args.Error(1)
}

func newTestHandler(t *testing.T, svc DashboardServiceInterface) *DashboardHandler {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	return NewDashboardHandler(svc, logger, errorHandler)
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	mockSvc := new(MockDashboardService)
	mockSvc.On("Summary").Return(analytics.Summary{
		TotalReviews: 295,
		Companies:    3,
		Categories:   8,
		Rows:         6,
	}, nil)

	handler := newTestHandler(t, mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(295), data["total_reviews"])
	assert.Equal(t, float64(3), data["companies"])

	mockSvc.AssertExpectations(t)
}

func TestDashboardHandler_GetCategoriesCommaSeparatedTypes(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc, err := services.NewDashboardService(testutil.SampleTable(), logger)
	require.NoError(t, err)
	handler := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet,
		"/categories?types=Government+Hospital,Small+Private+Hospital", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Status string `json:"status"`
		Data   []struct {
			Category string `json:"category"`
			Reviews  int64  `json:"reviews"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.Len(t, body.Data, len(domain.CategoryOrder()))

	reviews := make(map[string]int64, len(body.Data))
	for _, m := range body.Data {
		reviews[m.Category] = m.Reviews
	}

	// Both selected types contribute; the high-class rows stay out.
	assert.Equal(t, int64(120), reviews[string(domain.CategorySlowServices)])
	assert.Equal(t, int64(30), reviews[string(domain.CategoryExpensiveCosts)])
	assert.Equal(t, int64(12), reviews[string(domain.CategoryUnprofessionalStaff)])
	assert.Equal(t, int64(0), reviews[string(domain.CategoryHostility)])
}

func TestDashboardHandler_GetCategories(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(*MockDashboardService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "unfiltered breakdown",
			query: "/categories",
			setup: func(m *MockDashboardService) {
				m.On("Categories", []string(nil)).Return([]analytics.CategoryMeasure{
					{Category: domain.CategorySlowServices},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "success",
		},
		{
			name:  "filtered by company type",
			query: "/categories?types=Government+Hospital",
			setup: func(m *MockDashboardService) {
				m.On("Categories", []string{"Government Hospital"}).Return([]analytics.CategoryMeasure{
					{Category: domain.CategorySlowServices},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "success",
		},
		{
			name:  "unknown filter value",
			query: "/categories?types=Veterinary+Clinic",
			setup: func(m *MockDashboardService) {
				m.On("Categories", []string{"Veterinary Clinic"}).Return(nil,
					&analytics.UnknownFilterValueError{Field: "company type", Value: "Veterinary Clinic"})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockDashboardService)
			tt.setup(mockSvc)
			handler := newTestHandler(t, mockSvc)

			rec := httptest.NewRecorder()
			handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetCompanies(t *testing.T) {
	t.Run("missing category is rejected before the service", func(t *testing.T) {
		mockSvc := new(MockDashboardService)
		handler := newTestHandler(t, mockSvc)

		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Companies", mock.Anything)
	})

	t.Run("whitespace-only category is a validation problem", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		svc, err := services.NewDashboardService(testutil.SampleTable(), logger)
		require.NoError(t, err)
		handler := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies?category=%20", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), apierrors.TypeValidation)
	})

	t.Run("unknown category maps to validation problem", func(t *testing.T) {
		mockSvc := new(MockDashboardService)
		mockSvc.On("Companies", "Parking").Return(nil, services.ErrUnknownCategory)
		handler := newTestHandler(t, mockSvc)

		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies?category=Parking", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "CATEGORY_UNKNOWN")
		mockSvc.AssertExpectations(t)
	})

	t.Run("lists companies for canonical category", func(t *testing.T) {
		mockSvc := new(MockDashboardService)
		mockSvc.On("Companies", string(domain.CategoryHostility)).Return([]analytics.CompanyEntry{
			{Name: "Baghdad Teaching Hospital"},
		}, nil)
		handler := newTestHandler(t, mockSvc)

		rec := httptest.NewRecorder()
		handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies?category=Hostility", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(1), body["count"])
		mockSvc.AssertExpectations(t)
	})
}

func TestDashboardHandler_GetVocabulary(t *testing.T) {
	mockSvc := new(MockDashboardService)
	mockSvc.On("Vocabulary").Return(services.Vocabulary{
		CompanyTypes: domain.CompanyTypeOrder(),
		Categories:   domain.CategoryOrder(),
		Colors:       domain.TypeColors,
	}, nil)

	handler := newTestHandler(t, mockSvc)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vocabulary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#2563eb")
	assert.Contains(t, rec.Body.String(), string(domain.CategorySlowServices))
	mockSvc.AssertExpectations(t)
}

func TestDashboardHandler_GetCrossTab(t *testing.T) {
	mockSvc := new(MockDashboardService)
	mockSvc.On("CrossTab").Return(&analytics.CrossTab{
		CompanyTypes: domain.CompanyTypeOrder(),
	}, nil)

	handler := newTestHandler(t, mockSvc)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crosstab", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domain.TypeGovernmentHospital))
	mockSvc.AssertExpectations(t)
}
