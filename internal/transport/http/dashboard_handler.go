package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"reviewdash/internal/analytics"
	apierrors "reviewdash/internal/errors"
	"reviewdash/internal/middleware"
	"reviewdash/internal/services"
)

// DashboardHandler handles dashboard aggregate requests with RFC 7807
// compliant error responses
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/categories", h.GetCategories)
	r.Get("/company-types", h.GetCompanyTypes)
	r.Get("/crosstab", h.GetCrossTab)
	r.Get("/companies", h.GetCompanies)
	r.Get("/vocabulary", h.GetVocabulary)

	return r
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "failed to compute summary")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetCategories handles GET /api/dashboard/categories?types=...
func (h *DashboardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	types := r.URL.Query()["types"]

	measures, err := h.service.Categories(r.Context(), types)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to compute category breakdown")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   measures,
		"count":  len(measures),
	})
}

// GetCompanyTypes handles GET /api/dashboard/company-types?categories=...
func (h *DashboardHandler) GetCompanyTypes(w http.ResponseWriter, r *http.Request) {
	categories := r.URL.Query()["categories"]

	measures, err := h.service.CompanyTypes(r.Context(), categories)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to compute company type breakdown")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   measures,
		"count":  len(measures),
	})
}

// GetCrossTab handles GET /api/dashboard/crosstab
func (h *DashboardHandler) GetCrossTab(w http.ResponseWriter, r *http.Request) {
	crosstab, err := h.service.CrossTab(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "failed to compute crosstab")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   crosstab,
	})
}

// companiesRequest carries the validated query parameters for the
// company directory endpoint
type companiesRequest struct {
	Category string `validate:"required"`
}

// GetCompanies handles GET /api/dashboard/companies?category=...
func (h *DashboardHandler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	req := companiesRequest{Category: r.URL.Query().Get("category")}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("category", "Category parameter is required"))
		return
	}

	companies, err := h.service.Companies(r.Context(), req.Category)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to list companies")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   companies,
		"count":  len(companies),
	})
}

// GetVocabulary handles GET /api/dashboard/vocabulary
func (h *DashboardHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab, err := h.service.Vocabulary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "failed to load vocabulary")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   vocab,
	})
}

// handleServiceError maps service errors onto API errors before
// delegating to the central handler
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), msg,
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
	)

	var filterErr *analytics.UnknownFilterValueError
	switch {
	case errors.As(err, &filterErr):
		h.errorHandler.HandleError(w, r, apierrors.UnknownFilterError(filterErr.Field, filterErr.Value))
	case errors.Is(err, services.ErrCategoryRequired):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("category", "Category parameter is required"))
	case errors.Is(err, services.ErrUnknownCategory):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"CATEGORY_UNKNOWN",
			"Unknown review category",
			err.Error(),
		))
	case errors.Is(err, services.ErrTableNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.ErrServiceUnavailable)
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
