package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reviewdash/internal/analytics"
	"reviewdash/internal/dataset"
	"reviewdash/pkg/contracts/domain"
)

// DashboardService answers aggregate queries over the normalized review
// table. The table is immutable after load, so every method is safe for
// concurrent use.
type DashboardService struct {
	table  *dataset.Table
	logger *slog.Logger
}

// Vocabulary lists the canonical filter values and chart colors the
// frontend builds its controls from.
type Vocabulary struct {
	CompanyTypes []domain.CompanyType          `json:"company_types"`
	Categories   []domain.Category             `json:"categories"`
	Colors       map[domain.CompanyType]string `json:"colors"`
}

// NewDashboardService creates a dashboard service over a loaded table
func NewDashboardService(table *dataset.Table, logger *slog.Logger) (*DashboardService, error) {
	if table == nil {
		return nil, ErrTableNotLoaded
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DashboardService initialized",
		slog.Int("records", table.Len()),
		slog.Int("rows_dropped", table.Stats.RowsDropped),
		slog.Int("missing_counts", table.Stats.MissingCounts))

	return &DashboardService{
		table:  table,
		logger: logger,
	}, nil
}

// Summary returns the headline totals for the whole table
func (s *DashboardService) Summary(ctx context.Context) (analytics.Summary, error) {
	summary := analytics.Summarize(s.table, analytics.Filter{})

	s.logger.DebugContext(ctx, "summary computed",
		slog.Int64("total_reviews", summary.TotalReviews),
		slog.Int("companies", summary.Companies))

	return summary, nil
}

// Categories returns the per-category breakdown, optionally restricted
// to the given company types.
func (s *DashboardService) Categories(ctx context.Context, types []string) ([]analytics.CategoryMeasure, error) {
	filter, err := analytics.ParseFilter(types, nil)
	if err != nil {
		return nil, err
	}

	measures := analytics.CategoryBreakdown(s.table, filter)

	s.logger.DebugContext(ctx, "category breakdown computed",
		slog.Int("filter_types", len(filter.Types)),
		slog.Int("categories", len(measures)))

	return measures, nil
}

// CompanyTypes returns the per-type breakdown, optionally restricted to
// the given categories.
func (s *DashboardService) CompanyTypes(ctx context.Context, categories []string) ([]analytics.TypeMeasure, error) {
	filter, err := analytics.ParseFilter(nil, categories)
	if err != nil {
		return nil, err
	}

	measures := analytics.TypeBreakdown(s.table, filter)

	s.logger.DebugContext(ctx, "company type breakdown computed",
		slog.Int("filter_categories", len(filter.Categories)),
		slog.Int("types", len(measures)))

	return measures, nil
}

// CrossTab returns the full category by company type matrix
func (s *DashboardService) CrossTab(ctx context.Context) (*analytics.CrossTab, error) {
	crosstab := analytics.BuildCrossTab(s.table, analytics.Filter{})

	s.logger.DebugContext(ctx, "crosstab computed",
		slog.Int("rows", len(crosstab.Rows)))

	return crosstab, nil
}

// Companies returns the deduplicated companies that have at least one
// review in the given category. The category must be canonical.
func (s *DashboardService) Companies(ctx context.Context, category string) ([]analytics.CompanyEntry, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrCategoryRequired
	}

	filter, err := analytics.ParseFilter(nil, []string{category})
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if len(filter.Categories) == 0 {
		return nil, ErrCategoryRequired
	}

	companies := analytics.CompanyDirectory(s.table, filter.Categories[0])

	s.logger.DebugContext(ctx, "company directory computed",
		slog.String("category", category),
		slog.Int("companies", len(companies)))

	return companies, nil
}

// Vocabulary returns the canonical vocabularies in dashboard order
func (s *DashboardService) Vocabulary(ctx context.Context) (Vocabulary, error) {
	return Vocabulary{
		CompanyTypes: domain.CompanyTypeOrder(),
		Categories:   domain.CategoryOrder(),
		Colors:       domain.TypeColors,
	}, nil
}

// Stats exposes the load statistics for health reporting
func (s *DashboardService) Stats() dataset.LoadStats {
	return s.table.Stats
}

// RecordCount returns the number of normalized rows
func (s *DashboardService) RecordCount() int {
	return s.table.Len()
}
