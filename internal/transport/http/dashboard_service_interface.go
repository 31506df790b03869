package http

import (
	"context"

	"reviewdash/internal/analytics"
	"reviewdash/internal/services"
)

// DashboardServiceInterface defines the interface for dashboard queries
type DashboardServiceInterface interface {
	Summary(ctx context.Context) (analytics.Summary, error)
	Categories(ctx context.Context, types []string) ([]analytics.CategoryMeasure, error)
	CompanyTypes(ctx context.Context, categories []string) ([]analytics.TypeMeasure, error)
	CrossTab(ctx context.Context) (*analytics.CrossTab, error)
	Companies(ctx context.Context, category string) ([]analytics.CompanyEntry, error)
	Vocabulary(ctx context.Context) (services.Vocabulary, error)
}
