// Package analytics derives the aggregate result sets the dashboard
// renders from the normalized review table. Every function here is a
// pure computation over (table, filter): results are built fresh on each
// call, iterate the canonical vocabulary orders so output is
// byte-identical across renders, and report zero-valued entries instead
// of omitting empty groups.
package analytics

import (
	"sort"

	"reviewdash/internal/dataset"
	"reviewdash/pkg/contracts/domain"
)

// Measure is the common summary bundle for one group: row count,
// distinct companies, review sum, and the group's share of the review
// sum across the whole filtered selection. Rows with a missing review
// count contribute to Rows and Companies but never to Reviews.
type Measure struct {
	Rows      int     `json:"rows"`
	Companies int     `json:"companies"`
	Reviews   int64   `json:"reviews"`
	Share     float64 `json:"share"`
}

// CategoryMeasure is a Measure keyed by canonical category.
type CategoryMeasure struct {
	Category domain.Category `json:"category"`
	Measure
}

// TypeMeasure is a Measure keyed by canonical company type.
type TypeMeasure struct {
	CompanyType domain.CompanyType `json:"company_type"`
	Measure
}

// Summary carries the dashboard's headline metrics.
type Summary struct {
	TotalReviews     int64 `json:"total_reviews"`
	Companies        int   `json:"companies"`
	Categories       int   `json:"categories"`
	Rows             int   `json:"rows"`
	RowsWithoutCount int   `json:"rows_without_count"`
}

// CrossTabCell is one (category, company type) intersection.
type CrossTabCell struct {
	CompanyType domain.CompanyType `json:"company_type"`
	Rows        int                `json:"rows"`
	Companies   int                `json:"companies"`
	Reviews     int64              `json:"reviews"`
}

// CrossTabRow is one category's cells across every company type, with
// row totals matching the original report tables' Total column.
type CrossTabRow struct {
	Category     domain.Category `json:"category"`
	Cells        []CrossTabCell  `json:"cells"`
	TotalRows    int             `json:"total_rows"`
	TotalReviews int64           `json:"total_reviews"`
}

// CrossTab is the category × company-type matrix.
type CrossTab struct {
	CompanyTypes []domain.CompanyType `json:"company_types"`
	Rows         []CrossTabRow        `json:"rows"`
}

// CompanyEntry is one entry of the per-category company directory.
type CompanyEntry struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Summarize computes the headline metrics for the filtered selection.
func Summarize(t *dataset.Table, f Filter) Summary {
	var s Summary
	companies := make(map[string]struct{})
	for _, rec := range t.Records {
		if !f.Matches(rec) {
			continue
		}
		s.Rows++
		companies[rec.CompanyName] = struct{}{}
		if rec.HasReviewCount {
			s.TotalReviews += rec.ReviewCount
		} else {
			s.RowsWithoutCount++
		}
	}
	s.Companies = len(companies)
	s.Categories = len(domain.CategoryOrder())
	return s
}

// CategoryBreakdown aggregates the filtered selection per canonical
// category, in canonical order, one entry per category even when empty.
func CategoryBreakdown(t *dataset.Table, f Filter) []CategoryMeasure {
	order := domain.CategoryOrder()
	index := make(map[domain.Category]int, len(order))
	out := make([]CategoryMeasure, len(order))
	companies := make([]map[string]struct{}, len(order))
	for i, c := range order {
		index[c] = i
		out[i] = CategoryMeasure{Category: c}
		companies[i] = make(map[string]struct{})
	}

	var total int64
	for _, rec := range t.Records {
		if !f.Matches(rec) {
			continue
		}
		i := index[rec.Category]
		out[i].Rows++
		companies[i][rec.CompanyName] = struct{}{}
		if rec.HasReviewCount {
			out[i].Reviews += rec.ReviewCount
			total += rec.ReviewCount
		}
	}

	for i := range out {
		out[i].Companies = len(companies[i])
		out[i].Share = share(out[i].Reviews, total)
	}
	return out
}

// TypeBreakdown aggregates the filtered selection per canonical company
// type, fallback bucket last.
func TypeBreakdown(t *dataset.Table, f Filter) []TypeMeasure {
	order := domain.CompanyTypeOrder()
	index := make(map[domain.CompanyType]int, len(order))
	out := make([]TypeMeasure, len(order))
	companies := make([]map[string]struct{}, len(order))
	for i, ct := range order {
		index[ct] = i
		out[i] = TypeMeasure{CompanyType: ct}
		companies[i] = make(map[string]struct{})
	}

	var total int64
	for _, rec := range t.Records {
		if !f.Matches(rec) {
			continue
		}
		i := index[rec.CompanyType]
		out[i].Rows++
		companies[i][rec.CompanyName] = struct{}{}
		if rec.HasReviewCount {
			out[i].Reviews += rec.ReviewCount
			total += rec.ReviewCount
		}
	}

	for i := range out {
		out[i].Companies = len(companies[i])
		out[i].Share = share(out[i].Reviews, total)
	}
	return out
}

// BuildCrossTab computes the category × company-type matrix for the
// filtered selection.
func BuildCrossTab(t *dataset.Table, f Filter) *CrossTab {
	catOrder := domain.CategoryOrder()
	typeOrder := domain.CompanyTypeOrder()

	catIndex := make(map[domain.Category]int, len(catOrder))
	for i, c := range catOrder {
		catIndex[c] = i
	}
	typeIndex := make(map[domain.CompanyType]int, len(typeOrder))
	for i, ct := range typeOrder {
		typeIndex[ct] = i
	}

	rows := make([]CrossTabRow, len(catOrder))
	companies := make([][]map[string]struct{}, len(catOrder))
	for i, c := range catOrder {
		cells := make([]CrossTabCell, len(typeOrder))
		companies[i] = make([]map[string]struct{}, len(typeOrder))
		for j, ct := range typeOrder {
			cells[j] = CrossTabCell{CompanyType: ct}
			companies[i][j] = make(map[string]struct{})
		}
		rows[i] = CrossTabRow{Category: c, Cells: cells}
	}

	for _, rec := range t.Records {
		if !f.Matches(rec) {
			continue
		}
		i := catIndex[rec.Category]
		j := typeIndex[rec.CompanyType]
		rows[i].Cells[j].Rows++
		rows[i].TotalRows++
		companies[i][j][rec.CompanyName] = struct{}{}
		if rec.HasReviewCount {
			rows[i].Cells[j].Reviews += rec.ReviewCount
			rows[i].TotalReviews += rec.ReviewCount
		}
	}

	for i := range rows {
		for j := range rows[i].Cells {
			rows[i].Cells[j].Companies = len(companies[i][j])
		}
	}

	return &CrossTab{CompanyTypes: typeOrder, Rows: rows}
}

// CompanyDirectory lists the distinct (name, location) pairs reviewed
// under a category, sorted by name then location. A category with no
// rows yields an empty, non-nil slice.
func CompanyDirectory(t *dataset.Table, category domain.Category) []CompanyEntry {
	seen := make(map[CompanyEntry]struct{})
	for _, rec := range t.Records {
		if rec.Category != category {
			continue
		}
		seen[CompanyEntry{Name: rec.CompanyName, Location: rec.CompanyLocation}] = struct{}{}
	}

	out := make([]CompanyEntry, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
