package analytics

import (
	"fmt"
	"strings"

	"reviewdash/pkg/contracts/domain"
)

// Filter narrows aggregation to a selection of canonical labels. Empty
// slices mean "no restriction". Filters arrive from dashboard dropdowns
// that are populated from the canonical vocabularies, so values that are
// not canonical labels are rejected rather than folded.
type Filter struct {
	Types      []domain.CompanyType
	Categories []domain.Category
}

// UnknownFilterValueError reports a filter value outside the canonical
// vocabulary.
type UnknownFilterValueError struct {
	Field string
	Value string
}

func (e *UnknownFilterValueError) Error() string {
	return fmt.Sprintf("unknown %s filter value: %q", e.Field, e.Value)
}

// ParseFilter builds a Filter from raw selection strings. Each string
// may carry several comma-separated values, matching the query-param
// convention the dashboard uses. Values are trimmed but must otherwise
// match a canonical label exactly.
func ParseFilter(types, categories []string) (Filter, error) {
	var f Filter
	for _, raw := range splitValues(types) {
		v := domain.CompanyType(raw)
		if !v.Valid() {
			return Filter{}, &UnknownFilterValueError{Field: "company_type", Value: raw}
		}
		f.Types = append(f.Types, v)
	}
	for _, raw := range splitValues(categories) {
		v := domain.Category(raw)
		if !v.Valid() {
			return Filter{}, &UnknownFilterValueError{Field: "category", Value: raw}
		}
		f.Categories = append(f.Categories, v)
	}
	return f, nil
}

// splitValues expands comma-separated selections, trims each value, and
// drops empties.
func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// Matches reports whether a record passes the filter.
func (f Filter) Matches(rec domain.ReviewRecord) bool {
	if len(f.Types) > 0 && !containsType(f.Types, rec.CompanyType) {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, rec.Category) {
		return false
	}
	return true
}

func containsType(set []domain.CompanyType, v domain.CompanyType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsCategory(set []domain.Category, v domain.Category) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
