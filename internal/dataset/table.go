package dataset

import "reviewdash/pkg/contracts/domain"

// Table is the normalized in-memory review table. It is built once at
// startup and never mutated afterwards, so concurrent readers need no
// locking.
type Table struct {
	Records []domain.ReviewRecord
	Stats   LoadStats
}

// LoadStats records what happened during a load. Soft data-quality
// fallbacks are counted here instead of failing the load.
type LoadStats struct {
	RowsRead          int `json:"rows_read"`
	RowsLoaded        int `json:"rows_loaded"`
	RowsDropped       int `json:"rows_dropped"`
	MissingCounts     int `json:"missing_counts"`
	UnknownTypes      int `json:"unknown_types"`
	UnknownCategories int `json:"unknown_categories"`
}

// Len returns the number of normalized records.
func (t *Table) Len() int {
	return len(t.Records)
}
