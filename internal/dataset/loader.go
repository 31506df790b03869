package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"reviewdash/pkg/contracts/domain"
)

// Required column headers, matched by exact name after trimming.
const (
	ColCompanyName = "Company Name"
	ColCategory    = "Standardized Category"
	ColReviewCount = "Review Count"
	ColCompanyType = "Company Type"

	// ColCompanyLocation is optional; it feeds the per-category company
	// directory when present.
	ColCompanyLocation = "Company Location"
)

// RequiredColumns lists the headers a report must carry to be loadable.
var RequiredColumns = []string{ColCompanyName, ColCategory, ColReviewCount, ColCompanyType}

// ErrFileNotFound is returned when the review report is missing. This is
// a fatal configuration error: the operator sees it at startup and the
// server never begins serving.
var ErrFileNotFound = errors.New("review report not found")

// SchemaError reports required columns missing from the source sheet.
// Like ErrFileNotFound it is fatal at startup, not a per-row condition.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// Load reads the review report at path and produces the normalized table.
// It is pure given the file contents and the alias tables: the only side
// effect is the file read itself. Soft data-quality issues (unknown
// labels, unparseable counts, rows without a name or category) are
// folded or dropped per row and tallied in LoadStats; only a missing
// file or a broken schema fails the load.
func Load(path string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer f.Close()

	sheet, rows, err := findReviewSheet(f)
	if err != nil {
		return nil, err
	}

	headerRow, columns := locateHeader(rows)
	if headerRow < 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: RequiredColumns}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: missing}
	}

	table := &Table{}
	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		table.Stats.RowsRead++

		name := cell(row, ColCompanyName)
		rawCategory := cell(row, ColCategory)
		if name == "" || rawCategory == "" {
			// Matches the original report's cleaning step: rows without
			// an identity or a category carry no signal.
			table.Stats.RowsDropped++
			logger.Debug("dropping unusable row",
				slog.Int("row", i+1),
				slog.String("company_name", name))
			continue
		}

		category, known := NormalizeCategory(rawCategory)
		if !known {
			table.Stats.UnknownCategories++
			logger.Warn("unrecognized category folded to catch-all",
				slog.Int("row", i+1),
				slog.String("raw", rawCategory),
				slog.String("folded_to", string(category)))
		}

		rawType := cell(row, ColCompanyType)
		companyType, known := NormalizeCompanyType(rawType)
		if !known {
			table.Stats.UnknownTypes++
			logger.Warn("unrecognized company type folded to fallback",
				slog.Int("row", i+1),
				slog.String("raw", rawType),
				slog.String("folded_to", string(companyType)))
		}

		count, hasCount := ParseReviewCount(cell(row, ColReviewCount))
		if !hasCount {
			table.Stats.MissingCounts++
			logger.Warn("unparseable review count, row excluded from sums",
				slog.Int("row", i+1),
				slog.String("raw", cell(row, ColReviewCount)),
				slog.String("company_name", name))
		}

		table.Records = append(table.Records, domain.ReviewRecord{
			CompanyName:     name,
			CompanyLocation: cell(row, ColCompanyLocation),
			Category:        category,
			CompanyType:     companyType,
			ReviewCount:     count,
			HasReviewCount:  hasCount,
		})
		table.Stats.RowsLoaded++
	}

	logger.Info("review report loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows_loaded", table.Stats.RowsLoaded),
		slog.Int("rows_dropped", table.Stats.RowsDropped),
		slog.Int("missing_counts", table.Stats.MissingCounts),
		slog.Int("unknown_types", table.Stats.UnknownTypes),
		slog.Int("unknown_categories", table.Stats.UnknownCategories))

	return table, nil
}

// findReviewSheet picks the sheet holding the review data. The original
// report keeps it on Sheet1; fall back to scanning for any sheet whose
// header carries all required columns. When no sheet qualifies, the
// first non-empty sheet is returned so the caller can report exactly
// which columns are missing.
func findReviewSheet(f *excelize.File) (string, [][]string, error) {
	var fallbackName string
	var fallbackRows [][]string

	names := []string{"Sheet1"}
	for _, name := range f.GetSheetList() {
		if name != "Sheet1" {
			names = append(names, name)
		}
	}
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if headerRow, columns := locateHeader(rows); headerRow >= 0 && hasRequired(columns) {
			return name, rows, nil
		}
		if fallbackRows == nil {
			fallbackName = name
			fallbackRows = rows
		}
	}

	if fallbackRows != nil {
		return fallbackName, fallbackRows, nil
	}
	return "", nil, &SchemaError{Sheet: "Sheet1", Missing: RequiredColumns}
}

func hasRequired(columns map[string]int) bool {
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			return false
		}
	}
	return true
}

// locateHeader scans the first rows for the header and maps column
// positions by exact trimmed name. Returns -1 when no row carries all
// required columns.
func locateHeader(rows [][]string) (int, map[string]int) {
	const scanLimit = 10

	var bestRow = -1
	var bestColumns map[string]int

	for i := 0; i < len(rows) && i < scanLimit; i++ {
		columns := make(map[string]int)
		for j, header := range rows[i] {
			name := strings.TrimSpace(header)
			if name == "" {
				continue
			}
			if _, taken := columns[name]; !taken {
				columns[name] = j
			}
		}

		if hasRequired(columns) {
			return i, columns
		}
		// Remember the closest candidate so SchemaError can name what is
		// actually missing rather than listing every column.
		if bestRow < 0 && len(columns) > 0 {
			bestRow = i
			bestColumns = columns
		}
	}

	if bestRow >= 0 {
		return bestRow, bestColumns
	}
	return -1, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
