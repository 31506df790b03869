package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reviewdash/pkg/contracts/domain"
)

// writeReport builds a minimal xlsx review report in dir and returns its path.
func writeReport(t *testing.T, dir string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, cell := range header {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", axis, cell))
	}
	for r, row := range rows {
		for c, cell := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", axis, cell))
		}
	}

	path := filepath.Join(dir, "Review_Category_Report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var defaultHeader = []string{
	ColCompanyName, ColCategory, ColReviewCount, ColCompanyType, ColCompanyLocation,
}

func TestLoadNormalizesRows(t *testing.T) {
	path := writeReport(t, t.TempDir(), defaultHeader, [][]string{
		{"Al Shifa General", "Hostility", "10", "Gov't Hospital", "Baghdad"},
		{"Crescent Clinic", "hostility ", "N/A", "Private Hosp (small)", "Basra"},
		{"Noor Medical City", "Hostility", "5", "Modern/High-Class Private Hospital", "Erbil"},
	})

	table, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())

	// Closed-set invariants hold for every loaded row.
	for _, rec := range table.Records {
		assert.True(t, rec.CompanyType.Valid())
		assert.True(t, rec.Category.Valid())
	}

	assert.Equal(t, domain.TypeGovernmentHospital, table.Records[0].CompanyType)
	assert.Equal(t, domain.TypeSmallPrivateHospital, table.Records[1].CompanyType)
	assert.Equal(t, domain.TypeHighClassPrivateHospital, table.Records[2].CompanyType)

	// Case and whitespace variants fold to the same canonical category.
	for _, rec := range table.Records {
		assert.Equal(t, domain.CategoryHostility, rec.Category)
	}

	// Row 2's count is missing, not zeroed silently.
	assert.True(t, table.Records[0].HasReviewCount)
	assert.False(t, table.Records[1].HasReviewCount)
	assert.True(t, table.Records[2].HasReviewCount)
	assert.Equal(t, 1, table.Stats.MissingCounts)

	assert.Equal(t, "Baghdad", table.Records[0].CompanyLocation)
}

func TestLoadDropsRowsWithoutIdentity(t *testing.T) {
	path := writeReport(t, t.TempDir(), defaultHeader, [][]string{
		{"Al Shifa General", "Hostility", "10", "Government Hospital", ""},
		{"", "Hostility", "3", "Government Hospital", ""},
		{"Crescent Clinic", "", "4", "Small Private Hospital", ""},
	})

	table, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 2, table.Stats.RowsDropped)
	assert.Equal(t, 3, table.Stats.RowsRead)
}

func TestLoadCountsUnknownLabels(t *testing.T) {
	path := writeReport(t, t.TempDir(), defaultHeader, [][]string{
		{"Mystery Facility", "Parking Issues", "7", "Veterinary Clinic", ""},
	})

	table, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, domain.TypeOtherUnclassified, table.Records[0].CompanyType)
	assert.Equal(t, domain.CategoryOthers, table.Records[0].Category)
	assert.Equal(t, 1, table.Stats.UnknownTypes)
	assert.Equal(t, 1, table.Stats.UnknownCategories)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeReport(t, t.TempDir(),
		[]string{ColCompanyName, ColCategory},
		[][]string{{"Al Shifa General", "Hostility"}},
	)

	_, err := Load(path, nil)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ElementsMatch(t, []string{ColReviewCount, ColCompanyType}, schemaErr.Missing)
}

func TestLoadFindsDataOnSecondarySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet1 carries notes, not the report.
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Exported 2026-08-01"))

	_, err := f.NewSheet("Reviews")
	require.NoError(t, err)
	cells := [][]string{
		defaultHeader,
		{"Al Shifa General", "Hostility", "10", "Government Hospital", "Baghdad"},
	}
	for r, row := range cells {
		for c, cell := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Reviews", axis, cell))
		}
	}

	path := filepath.Join(t.TempDir(), "Review_Category_Report.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Al Shifa General", table.Records[0].CompanyName)
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeReport(t, t.TempDir(), defaultHeader, [][]string{
		{"Al Shifa General", "Hostility", "10", "Government Hospital", ""},
		{"", "", "", "", ""},
		{"Crescent Clinic", "Hostility", "2", "Small Private Hospital", ""},
	})

	table, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 2, table.Stats.RowsRead, "blank rows are not read rows")
}
