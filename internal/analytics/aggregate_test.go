package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewdash/internal/dataset"
	"reviewdash/pkg/contracts/domain"
)

func record(name string, category domain.Category, companyType domain.CompanyType, count int64, hasCount bool) domain.ReviewRecord {
	return domain.ReviewRecord{
		CompanyName:    name,
		Category:       category,
		CompanyType:    companyType,
		ReviewCount:    count,
		HasReviewCount: hasCount,
	}
}

// threeRowTable mirrors the end-to-end cleaning example: three facilities
// in one category, one of them with an unparseable count.
func threeRowTable() *dataset.Table {
	return &dataset.Table{Records: []domain.ReviewRecord{
		record("Al Shifa General", domain.CategoryHostility, domain.TypeGovernmentHospital, 10, true),
		record("Crescent Clinic", domain.CategoryHostility, domain.TypeSmallPrivateHospital, 0, false),
		record("Noor Medical City", domain.CategoryHostility, domain.TypeHighClassPrivateHospital, 5, true),
	}}
}

func TestCategoryBreakdownEndToEnd(t *testing.T) {
	out := CategoryBreakdown(threeRowTable(), Filter{})

	require.Len(t, out, len(domain.CategoryOrder()), "every canonical category appears")

	byCategory := make(map[domain.Category]CategoryMeasure)
	for _, m := range out {
		byCategory[m.Category] = m
	}

	hostility := byCategory[domain.CategoryHostility]
	assert.Equal(t, 3, hostility.Rows, "count-missing row still counts categorically")
	assert.Equal(t, int64(15), hostility.Reviews, "count-missing row excluded from sum")
	assert.Equal(t, 3, hostility.Companies)
	assert.InDelta(t, 1.0, hostility.Share, 1e-9)

	// Untouched categories are present with explicit zeros.
	slow := byCategory[domain.CategorySlowServices]
	assert.Zero(t, slow.Rows)
	assert.Zero(t, slow.Reviews)
	assert.Zero(t, slow.Share)
}

func TestCategoryBreakdownCanonicalOrder(t *testing.T) {
	out := CategoryBreakdown(threeRowTable(), Filter{})
	for i, c := range domain.CategoryOrder() {
		assert.Equal(t, c, out[i].Category)
	}
}

func TestAggregationOrderIndependent(t *testing.T) {
	table := threeRowTable()
	// Add more rows to make shuffling meaningful.
	table.Records = append(table.Records,
		record("Al Shifa General", domain.CategoryExpensiveCosts, domain.TypeGovernmentHospital, 7, true),
		record("Rafidain Center", domain.CategorySlowServices, domain.TypeOtherUnclassified, 2, true),
		record("Crescent Clinic", domain.CategorySlowServices, domain.TypeSmallPrivateHospital, 0, false),
	)

	want := CategoryBreakdown(table, Filter{})
	wantTypes := TypeBreakdown(table, Filter{})
	wantTab := BuildCrossTab(table, Filter{})

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := &dataset.Table{Records: append([]domain.ReviewRecord(nil), table.Records...)}
		rng.Shuffle(len(shuffled.Records), func(a, b int) {
			shuffled.Records[a], shuffled.Records[b] = shuffled.Records[b], shuffled.Records[a]
		})

		assert.Equal(t, want, CategoryBreakdown(shuffled, Filter{}))
		assert.Equal(t, wantTypes, TypeBreakdown(shuffled, Filter{}))
		assert.Equal(t, wantTab, BuildCrossTab(shuffled, Filter{}))
	}
}

func TestZeroMatchFilterYieldsZeroResults(t *testing.T) {
	// No record has this company type; selection must produce explicit
	// zeros, not an error and not missing entries.
	table := &dataset.Table{Records: []domain.ReviewRecord{
		record("Al Shifa General", domain.CategoryHostility, domain.TypeGovernmentHospital, 10, true),
	}}
	f := Filter{Types: []domain.CompanyType{domain.TypeHighClassPrivateHospital}}

	s := Summarize(table, f)
	assert.Zero(t, s.Rows)
	assert.Zero(t, s.TotalReviews)
	assert.Zero(t, s.Companies)

	out := CategoryBreakdown(table, f)
	require.Len(t, out, len(domain.CategoryOrder()))
	for _, m := range out {
		assert.Zero(t, m.Rows)
		assert.Zero(t, m.Reviews)
		assert.Zero(t, m.Companies)
	}

	tab := BuildCrossTab(table, f)
	for _, row := range tab.Rows {
		assert.Zero(t, row.TotalRows)
		assert.Zero(t, row.TotalReviews)
	}
}

func TestTypeBreakdownFilterByCategory(t *testing.T) {
	table := threeRowTable()
	table.Records = append(table.Records,
		record("Rafidain Center", domain.CategoryExpensiveCosts, domain.TypeGovernmentHospital, 100, true),
	)

	out := TypeBreakdown(table, Filter{Categories: []domain.Category{domain.CategoryHostility}})

	byType := make(map[domain.CompanyType]TypeMeasure)
	for _, m := range out {
		byType[m.CompanyType] = m
	}
	assert.Equal(t, int64(10), byType[domain.TypeGovernmentHospital].Reviews,
		"rows outside the category filter are invisible")
	assert.Equal(t, 1, byType[domain.TypeSmallPrivateHospital].Rows)
	assert.Zero(t, byType[domain.TypeOtherUnclassified].Rows)
}

func TestBuildCrossTabTotals(t *testing.T) {
	tab := BuildCrossTab(threeRowTable(), Filter{})

	require.Len(t, tab.CompanyTypes, len(domain.CompanyTypeOrder()))

	var hostility CrossTabRow
	for _, row := range tab.Rows {
		if row.Category == domain.CategoryHostility {
			hostility = row
		}
	}
	require.NotNil(t, hostility.Cells)
	assert.Equal(t, 3, hostility.TotalRows)
	assert.Equal(t, int64(15), hostility.TotalReviews)

	var cellSum int64
	var rowSum int
	for _, cell := range hostility.Cells {
		cellSum += cell.Reviews
		rowSum += cell.Rows
	}
	assert.Equal(t, hostility.TotalReviews, cellSum)
	assert.Equal(t, hostility.TotalRows, rowSum)
}

func TestCompanyDirectory(t *testing.T) {
	table := &dataset.Table{Records: []domain.ReviewRecord{
		{CompanyName: "Noor Medical City", CompanyLocation: "Erbil", Category: domain.CategoryHostility, CompanyType: domain.TypeHighClassPrivateHospital},
		{CompanyName: "Al Shifa General", CompanyLocation: "Baghdad", Category: domain.CategoryHostility, CompanyType: domain.TypeGovernmentHospital},
		// Duplicate facility under the same category collapses.
		{CompanyName: "Al Shifa General", CompanyLocation: "Baghdad", Category: domain.CategoryHostility, CompanyType: domain.TypeGovernmentHospital},
		{CompanyName: "Rafidain Center", CompanyLocation: "Basra", Category: domain.CategoryExpensiveCosts, CompanyType: domain.TypeOtherUnclassified},
	}}

	got := CompanyDirectory(table, domain.CategoryHostility)
	assert.Equal(t, []CompanyEntry{
		{Name: "Al Shifa General", Location: "Baghdad"},
		{Name: "Noor Medical City", Location: "Erbil"},
	}, got)

	empty := CompanyDirectory(table, domain.CategoryPoorCompensation)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name       string
		types      []string
		categories []string
		wantErr    bool
	}{
		{
			name:       "canonical values accepted",
			types:      []string{"Government Hospital"},
			categories: []string{"Hostility"},
		},
		{
			name:  "values trimmed",
			types: []string{" Government Hospital "},
		},
		{
			name:  "empty values skipped",
			types: []string{""},
		},
		{
			name:  "comma-separated values split",
			types: []string{"Government Hospital,Small Private Hospital"},
		},
		{
			name:       "comma-separated with spaces",
			categories: []string{"Hostility, Expensive Costs"},
		},
		{
			name:  "trailing comma tolerated",
			types: []string{"Government Hospital,"},
		},
		{
			name:    "unknown value inside list rejected",
			types:   []string{"Government Hospital,Field Hospital"},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			types:   []string{"Field Hospital"},
			wantErr: true,
		},
		{
			name:       "unknown category rejected",
			categories: []string{"Parking"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.types, tt.categories)
			if tt.wantErr {
				require.Error(t, err)
				var ufe *UnknownFilterValueError
				assert.ErrorAs(t, err, &ufe)
				return
			}
			require.NoError(t, err)
			for _, v := range f.Types {
				assert.True(t, v.Valid())
			}
		})
	}
}

func TestParseFilterSplitsCommaSeparatedValues(t *testing.T) {
	f, err := ParseFilter(
		[]string{"Government Hospital,Small Private Hospital"},
		[]string{"Hostility, Expensive Costs"},
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.CompanyType{
		domain.TypeGovernmentHospital,
		domain.TypeSmallPrivateHospital,
	}, f.Types)
	assert.Equal(t, []domain.Category{
		domain.CategoryHostility,
		domain.CategoryExpensiveCosts,
	}, f.Categories)
}

func TestSummarize(t *testing.T) {
	s := Summarize(threeRowTable(), Filter{})
	assert.Equal(t, int64(15), s.TotalReviews)
	assert.Equal(t, 3, s.Companies)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 1, s.RowsWithoutCount)
	assert.Equal(t, len(domain.CategoryOrder()), s.Categories)
}
