package testutil

import (
	"reviewdash/internal/dataset"
	"reviewdash/pkg/contracts/domain"
)

// Review builds a normalized review record with a known count.
func Review(name string, category domain.Category, companyType domain.CompanyType, count int64) domain.ReviewRecord {
	return domain.ReviewRecord{
		CompanyName:    name,
		Category:       category,
		CompanyType:    companyType,
		ReviewCount:    count,
		HasReviewCount: true,
	}
}

// ReviewWithoutCount builds a normalized review record whose count was
// missing in the source report.
func ReviewWithoutCount(name string, category domain.Category, companyType domain.CompanyType) domain.ReviewRecord {
	return domain.ReviewRecord{
		CompanyName: name,
		Category:    category,
		CompanyType: companyType,
	}
}

// SampleTable returns a small loaded table covering all three hospital
// types and several categories, suitable for service and handler tests.
func SampleTable() *dataset.Table {
	records := []domain.ReviewRecord{
		Review("Baghdad Teaching Hospital", domain.CategorySlowServices, domain.TypeGovernmentHospital, 120),
		Review("Baghdad Teaching Hospital", domain.CategoryMedicationUnavailable, domain.TypeGovernmentHospital, 45),
		Review("Al-Salam Clinic", domain.CategoryExpensiveCosts, domain.TypeSmallPrivateHospital, 30),
		Review("Al-Salam Clinic", domain.CategoryUnprofessionalStaff, domain.TypeSmallPrivateHospital, 12),
		Review("Horizon Medical City", domain.CategoryExpensiveCosts, domain.TypeHighClassPrivateHospital, 88),
		ReviewWithoutCount("Horizon Medical City", domain.CategoryHostility, domain.TypeHighClassPrivateHospital),
	}

	return &dataset.Table{
		Records: records,
		Stats: dataset.LoadStats{
			RowsRead:      len(records),
			RowsLoaded:    len(records),
			MissingCounts: 1,
		},
	}
}
