package domain

// CompanyType is the canonical classification of a healthcare facility.
// Raw spreadsheet values are folded onto this closed set by the dataset
// package; anything unrecognized becomes TypeOtherUnclassified rather
// than being dropped.
type CompanyType string

const (
	TypeGovernmentHospital       CompanyType = "Government Hospital"
	TypeSmallPrivateHospital     CompanyType = "Small Private Hospital"
	TypeHighClassPrivateHospital CompanyType = "High-Class Private Hospital"
	TypeOtherUnclassified        CompanyType = "Other/Unclassified"
)

// CompanyTypeOrder returns the canonical display order for company types.
// The fallback bucket always sorts last.
func CompanyTypeOrder() []CompanyType {
	return []CompanyType{
		TypeGovernmentHospital,
		TypeSmallPrivateHospital,
		TypeHighClassPrivateHospital,
		TypeOtherUnclassified,
	}
}

// Valid reports whether t is one of the canonical company types.
func (t CompanyType) Valid() bool {
	switch t {
	case TypeGovernmentHospital, TypeSmallPrivateHospital,
		TypeHighClassPrivateHospital, TypeOtherUnclassified:
		return true
	}
	return false
}

// Category is one of the eight standardized service-quality categories
// reviews are classified into.
type Category string

const (
	CategorySlowServices          Category = "Slow Services or Lengthy Waiting Times"
	CategoryMedicationUnavailable Category = "Unavailability of Medication/Equipment"
	CategoryUnprofessionalStaff   Category = "Unprofessional Staff"
	CategorySpecialistUnavailable Category = "Unavailability of Specialists"
	CategoryPoorCompensation      Category = "Poor Compensation"
	CategoryHostility             Category = "Hostility"
	CategoryExpensiveCosts        Category = "Expensive Costs"
	CategoryOthers                Category = "Others"
)

// CategoryOrder returns the eight canonical categories in the fixed
// dashboard order. Charts and tables iterate this order so repeated
// renders are visually stable; it is not alphabetical.
func CategoryOrder() []Category {
	return []Category{
		CategorySlowServices,
		CategoryMedicationUnavailable,
		CategoryUnprofessionalStaff,
		CategorySpecialistUnavailable,
		CategoryPoorCompensation,
		CategoryHostility,
		CategoryExpensiveCosts,
		CategoryOthers,
	}
}

// Valid reports whether c is one of the eight canonical categories.
func (c Category) Valid() bool {
	for _, v := range CategoryOrder() {
		if c == v {
			return true
		}
	}
	return false
}

// TypeColors maps each canonical company type to its fixed display color.
// Static configuration consumed by the dashboard frontend; never computed.
var TypeColors = map[CompanyType]string{
	TypeGovernmentHospital:       "#2563eb",
	TypeSmallPrivateHospital:     "#ef4444",
	TypeHighClassPrivateHospital: "#10b981",
	TypeOtherUnclassified:        "#8b5cf6",
}

// ReviewRecord is a single normalized review row. Records are immutable
// once loaded; the dataset package guarantees Category and CompanyType
// hold canonical labels.
type ReviewRecord struct {
	CompanyName     string      `json:"company_name"`
	CompanyLocation string      `json:"company_location,omitempty"`
	Category        Category    `json:"standardized_category"`
	CompanyType     CompanyType `json:"company_type"`

	// ReviewCount is meaningful only when HasReviewCount is true. Rows
	// whose raw count could not be parsed stay in the table for
	// categorical aggregation but are excluded from sums.
	ReviewCount    int64 `json:"review_count"`
	HasReviewCount bool  `json:"has_review_count"`
}
