package dataset

import (
	"strconv"
	"strings"

	"reviewdash/pkg/contracts/domain"
)

// foldKey canonicalizes a raw cell for table lookup: lowercased, with
// surrounding and internal whitespace collapsed.
func foldKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// companyTypeAliases maps folded raw company-type strings onto canonical
// labels. The report has accumulated legacy phrasings over time; new
// variants get added here as they show up in the source spreadsheet.
// Canonical labels map to themselves so normalization is idempotent.
var companyTypeAliases = map[string]domain.CompanyType{
	"government hospital":          domain.TypeGovernmentHospital,
	"gov't hospital":               domain.TypeGovernmentHospital,
	"govt hospital":                domain.TypeGovernmentHospital,
	"public hospital":              domain.TypeGovernmentHospital,
	"small private hospital":       domain.TypeSmallPrivateHospital,
	"private hosp (small)":         domain.TypeSmallPrivateHospital,
	"private hospital (small)":     domain.TypeSmallPrivateHospital,
	"high-class private hospital":  domain.TypeHighClassPrivateHospital,
	"high class private hospital":  domain.TypeHighClassPrivateHospital,
	"modern/high-class private hospital": domain.TypeHighClassPrivateHospital,
	"modern private hospital":      domain.TypeHighClassPrivateHospital,
	"other/unclassified":           domain.TypeOtherUnclassified,
}

// categoryAliases maps folded raw category strings onto the eight
// canonical categories. Same rules as companyTypeAliases.
var categoryAliases = map[string]domain.Category{
	"slow services or lengthy waiting times": domain.CategorySlowServices,
	"slow services":                          domain.CategorySlowServices,
	"lengthy waiting times":                  domain.CategorySlowServices,
	"unavailability of medication/equipment": domain.CategoryMedicationUnavailable,
	"unavailability of medication":           domain.CategoryMedicationUnavailable,
	"unprofessional staff":                   domain.CategoryUnprofessionalStaff,
	"unavailability of specialists":          domain.CategorySpecialistUnavailable,
	"unavailability of specialist":           domain.CategorySpecialistUnavailable,
	"poor compensation":                      domain.CategoryPoorCompensation,
	"hostility":                              domain.CategoryHostility,
	"expensive costs":                        domain.CategoryExpensiveCosts,
	"others":                                 domain.CategoryOthers,
	"other":                                  domain.CategoryOthers,
}

// NormalizeCompanyType folds a raw company-type cell onto the canonical
// closed set. Matching is case-insensitive and whitespace-tolerant.
// Unrecognized values land in TypeOtherUnclassified; recognized reports
// whether the raw string matched a known alias, so callers can flag
// data-quality issues without aborting the load.
func NormalizeCompanyType(raw string) (t domain.CompanyType, recognized bool) {
	if t, ok := companyTypeAliases[foldKey(raw)]; ok {
		return t, true
	}
	return domain.TypeOtherUnclassified, false
}

// NormalizeCategory folds a raw category cell onto the eight canonical
// categories. Unrecognized values land in the CategoryOthers catch-all.
func NormalizeCategory(raw string) (c domain.Category, recognized bool) {
	if c, ok := categoryAliases[foldKey(raw)]; ok {
		return c, true
	}
	return domain.CategoryOthers, false
}

// ParseReviewCount parses a raw review-count cell as a non-negative
// integer, tolerating surrounding whitespace and well-formed thousands
// separators ("1,204"). Commas in the wrong positions make the value
// missing rather than silently reflowing the digits. Non-numeric or
// negative values report ok=false: the row keeps its categorical
// presence but is excluded from every sum aggregate.
func ParseReviewCount(raw string) (n int64, ok bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}
	if strings.Contains(cleaned, ",") {
		groups := strings.Split(cleaned, ",")
		if len(groups[0]) < 1 || len(groups[0]) > 3 {
			return 0, false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return 0, false
			}
		}
		cleaned = strings.Join(groups, "")
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
