package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// categoryPenalties is the per-category penalty weight applied once per
// unique category present in the applicable set.
var categoryPenalties = map[constants.Category]float64{
	constants.CategoryWorkplaceSafety:     10,
	constants.CategoryHealthSafety:        9,
	constants.CategoryLaborEmployment:     8,
	constants.CategoryCivilRights:         7,
	constants.CategoryEnvironmental:       7,
	constants.CategoryTaxation:            6,
	constants.CategoryPrivacySecurity:     6,
	constants.CategoryFinancialServices:   6,
	constants.CategoryProfessionalLicense: 5,
	constants.CategoryLandUse:             5,
	constants.CategoryBusinessLicensing:   4,
	constants.CategoryTransportation:      4,
	constants.CategoryLocalOrdinances:     3,
}

// defaultCategoryPenalty applies to categories missing from the table.
const defaultCategoryPenalty = 5

// sizeMultipliers discount the category penalty by business size.
var sizeMultipliers = map[constants.BusinessSize]float64{
	constants.SizeSmall:  0.2,
	constants.SizeMedium: 0.5,
	constants.SizeLarge:  1.0,
}

// employeeTier is one step of the headcount multiplier table.
type employeeTier struct {
	maxEmployees int
	multiplier   float64
}

// employeeTiers is evaluated in order, most specific first; headcounts above
// the last tier use employeeOverflowMultiplier. The two multipliers (size and
// headcount) are independent scalars composed by multiplication on the same
// base penalty.
var employeeTiers = []employeeTier{
	{maxEmployees: 5, multiplier: 0.2},
	{maxEmployees: 10, multiplier: 0.3},
	{maxEmployees: 25, multiplier: 0.5},
	{maxEmployees: 50, multiplier: 0.7},
	{maxEmployees: 200, multiplier: 0.85},
	{maxEmployees: 1000, multiplier: 1.5},
	{maxEmployees: 5000, multiplier: 2.0},
}

const employeeOverflowMultiplier = 2.5

// industryDeduction is a flat industry surcharge, smaller for Small
// businesses.
type industryDeduction struct {
	small float64
	other float64
}

var industryDeductions = map[string]industryDeduction{
	constants.IndustryHealthcare:   {small: 8, other: 15},
	constants.IndustryTechnology:   {small: 5, other: 10},
	constants.IndustryConstruction: {small: 6, other: 12},
}

// SizeMultiplier returns the penalty scalar for a business size.
func SizeMultiplier(size constants.BusinessSize) float64 {
	if m, ok := sizeMultipliers[size]; ok {
		return m
	}
	return 1.0
}

// EmployeeMultiplier returns the penalty scalar for a headcount.
func EmployeeMultiplier(employeeCount int) float64 {
	for _, tier := range employeeTiers {
		if employeeCount <= tier.maxEmployees {
			return tier.multiplier
		}
	}
	return employeeOverflowMultiplier
}

// CalculateComplianceScore converts the applicable regulation set and the
// business attributes into a deterministic integer score in [0, 100].
// All numeric paths clamp; the function is total over validated profiles.
func CalculateComplianceScore(profile *models.BusinessProfile, regulations []models.Regulation) int {
	if len(regulations) == 0 {
		return constants.MaxComplianceScore
	}

	var totalCategoryPenalty float64
	seen := make(map[constants.Category]bool)
	for _, reg := range regulations {
		if seen[reg.Category] {
			continue
		}
		seen[reg.Category] = true
		if penalty, ok := categoryPenalties[reg.Category]; ok {
			totalCategoryPenalty += penalty
		} else {
			totalCategoryPenalty += defaultCategoryPenalty
		}
	}

	finalPenalty := totalCategoryPenalty * SizeMultiplier(profile.Size) * EmployeeMultiplier(profile.EmployeeCount)
	score := math.Max(0, float64(constants.MaxComplianceScore)-finalPenalty)

	// Revenue deductions apply to Medium and Large businesses only; the
	// largest tier stacks a further deduction for Large.
	if profile.Size != constants.SizeSmall {
		if profile.AnnualRevenue > 1_000_000 {
			score = math.Max(0, score-5)
		}
		if profile.AnnualRevenue > 10_000_000 {
			score = math.Max(0, score-8)
		}
		if profile.AnnualRevenue > 50_000_000 && profile.Size == constants.SizeLarge {
			score = math.Max(0, score-12)
		}
	}

	// Enterprise headcount deductions stack.
	if profile.EmployeeCount > 5000 {
		score = math.Max(0, score-15)
	}
	if profile.EmployeeCount > 10000 {
		score = math.Max(0, score-20)
	}

	if deduction, ok := industryDeductions[profile.Industry]; ok {
		amount := deduction.other
		if profile.Size == constants.SizeSmall {
			amount = deduction.small
		}
		score = math.Max(0, score-amount)
	}

	// Floors apply last and never reduce an already-higher score.
	switch {
	case profile.Size == constants.SizeSmall && profile.EmployeeCount <= 10:
		score = math.Max(score, 75)
	case profile.Size == constants.SizeSmall:
		score = math.Max(score, 65)
	case profile.Size == constants.SizeMedium && profile.EmployeeCount <= 50:
		score = math.Max(score, 50)
	}

	rounded := int(math.Round(score))
	if rounded < constants.MinComplianceScore {
		return constants.MinComplianceScore
	}
	if rounded > constants.MaxComplianceScore {
		return constants.MaxComplianceScore
	}
	return rounded
}

// DetermineRiskLevel maps a compliance score to its risk tier. The tier is
// fully determined by the score.
func DetermineRiskLevel(score int) constants.RiskLevel {
	switch {
	case score >= 85:
		return constants.RiskLow
	case score >= 65:
		return constants.RiskMedium
	case score >= 45:
		return constants.RiskHigh
	default:
		return constants.RiskCritical
	}
}

// NextDeadlines collects the strictly-future compliance deadlines from the
// applicable set, ascending, capped at five, formatted as ISO dates.
func NextDeadlines(regulations []models.Regulation, now time.Time) []string {
	deadlines := make([]time.Time, 0, len(regulations))
	for _, reg := range regulations {
		if reg.ComplianceDeadline != nil && reg.ComplianceDeadline.After(now) {
			deadlines = append(deadlines, *reg.ComplianceDeadline)
		}
	}
	sort.Slice(deadlines, func(i, j int) bool { return deadlines[i].Before(deadlines[j]) })
	if len(deadlines) > constants.MaxUpcomingDeadlines {
		deadlines = deadlines[:constants.MaxUpcomingDeadlines]
	}

	out := make([]string, len(deadlines))
	for i, d := range deadlines {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

// criticalCategories trigger the prioritization recommendation.
var criticalCategories = map[constants.Category]bool{
	constants.CategoryHealthSafety:    true,
	constants.CategoryEnvironmental:   true,
	constants.CategoryWorkplaceSafety: true,
}

// GenerateRecommendations produces the advice list. Rules run in fixed order
// and are not mutually exclusive; the record-keeping and review reminders are
// always appended.
func GenerateRecommendations(profile *models.BusinessProfile, regulations []models.Regulation) []string {
	recommendations := make([]string, 0, 6)

	if profile.EmployeeCount > 50 {
		recommendations = append(recommendations, "Consider hiring a compliance officer or consultant")
	}

	for _, reg := range regulations {
		if criticalCategories[reg.Category] {
			recommendations = append(recommendations,
				"Prioritize compliance with health, safety, and environmental regulations")
			break
		}
	}

	if profile.Location.County == constants.ReferenceCounty {
		recommendations = append(recommendations,
			fmt.Sprintf("Ensure compliance with %s County specific regulations", constants.ReferenceCounty))
	}
	if profile.Location.City == constants.ReferenceCity {
		recommendations = append(recommendations,
			fmt.Sprintf("Check %s municipal code requirements", constants.ReferenceCity))
	}

	recommendations = append(recommendations,
		"Maintain detailed records of all compliance activities",
		"Schedule regular compliance reviews and updates",
	)

	return recommendations
}

// Evaluate runs the full compliance evaluation for a validated profile and
// its applicable regulation set. Deterministic apart from the now parameter,
// which only affects deadline filtering; callers pass time.Now().
func Evaluate(profile *models.BusinessProfile, regulations []models.Regulation, now time.Time) *models.ComplianceResult {
	score := CalculateComplianceScore(profile, regulations)

	return &models.ComplianceResult{
		Business:              *profile,
		ApplicableRegulations: regulations,
		ComplianceScore:       score,
		RiskLevel:             DetermineRiskLevel(score),
		NextDeadlines:         NextDeadlines(regulations, now),
		Recommendations:       GenerateRecommendations(profile, regulations),
	}
}
