package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

func profileWith(size constants.BusinessSize, employees int, revenue float64, industry string) *models.BusinessProfile {
	return &models.BusinessProfile{
		Name:     "Test Business",
		Industry: industry,
		Location: models.Location{
			State:   "CA",
			County:  "Kern",
			City:    "Bakersfield",
			ZipCode: "93301",
		},
		Size:          size,
		EmployeeCount: employees,
		AnnualRevenue: revenue,
		BusinessType:  "LLC",
	}
}

func regsWithCategories(categories ...constants.Category) []models.Regulation {
	regs := make([]models.Regulation, len(categories))
	for i, c := range categories {
		regs[i] = models.Regulation{
			ID:           int64(i + 1),
			Title:        fmt.Sprintf("Regulation %d", i+1),
			Category:     c,
			Jurisdiction: constants.JurisdictionState,
		}
	}
	return regs
}

func TestEmployeeMultiplier(t *testing.T) {
	tests := []struct {
		employees int
		want      float64
	}{
		{1, 0.2},
		{5, 0.2},
		{6, 0.3},
		{10, 0.3},
		{11, 0.5},
		{25, 0.5},
		{50, 0.7},
		{200, 0.85},
		{1000, 1.5},
		{5000, 2.0},
		{5001, 2.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d employees", tt.employees), func(t *testing.T) {
			assert.Equal(t, tt.want, EmployeeMultiplier(tt.employees))
		})
	}
}

func TestCalculateComplianceScore_EmptySetIsPerfect(t *testing.T) {
	profile := profileWith(constants.SizeLarge, 9000, 500_000_000, constants.IndustryHealthcare)
	assert.Equal(t, 100, CalculateComplianceScore(profile, nil))
}

func TestCalculateComplianceScore_UniqueCategoriesPenalizedOnce(t *testing.T) {
	profile := profileWith(constants.SizeLarge, 300, 500_000, constants.IndustryManufacturing)

	one := regsWithCategories(constants.CategoryWorkplaceSafety)
	three := regsWithCategories(
		constants.CategoryWorkplaceSafety,
		constants.CategoryWorkplaceSafety,
		constants.CategoryWorkplaceSafety,
	)

	assert.Equal(t, CalculateComplianceScore(profile, one), CalculateComplianceScore(profile, three))
}

func TestCalculateComplianceScore_Bounds(t *testing.T) {
	profiles := []*models.BusinessProfile{
		profileWith(constants.SizeSmall, 3, 50_000, constants.IndustryRetail),
		profileWith(constants.SizeMedium, 120, 5_000_000, constants.IndustryTechnology),
		profileWith(constants.SizeLarge, 9500, 900_000_000, constants.IndustryHealthcare),
	}
	corpora := [][]models.Regulation{
		nil,
		regsWithCategories(constants.CategoryBusinessLicensing),
		regsWithCategories(
			constants.CategoryWorkplaceSafety, constants.CategoryHealthSafety,
			constants.CategoryLaborEmployment, constants.CategoryCivilRights,
			constants.CategoryEnvironmental, constants.CategoryTaxation,
			constants.CategoryPrivacySecurity, constants.CategoryFinancialServices,
			constants.CategoryProfessionalLicense, constants.CategoryLandUse,
			constants.CategoryBusinessLicensing, constants.CategoryTransportation,
			constants.CategoryLocalOrdinances,
		),
	}

	for _, p := range profiles {
		for _, regs := range corpora {
			score := CalculateComplianceScore(p, regs)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestCalculateComplianceScore_SizeMonotonicity(t *testing.T) {
	// Same attributes apart from size: a larger business never scores higher.
	regs := regsWithCategories(
		constants.CategoryWorkplaceSafety, constants.CategoryLaborEmployment,
		constants.CategoryEnvironmental, constants.CategoryBusinessLicensing,
	)

	small := CalculateComplianceScore(profileWith(constants.SizeSmall, 40, 2_000_000, constants.IndustryManufacturing), regs)
	medium := CalculateComplianceScore(profileWith(constants.SizeMedium, 40, 2_000_000, constants.IndustryManufacturing), regs)
	large := CalculateComplianceScore(profileWith(constants.SizeLarge, 40, 2_000_000, constants.IndustryManufacturing), regs)

	assert.GreaterOrEqual(t, small, medium)
	assert.GreaterOrEqual(t, medium, large)
}

func TestCalculateComplianceScore_SmallBusinessFloors(t *testing.T) {
	heavy := regsWithCategories(
		constants.CategoryWorkplaceSafety, constants.CategoryHealthSafety,
		constants.CategoryLaborEmployment, constants.CategoryCivilRights,
		constants.CategoryEnvironmental, constants.CategoryTaxation,
		constants.CategoryPrivacySecurity, constants.CategoryFinancialServices,
	)

	t.Run("small with at most 10 employees floors at 75", func(t *testing.T) {
		score := CalculateComplianceScore(profileWith(constants.SizeSmall, 10, 500_000, constants.IndustryHealthcare), heavy)
		assert.GreaterOrEqual(t, score, 75)
	})

	t.Run("small above 10 employees floors at 65", func(t *testing.T) {
		score := CalculateComplianceScore(profileWith(constants.SizeSmall, 45, 500_000, constants.IndustryHealthcare), heavy)
		assert.GreaterOrEqual(t, score, 65)
	})

	t.Run("medium with at most 50 employees floors at 50", func(t *testing.T) {
		score := CalculateComplianceScore(profileWith(constants.SizeMedium, 50, 5_000_000, constants.IndustryHealthcare), heavy)
		assert.GreaterOrEqual(t, score, 50)
	})
}

func TestCalculateComplianceScore_RevenueDeductionsSkipSmall(t *testing.T) {
	regs := regsWithCategories(constants.CategoryBusinessLicensing)

	lowRevenue := CalculateComplianceScore(profileWith(constants.SizeSmall, 8, 900_000, constants.IndustryRetail), regs)
	highRevenue := CalculateComplianceScore(profileWith(constants.SizeSmall, 8, 900_000_000, constants.IndustryRetail), regs)
	assert.Equal(t, lowRevenue, highRevenue)

	mediumLow := CalculateComplianceScore(profileWith(constants.SizeMedium, 80, 900_000, constants.IndustryRetail), regs)
	mediumHigh := CalculateComplianceScore(profileWith(constants.SizeMedium, 80, 20_000_000, constants.IndustryRetail), regs)
	assert.Greater(t, mediumLow, mediumHigh)
}

func TestDetermineRiskLevel(t *testing.T) {
	tests := []struct {
		score int
		want  constants.RiskLevel
	}{
		{100, constants.RiskLow},
		{85, constants.RiskLow},
		{84, constants.RiskMedium},
		{65, constants.RiskMedium},
		{64, constants.RiskHigh},
		{45, constants.RiskHigh},
		{44, constants.RiskCritical},
		{0, constants.RiskCritical},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineRiskLevel(tt.score))
		})
	}
}

func TestNextDeadlines(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	regs := []models.Regulation{
		{ID: 1, ComplianceDeadline: day(30)},
		{ID: 2, ComplianceDeadline: day(-10)},
		{ID: 3, ComplianceDeadline: day(5)},
		{ID: 4, ComplianceDeadline: nil},
		{ID: 5, ComplianceDeadline: day(90)},
		{ID: 6, ComplianceDeadline: day(60)},
		{ID: 7, ComplianceDeadline: day(15)},
		{ID: 8, ComplianceDeadline: day(45)},
		{ID: 9, ComplianceDeadline: day(120)},
	}

	deadlines := NextDeadlines(regs, now)

	require.Len(t, deadlines, 5)
	assert.Equal(t, []string{
		"2026-06-06", "2026-06-16", "2026-07-01", "2026-07-16", "2026-07-31",
	}, deadlines)
}

func TestNextDeadlines_PastAndMissingExcluded(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(-1, 0, 0)
	exactlyNow := now

	regs := []models.Regulation{
		{ID: 1, ComplianceDeadline: &past},
		{ID: 2, ComplianceDeadline: &exactlyNow},
		{ID: 3},
	}

	assert.Empty(t, NextDeadlines(regs, now))
}

func TestGenerateRecommendations(t *testing.T) {
	safetyRegs := regsWithCategories(constants.CategoryWorkplaceSafety)

	t.Run("large headcount adds officer advice", func(t *testing.T) {
		profile := profileWith(constants.SizeMedium, 51, 2_000_000, constants.IndustryRetail)
		recs := GenerateRecommendations(profile, nil)
		assert.Contains(t, recs, "Consider hiring a compliance officer or consultant")
	})

	t.Run("critical categories add prioritization advice once", func(t *testing.T) {
		profile := profileWith(constants.SizeSmall, 8, 500_000, constants.IndustryManufacturing)
		recs := GenerateRecommendations(profile, append(safetyRegs,
			regsWithCategories(constants.CategoryEnvironmental)...))
		count := 0
		for _, r := range recs {
			if r == "Prioritize compliance with health, safety, and environmental regulations" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("locality advice keyed on county and city", func(t *testing.T) {
		profile := profileWith(constants.SizeSmall, 8, 500_000, constants.IndustryRetail)
		recs := GenerateRecommendations(profile, nil)
		assert.Contains(t, recs, "Ensure compliance with Kern County specific regulations")
		assert.Contains(t, recs, "Check Bakersfield municipal code requirements")

		profile.Location.County = "Fresno"
		profile.Location.City = "Fresno"
		recs = GenerateRecommendations(profile, nil)
		assert.NotContains(t, recs, "Ensure compliance with Kern County specific regulations")
		assert.NotContains(t, recs, "Check Bakersfield municipal code requirements")
	})

	t.Run("baseline advice always present and last", func(t *testing.T) {
		profile := profileWith(constants.SizeSmall, 3, 100_000, constants.IndustryOther)
		profile.Location.County = "Fresno"
		profile.Location.City = "Fresno"
		recs := GenerateRecommendations(profile, nil)
		require.Len(t, recs, 2)
		assert.Equal(t, "Maintain detailed records of all compliance activities", recs[0])
		assert.Equal(t, "Schedule regular compliance reviews and updates", recs[1])
	})
}

func TestEvaluate_SmallTechExample(t *testing.T) {
	profile := profileWith(constants.SizeSmall, 8, 500_000, constants.IndustryTechnology)
	regs := regsWithCategories(
		constants.CategoryBusinessLicensing,
		constants.CategoryPrivacySecurity,
		constants.CategoryLaborEmployment,
		constants.CategoryWorkplaceSafety,
	)

	result := Evaluate(profile, regs, time.Now())

	assert.GreaterOrEqual(t, result.ComplianceScore, 70)
	assert.Equal(t, constants.RiskLow, result.RiskLevel)
	assert.Len(t, result.ApplicableRegulations, 4)
}

func TestEvaluate_LargeManufacturerExample(t *testing.T) {
	profile := profileWith(constants.SizeLarge, 2000, 100_000_000, constants.IndustryManufacturing)
	regs := regsWithCategories(
		constants.CategoryWorkplaceSafety, constants.CategoryEnvironmental,
		constants.CategoryBusinessLicensing, constants.CategoryLaborEmployment,
		constants.CategoryCivilRights, constants.CategoryTaxation,
	)

	result := Evaluate(profile, regs, time.Now())

	assert.Less(t, result.ComplianceScore, 45)
	assert.Equal(t, constants.RiskCritical, result.RiskLevel)
}

func TestEvaluate_RiskMatchesScore(t *testing.T) {
	profiles := []*models.BusinessProfile{
		profileWith(constants.SizeSmall, 5, 200_000, constants.IndustryRetail),
		profileWith(constants.SizeMedium, 150, 8_000_000, constants.IndustryConstruction),
		profileWith(constants.SizeLarge, 6000, 500_000_000, constants.IndustryHealthcare),
	}
	regs := regsWithCategories(
		constants.CategoryWorkplaceSafety, constants.CategoryHealthSafety,
		constants.CategoryEnvironmental, constants.CategoryBusinessLicensing,
	)

	for _, p := range profiles {
		result := Evaluate(p, regs, time.Now())
		assert.Equal(t, DetermineRiskLevel(result.ComplianceScore), result.RiskLevel)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	profile := profileWith(constants.SizeMedium, 120, 5_000_000, constants.IndustryTechnology)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 3, 0)
	regs := regsWithCategories(constants.CategoryPrivacySecurity, constants.CategoryLaborEmployment)
	regs[0].ComplianceDeadline = &deadline

	first := Evaluate(profile, regs, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(profile, regs, now))
	}
}
