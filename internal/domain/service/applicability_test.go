package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

func smallTechProfile() *models.BusinessProfile {
	return &models.BusinessProfile{
		Name:     "Bitwise Labs",
		Industry: constants.IndustryTechnology,
		Location: models.Location{
			State:   "CA",
			County:  "Kern",
			City:    "Bakersfield",
			ZipCode: "93301",
		},
		Size:          constants.SizeSmall,
		EmployeeCount: 8,
		AnnualRevenue: 500_000,
		BusinessType:  "LLC",
	}
}

func reg(id int64, title string, category constants.Category, jurisdiction constants.Jurisdiction) models.Regulation {
	r := models.Regulation{
		ID:           id,
		Title:        title,
		Category:     category,
		Jurisdiction: jurisdiction,
	}
	r.DeriveFlags()
	return r
}

func TestCategoriesForIndustry(t *testing.T) {
	tests := []struct {
		industry string
		want     []constants.Category
	}{
		{
			industry: constants.IndustryHealthcare,
			want: []constants.Category{
				constants.CategoryHealthSafety, constants.CategoryPrivacySecurity,
				constants.CategoryProfessionalLicense, constants.CategoryWorkplaceSafety,
				constants.CategoryLaborEmployment, constants.CategoryCivilRights,
			},
		},
		{
			industry: constants.IndustryRetail,
			want: []constants.Category{
				constants.CategoryBusinessLicensing, constants.CategoryLocalOrdinances, constants.CategoryTaxation,
			},
		},
		{
			industry: "Aerospace",
			want:     []constants.Category{constants.CategoryBusinessLicensing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoriesForIndustry(tt.industry))
		})
	}
}

func TestSelectApplicableRegulations_JurisdictionInclusive(t *testing.T) {
	corpus := []models.Regulation{
		reg(1, "Business License Ordinance", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
		reg(2, "County Business Permit", constants.CategoryBusinessLicensing, constants.JurisdictionCounty),
		reg(3, "State Franchise Tax", constants.CategoryBusinessLicensing, constants.JurisdictionState),
		reg(4, "Federal EIN Registration", constants.CategoryBusinessLicensing, constants.JurisdictionFederal),
		reg(5, "Out-of-Area Rule", constants.CategoryBusinessLicensing, "Nevada"),
	}

	selected := SelectApplicableRegulations(smallTechProfile(), corpus)

	ids := make([]int64, 0, len(selected))
	for _, r := range selected {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, ids)
}

func TestSelectApplicableRegulations_CategoryFilter(t *testing.T) {
	corpus := []models.Regulation{
		reg(1, "Data Breach Notification", constants.CategoryPrivacySecurity, constants.JurisdictionState),
		reg(2, "Pesticide Application Rules", constants.CategoryEnvironmental, constants.JurisdictionState),
		reg(3, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
	}

	selected := SelectApplicableRegulations(smallTechProfile(), corpus)

	require.Len(t, selected, 2)
	for _, r := range selected {
		assert.NotEqual(t, constants.CategoryEnvironmental, r.Category)
	}
}

func TestSelectApplicableRegulations_BusinessLicensingBaseline(t *testing.T) {
	// Business Licensing passes the filter even for an unknown industry.
	profile := smallTechProfile()
	profile.Industry = "Aerospace"

	corpus := []models.Regulation{
		reg(1, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
		reg(2, "Wage Order", constants.CategoryLaborEmployment, constants.JurisdictionState),
	}

	selected := SelectApplicableRegulations(profile, corpus)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(1), selected[0].ID)
}

func TestSelectApplicableRegulations_HealthcareCarveOut(t *testing.T) {
	corpus := []models.Regulation{
		reg(1, "HIPAA Privacy Rule", constants.CategoryPrivacySecurity, constants.JurisdictionFederal),
		reg(2, "Data Breach Notification", constants.CategoryPrivacySecurity, constants.JurisdictionState),
	}

	t.Run("non-healthcare excluded", func(t *testing.T) {
		selected := SelectApplicableRegulations(smallTechProfile(), corpus)
		require.Len(t, selected, 1)
		assert.Equal(t, "Data Breach Notification", selected[0].Title)
	})

	t.Run("healthcare included", func(t *testing.T) {
		profile := smallTechProfile()
		profile.Industry = constants.IndustryHealthcare
		selected := SelectApplicableRegulations(profile, corpus)
		assert.Len(t, selected, 2)
	})
}

func TestSelectApplicableRegulations_FamilyLeaveThreshold(t *testing.T) {
	corpus := []models.Regulation{
		reg(1, "Family and Medical Leave Act (FMLA)", constants.CategoryLaborEmployment, constants.JurisdictionFederal),
		reg(2, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
	}

	t.Run("below threshold", func(t *testing.T) {
		profile := smallTechProfile()
		profile.EmployeeCount = 49
		selected := SelectApplicableRegulations(profile, corpus)
		for _, r := range selected {
			assert.False(t, r.Flags.FamilyLeave)
		}
	})

	t.Run("at threshold", func(t *testing.T) {
		// FMLA titles also carry the healthcare flag; the family-leave pass
		// re-adds them for any industry once headcount reaches 50.
		profile := smallTechProfile()
		profile.EmployeeCount = 50
		selected := SelectApplicableRegulations(profile, corpus)
		found := false
		for _, r := range selected {
			if r.Flags.FamilyLeave {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestSelectApplicableRegulations_ForceIncludeForMediumAndLarge(t *testing.T) {
	corpus := []models.Regulation{
		reg(1, "Title VII Protections", constants.CategoryCivilRights, constants.JurisdictionFederal),
		reg(2, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
		reg(3, "City Anti-Discrimination Ordinance", constants.CategoryCivilRights, constants.JurisdictionCity),
	}

	t.Run("small retail skips civil rights", func(t *testing.T) {
		profile := smallTechProfile()
		profile.Industry = constants.IndustryRetail
		selected := SelectApplicableRegulations(profile, corpus)
		require.Len(t, selected, 1)
		assert.Equal(t, int64(2), selected[0].ID)
	})

	t.Run("medium retail pulls federal and state tiers only", func(t *testing.T) {
		profile := smallTechProfile()
		profile.Industry = constants.IndustryRetail
		profile.Size = constants.SizeMedium
		profile.EmployeeCount = 40
		selected := SelectApplicableRegulations(profile, corpus)

		ids := make([]int64, 0, len(selected))
		for _, r := range selected {
			ids = append(ids, r.ID)
		}
		assert.ElementsMatch(t, []int64{1, 2}, ids)
	})
}

func TestSelectApplicableRegulations_DedupeAndOrder(t *testing.T) {
	profile := smallTechProfile()
	profile.Size = constants.SizeLarge
	profile.EmployeeCount = 300

	// Regulation 1 matches both the category filter and the force-include
	// pass; it must appear once.
	corpus := []models.Regulation{
		reg(1, "Cal/OSHA Injury Prevention", constants.CategoryWorkplaceSafety, constants.JurisdictionState),
		reg(2, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
		reg(3, "Overtime Wage Order", constants.CategoryLaborEmployment, constants.JurisdictionState),
	}

	selected := SelectApplicableRegulations(profile, corpus)
	require.Len(t, selected, 3)

	for i := 1; i < len(selected); i++ {
		prev, cur := selected[i-1], selected[i]
		ordered := prev.Category < cur.Category ||
			(prev.Category == cur.Category && prev.Title <= cur.Title)
		assert.True(t, ordered, "results must be ordered by (category, title)")
	}
}

func TestSelectApplicableRegulations_EmptyCorpus(t *testing.T) {
	selected := SelectApplicableRegulations(smallTechProfile(), nil)
	assert.Empty(t, selected)
}

func TestSelectApplicableRegulations_Deterministic(t *testing.T) {
	profile := smallTechProfile()
	profile.Size = constants.SizeMedium
	profile.EmployeeCount = 120

	corpus := []models.Regulation{
		reg(1, "Cal/OSHA Injury Prevention", constants.CategoryWorkplaceSafety, constants.JurisdictionState),
		reg(2, "General Business License", constants.CategoryBusinessLicensing, constants.JurisdictionCity),
		reg(3, "Family and Medical Leave Act (FMLA)", constants.CategoryLaborEmployment, constants.JurisdictionFederal),
		reg(4, "Title VII Protections", constants.CategoryCivilRights, constants.JurisdictionFederal),
	}

	first := SelectApplicableRegulations(profile, corpus)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SelectApplicableRegulations(profile, corpus))
	}
}
