// Package service contains the pure decision logic of the compliance engine:
// regulation applicability selection and compliance evaluation. Neither part
// performs I/O; both are safe to call concurrently.
package service

import (
	"sort"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// industryCategoryMap maps an industry to the regulation categories relevant
// to it. Unknown industries fall back to Business Licensing only. Business
// Licensing additionally passes the category filter for every industry as a
// baseline, so a regulation in that category is never filtered out.
var industryCategoryMap = map[string][]constants.Category{
	constants.IndustryAgriculture: {
		constants.CategoryEnvironmental, constants.CategoryWorkplaceSafety, constants.CategoryBusinessLicensing,
	},
	constants.IndustryAutomotive: {
		constants.CategoryTransportation, constants.CategoryEnvironmental, constants.CategoryWorkplaceSafety,
	},
	constants.IndustryConstruction: {
		constants.CategoryWorkplaceSafety, constants.CategoryEnvironmental,
		constants.CategoryBusinessLicensing, constants.CategoryLandUse,
	},
	constants.IndustryFoodService: {
		constants.CategoryHealthSafety, constants.CategoryBusinessLicensing, constants.CategoryLocalOrdinances,
	},
	constants.IndustryHealthcare: {
		constants.CategoryHealthSafety, constants.CategoryPrivacySecurity, constants.CategoryProfessionalLicense,
		constants.CategoryWorkplaceSafety, constants.CategoryLaborEmployment, constants.CategoryCivilRights,
	},
	constants.IndustryManufacturing: {
		constants.CategoryWorkplaceSafety, constants.CategoryEnvironmental, constants.CategoryBusinessLicensing,
	},
	constants.IndustryRetail: {
		constants.CategoryBusinessLicensing, constants.CategoryLocalOrdinances, constants.CategoryTaxation,
	},
	constants.IndustryTechnology: {
		constants.CategoryBusinessLicensing, constants.CategoryPrivacySecurity,
		constants.CategoryLaborEmployment, constants.CategoryWorkplaceSafety,
	},
	constants.IndustryTransportation: {
		constants.CategoryTransportation, constants.CategoryEnvironmental, constants.CategoryWorkplaceSafety,
	},
	constants.IndustryOther: {
		constants.CategoryBusinessLicensing, constants.CategoryLocalOrdinances,
	},
}

// forceIncludeCategories are force-included for Medium and Large businesses
// at the Federal and State tiers, regardless of industry.
var forceIncludeCategories = map[constants.Category]bool{
	constants.CategoryLaborEmployment: true,
	constants.CategoryWorkplaceSafety: true,
	constants.CategoryCivilRights:     true,
}

// fmlaEmployeeThreshold is the headcount at which family/medical-leave
// regulations start applying.
const fmlaEmployeeThreshold = 50

// CategoriesForIndustry returns the relevant category set for an industry.
func CategoriesForIndustry(industry string) []constants.Category {
	if categories, ok := industryCategoryMap[industry]; ok {
		return categories
	}
	return []constants.Category{constants.CategoryBusinessLicensing}
}

// JurisdictionTiers returns the jurisdiction labels eligible for any profile
// in the service area. The filter is inclusive-OR across all four tiers:
// Federal and State regulations always apply, and the county and city tiers
// are admitted alongside them rather than walked as a strict hierarchy.
func JurisdictionTiers(_ *models.BusinessProfile) []constants.Jurisdiction {
	return []constants.Jurisdiction{
		constants.JurisdictionFederal,
		constants.JurisdictionState,
		constants.JurisdictionCounty,
		constants.JurisdictionCity,
	}
}

// SelectApplicableRegulations picks the regulations from the corpus that
// apply to the profile. Pure function over its inputs; an empty corpus or no
// matches yields an empty list.
//
// Selection order:
//  1. jurisdiction filter (inclusive-OR across tiers)
//  2. category filter (industry map, Business Licensing as baseline)
//  3. healthcare carve-out (healthcare-flagged records drop out for every
//     other industry)
//  4. additive passes: family-leave records for 50+ employees; core labor
//     categories at Federal/State tier for Medium and Large businesses
//  5. dedupe by id, order by (category, title)
func SelectApplicableRegulations(profile *models.BusinessProfile, corpus []models.Regulation) []models.Regulation {
	eligible := make(map[constants.Jurisdiction]bool)
	for _, j := range JurisdictionTiers(profile) {
		eligible[j] = true
	}

	relevant := make(map[constants.Category]bool)
	for _, c := range CategoriesForIndustry(profile.Industry) {
		relevant[c] = true
	}
	relevant[constants.CategoryBusinessLicensing] = true

	isHealthcare := profile.Industry == constants.IndustryHealthcare

	selected := make([]models.Regulation, 0, len(corpus))
	seen := make(map[int64]bool)

	for _, reg := range corpus {
		if !eligible[reg.Jurisdiction] {
			continue
		}
		if !relevant[reg.Category] {
			continue
		}
		if !isHealthcare && reg.Flags.HealthcareSpecific {
			continue
		}
		if !seen[reg.ID] {
			seen[reg.ID] = true
			selected = append(selected, reg)
		}
	}

	if profile.EmployeeCount >= fmlaEmployeeThreshold {
		for _, reg := range corpus {
			if reg.Flags.FamilyLeave && !seen[reg.ID] {
				seen[reg.ID] = true
				selected = append(selected, reg)
			}
		}
	}

	if profile.Size == constants.SizeMedium || profile.Size == constants.SizeLarge {
		for _, reg := range corpus {
			if !forceIncludeCategories[reg.Category] {
				continue
			}
			if reg.Jurisdiction != constants.JurisdictionFederal && reg.Jurisdiction != constants.JurisdictionState {
				continue
			}
			if !seen[reg.ID] {
				seen[reg.ID] = true
				selected = append(selected, reg)
			}
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Category != selected[j].Category {
			return selected[i].Category < selected[j].Category
		}
		return selected[i].Title < selected[j].Title
	})

	return selected
}
