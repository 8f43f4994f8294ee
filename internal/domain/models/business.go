// Package models defines the domain models for the bizcomply compliance
// service: business profiles, regulation records, and compliance results.
package models

import (
	"strings"
	"time"

	"github.com/bizcomply/bizcomply/pkg/constants"
	"github.com/bizcomply/bizcomply/pkg/errors"
)

// Location is the geographic placement of a business. Jurisdiction matching
// compares these values against flat jurisdiction labels.
type Location struct {
	State   string `json:"state"`
	County  string `json:"county"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// BusinessProfile describes a business for one compliance evaluation.
// It is immutable for the duration of an evaluation; persisted copies may be
// updated through the business repository.
type BusinessProfile struct {
	ID            int64                  `json:"id,omitempty"`
	Name          string                 `json:"name"`
	Industry      string                 `json:"industry"`
	Location      Location               `json:"location"`
	Size          constants.BusinessSize `json:"size"`
	EmployeeCount int                    `json:"employeeCount"`
	AnnualRevenue float64                `json:"annualRevenue"`
	BusinessType  string                 `json:"businessType"`
	CreatedAt     time.Time              `json:"createdAt,omitempty"`
	UpdatedAt     time.Time              `json:"updatedAt,omitempty"`
}

// Validate enforces the profile constraints before any evaluation work:
// required strings with length bounds, a 2-letter state code, employee count
// in [1, 10000], and positive revenue capped at 1e9. The first violation is
// returned; no partially validated profile ever reaches the evaluator.
func (p *BusinessProfile) Validate() error {
	if err := requireString("name", p.Name, 1, 255); err != nil {
		return err
	}
	if err := requireString("industry", p.Industry, 1, 100); err != nil {
		return err
	}
	if len(p.Location.State) != constants.StateCodeLength {
		return errors.NewValidationf("state must be a %d-letter code", constants.StateCodeLength)
	}
	if err := requireString("county", p.Location.County, 1, 100); err != nil {
		return err
	}
	if err := requireString("city", p.Location.City, 1, 100); err != nil {
		return err
	}
	if err := requireString("zipCode", p.Location.ZipCode, 5, 10); err != nil {
		return err
	}
	if !isValidSize(p.Size) {
		return errors.NewValidationf("size must be one of Small, Medium, Large, got %q", p.Size)
	}
	if p.EmployeeCount < constants.MinEmployeeCount || p.EmployeeCount > constants.MaxEmployeeCount {
		return errors.NewValidationf("employeeCount must be between %d and %d",
			constants.MinEmployeeCount, constants.MaxEmployeeCount)
	}
	if p.AnnualRevenue <= 0 || p.AnnualRevenue > constants.MaxAnnualRevenue {
		return errors.NewValidationf("annualRevenue must be positive and at most %d", constants.MaxAnnualRevenue)
	}
	if err := requireString("businessType", p.BusinessType, 1, 100); err != nil {
		return err
	}
	return nil
}

func requireString(field, value string, min, max int) error {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < min {
		return errors.NewValidationf("%s is required", field)
	}
	if len(trimmed) > max {
		return errors.NewValidationf("%s must be at most %d characters", field, max)
	}
	return nil
}

func isValidSize(size constants.BusinessSize) bool {
	for _, s := range constants.ValidSizes {
		if size == s {
			return true
		}
	}
	return false
}
