// Package repository declares the persistence interfaces consumed by the
// application services. Implementations live under
// internal/infrastructure/persistence.
package repository

import (
	"context"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// BusinessFilter narrows business listings.
type BusinessFilter struct {
	Industry string
	Size     string
	County   string
	Page     int
	Limit    int
}

// BusinessStats aggregates the business table for the stats endpoint.
type BusinessStats struct {
	TotalBusinesses  int64   `json:"totalBusinesses"`
	TotalIndustries  int64   `json:"totalIndustries"`
	TotalCounties    int64   `json:"totalCounties"`
	TotalCities      int64   `json:"totalCities"`
	AvgEmployees     float64 `json:"avgEmployees"`
	AvgRevenue       float64 `json:"avgRevenue"`
	SmallBusinesses  int64   `json:"smallBusinesses"`
	MediumBusinesses int64   `json:"mediumBusinesses"`
	LargeBusinesses  int64   `json:"largeBusinesses"`
}

// GroupCount is a generic (label, count) aggregate row.
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// LocationCount is a (county, city, count) aggregate row.
type LocationCount struct {
	County string `json:"county"`
	City   string `json:"city"`
	Count  int64  `json:"count"`
}

// BusinessRepository persists business profiles.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.BusinessProfile) error
	Update(ctx context.Context, business *models.BusinessProfile) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.BusinessProfile, error)
	FindAll(ctx context.Context, filter BusinessFilter) ([]*models.BusinessProfile, int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*BusinessStats, error)
	TopIndustries(ctx context.Context, limit int) ([]GroupCount, error)
	TopLocations(ctx context.Context, limit int) ([]LocationCount, error)
}

// RegulationFilter narrows regulation listings.
type RegulationFilter struct {
	Category     string
	Jurisdiction string
	// Industry matches against the free-text applicability tags.
	Industry  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// RegulationStats aggregates the regulation corpus for the stats endpoint.
type RegulationStats struct {
	TotalRegulations         int64 `json:"totalRegulations"`
	TotalCategories          int64 `json:"totalCategories"`
	TotalJurisdictions       int64 `json:"totalJurisdictions"`
	TotalAuthorities         int64 `json:"totalAuthorities"`
	RegulationsWithDeadlines int64 `json:"regulationsWithDeadlines"`
}

// RegulationRepository reads the regulation corpus. The corpus is seeded
// data; the engine never writes regulations.
type RegulationRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Regulation, error)
	FindAll(ctx context.Context, filter RegulationFilter) ([]models.Regulation, int64, error)
	// FindByJurisdictions returns the candidate corpus for the applicability
	// rules: every regulation whose jurisdiction is in the given label set,
	// with penalties, requirements, exemptions and tags preloaded.
	FindByJurisdictions(ctx context.Context, jurisdictions []constants.Jurisdiction) ([]models.Regulation, error)
	Categories(ctx context.Context) ([]GroupCount, error)
	Jurisdictions(ctx context.Context) ([]GroupCount, error)
	Stats(ctx context.Context) (*RegulationStats, error)
}

// ComplianceRepository persists compliance results and the
// business/regulation applicability linkage.
type ComplianceRepository interface {
	SaveResult(ctx context.Context, record *models.ComplianceRecord) error
	UpsertBusinessRegulation(ctx context.Context, link *models.BusinessRegulation) error
	LatestResult(ctx context.Context, businessID int64) (*models.ComplianceRecord, error)
	History(ctx context.Context, businessID int64) ([]*models.ComplianceRecord, error)
	AppliedRegulations(ctx context.Context, businessID int64) ([]models.Regulation, error)
}
