// Package dto defines the request and response shapes of the HTTP API and
// their mapping to domain models.
package dto

import (
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// BusinessRequest is the write payload for creating or updating a business.
// Binding enforces shape; domain validation enforces the full rule set.
type BusinessRequest struct {
	Name          string  `json:"name" binding:"required"`
	Industry      string  `json:"industry" binding:"required"`
	State         string  `json:"state" binding:"required"`
	County        string  `json:"county" binding:"required"`
	City          string  `json:"city" binding:"required"`
	ZipCode       string  `json:"zipCode" binding:"required"`
	Size          string  `json:"size" binding:"required"`
	EmployeeCount int     `json:"employeeCount" binding:"required"`
	AnnualRevenue float64 `json:"annualRevenue" binding:"required"`
	BusinessType  string  `json:"businessType" binding:"required"`
}

// ToModel converts the request into a domain profile.
func (r *BusinessRequest) ToModel() *models.BusinessProfile {
	return &models.BusinessProfile{
		Name:     r.Name,
		Industry: r.Industry,
		Location: models.Location{
			State:   r.State,
			County:  r.County,
			City:    r.City,
			ZipCode: r.ZipCode,
		},
		Size:          constants.BusinessSize(r.Size),
		EmployeeCount: r.EmployeeCount,
		AnnualRevenue: r.AnnualRevenue,
		BusinessType:  r.BusinessType,
	}
}

// BusinessResponse is the read shape for a business.
type BusinessResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	State         string    `json:"state"`
	County        string    `json:"county"`
	City          string    `json:"city"`
	ZipCode       string    `json:"zipCode"`
	Size          string    `json:"size"`
	EmployeeCount int       `json:"employeeCount"`
	AnnualRevenue float64   `json:"annualRevenue"`
	BusinessType  string    `json:"businessType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewBusinessResponse maps a domain profile to its API shape.
func NewBusinessResponse(b *models.BusinessProfile) *BusinessResponse {
	return &BusinessResponse{
		ID:            b.ID,
		Name:          b.Name,
		Industry:      b.Industry,
		State:         b.Location.State,
		County:        b.Location.County,
		City:          b.Location.City,
		ZipCode:       b.Location.ZipCode,
		Size:          string(b.Size),
		EmployeeCount: b.EmployeeCount,
		AnnualRevenue: b.AnnualRevenue,
		BusinessType:  b.BusinessType,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// BusinessListQuery carries the business listing filters.
type BusinessListQuery struct {
	Industry string `form:"industry"`
	Size     string `form:"size"`
	County   string `form:"county"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// BusinessListResponse is the paginated business listing.
type BusinessListResponse struct {
	Businesses []*BusinessResponse `json:"businesses"`
	Pagination Pagination          `json:"pagination"`
}
