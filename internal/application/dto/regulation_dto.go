package dto

import (
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
)

// RegulationListQuery carries the regulation listing filters.
type RegulationListQuery struct {
	Category     string `form:"category"`
	Jurisdiction string `form:"jurisdiction"`
	Industry     string `form:"industry"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=title"`
	SortOrder    string `form:"sortOrder,default=asc"`
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=20"`
}

// ToFilter converts the query into the repository filter.
func (q *RegulationListQuery) ToFilter() repository.RegulationFilter {
	return repository.RegulationFilter{
		Category:     q.Category,
		Jurisdiction: q.Jurisdiction,
		Industry:     q.Industry,
		Search:       q.Search,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
		Page:         q.Page,
		Limit:        q.Limit,
	}
}

// RegulationResponse is the read shape for a regulation.
type RegulationResponse struct {
	ID                 int64                `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	Category           string               `json:"category"`
	Jurisdiction       string               `json:"jurisdiction"`
	Authority          string               `json:"authority"`
	EffectiveDate      time.Time            `json:"effectiveDate"`
	ComplianceDeadline *time.Time           `json:"complianceDeadline,omitempty"`
	Penalties          []models.Penalty     `json:"penalties"`
	Requirements       []models.Requirement `json:"requirements"`
	Exemptions         []string             `json:"exemptions"`
	AppliesTo          []string             `json:"appliesTo"`
}

// NewRegulationResponse maps a domain regulation to its API shape.
func NewRegulationResponse(r *models.Regulation) *RegulationResponse {
	return &RegulationResponse{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		Category:           string(r.Category),
		Jurisdiction:       string(r.Jurisdiction),
		Authority:          r.Authority,
		EffectiveDate:      r.EffectiveDate,
		ComplianceDeadline: r.ComplianceDeadline,
		Penalties:          r.Penalties,
		Requirements:       r.Requirements,
		Exemptions:         r.Exemptions,
		AppliesTo:          r.AppliesTo,
	}
}

// NewRegulationResponses maps a regulation slice.
func NewRegulationResponses(regs []models.Regulation) []*RegulationResponse {
	out := make([]*RegulationResponse, len(regs))
	for i := range regs {
		out[i] = NewRegulationResponse(&regs[i])
	}
	return out
}

// RegulationListResponse is the paginated regulation listing.
type RegulationListResponse struct {
	Regulations []*RegulationResponse `json:"regulations"`
	Pagination  Pagination            `json:"pagination"`
}
