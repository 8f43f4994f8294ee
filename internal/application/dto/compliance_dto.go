package dto

import (
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
)

// ComplianceCheckRequest is the payload for an ad-hoc compliance check.
// Same shape as a business write; the profile does not need to be persisted.
type ComplianceCheckRequest struct {
	BusinessRequest
	// BusinessID, when set, attributes the check to a stored business.
	BusinessID int64 `json:"businessId,omitempty"`
}

// ComplianceCheckResponse is the full evaluation outcome.
type ComplianceCheckResponse struct {
	Business              *BusinessResponse     `json:"business"`
	ApplicableRegulations []*RegulationResponse `json:"applicableRegulations"`
	ComplianceScore       int                   `json:"complianceScore"`
	RiskLevel             string                `json:"riskLevel"`
	NextDeadlines         []string              `json:"nextDeadlines"`
	Recommendations       []string              `json:"recommendations"`
}

// NewComplianceCheckResponse maps a domain result to its API shape.
func NewComplianceCheckResponse(result *models.ComplianceResult) *ComplianceCheckResponse {
	return &ComplianceCheckResponse{
		Business:              NewBusinessResponse(&result.Business),
		ApplicableRegulations: NewRegulationResponses(result.ApplicableRegulations),
		ComplianceScore:       result.ComplianceScore,
		RiskLevel:             string(result.RiskLevel),
		NextDeadlines:         result.NextDeadlines,
		Recommendations:       result.Recommendations,
	}
}

// ComplianceRecordResponse is one stored check outcome.
type ComplianceRecordResponse struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	ComplianceScore int       `json:"complianceScore"`
	RiskLevel       string    `json:"riskLevel"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewComplianceRecordResponse maps a stored record to its API shape.
func NewComplianceRecordResponse(record *models.ComplianceRecord) *ComplianceRecordResponse {
	return &ComplianceRecordResponse{
		ID:              record.ID,
		BusinessID:      record.BusinessID,
		ComplianceScore: record.ComplianceScore,
		RiskLevel:       string(record.RiskLevel),
		CreatedAt:       record.CreatedAt,
	}
}

// ComplianceHistoryResponse lists a business's stored checks, newest first.
type ComplianceHistoryResponse struct {
	BusinessID int64                       `json:"businessId"`
	History    []*ComplianceRecordResponse `json:"history"`
}
