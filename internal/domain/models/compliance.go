package models

import (
	"time"

	"github.com/bizcomply/bizcomply/pkg/constants"
)

// ComplianceResult is the output of one evaluation: the profile snapshot,
// the regulations actually selected, the score, the risk tier, the upcoming
// deadlines (ISO dates, at most 5, ascending), and the recommendations.
// Created fresh on every evaluation call.
type ComplianceResult struct {
	Business              BusinessProfile     `json:"business"`
	ApplicableRegulations []Regulation        `json:"applicableRegulations"`
	ComplianceScore       int                 `json:"complianceScore"`
	RiskLevel             constants.RiskLevel `json:"riskLevel"`
	NextDeadlines         []string            `json:"nextDeadlines"`
	Recommendations       []string            `json:"recommendations"`
}

// ComplianceRecord is the persisted variant of a result: the score and risk
// tier keyed by business, with a timestamp. The regulation linkage is stored
// separately as BusinessRegulation rows.
type ComplianceRecord struct {
	ID              int64               `json:"id"`
	BusinessID      int64               `json:"businessId"`
	ComplianceScore int                 `json:"complianceScore"`
	RiskLevel       constants.RiskLevel `json:"riskLevel"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// BusinessRegulation links a business to a regulation found applicable in a
// saved compliance check. Unique per (business, regulation); re-saving a
// check upserts the row.
type BusinessRegulation struct {
	BusinessID       int64                      `json:"businessId"`
	RegulationID     int64                      `json:"regulationId"`
	IsApplicable     bool                       `json:"isApplicable"`
	ComplianceStatus constants.ComplianceStatus `json:"complianceStatus"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}
