package models

import (
	"strings"
	"time"

	"github.com/bizcomply/bizcomply/pkg/constants"
)

// Penalty describes a sanction attached to a regulation.
type Penalty struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Requirement describes an obligation a regulation imposes.
type Requirement struct {
	Description   string `json:"description"`
	Frequency     string `json:"frequency"`
	Documentation string `json:"documentation"`
	Deadline      string `json:"deadline"`
}

// RegulationFlags are boolean tags derived once when a regulation is loaded
// or seeded. The applicability rules consume only these flags, never the
// title text.
type RegulationFlags struct {
	// HealthcareSpecific marks regulations that apply to healthcare
	// businesses only (HIPAA and similar). Excluded for every other industry.
	HealthcareSpecific bool `json:"healthcareSpecific"`
	// FamilyLeave marks family/medical-leave regulations force-included for
	// businesses with 50 or more employees.
	FamilyLeave bool `json:"familyLeave"`
}

// Regulation is a single record from the jurisdiction/category-tagged corpus.
// Regulations are seeded data and read-only from the engine's perspective.
type Regulation struct {
	ID                 int64                  `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Category           constants.Category     `json:"category"`
	Jurisdiction       constants.Jurisdiction `json:"jurisdiction"`
	Authority          string                 `json:"authority"`
	EffectiveDate      time.Time              `json:"effectiveDate"`
	ComplianceDeadline *time.Time             `json:"complianceDeadline,omitempty"`
	Penalties          []Penalty              `json:"penalties"`
	Requirements       []Requirement          `json:"requirements"`
	Exemptions         []string               `json:"exemptions"`
	AppliesTo          []string               `json:"appliesTo"`
	Flags              RegulationFlags        `json:"flags"`
}

// healthcareTitleTerms and familyLeaveTitleTerms drive the one-time flag
// derivation for corpora that predate explicit flags.
var (
	healthcareTitleTerms  = []string{"hipaa", "healthcare", "medical"}
	familyLeaveTitleTerms = []string{"fmla", "family and medical leave"}
)

// DeriveFlags computes the regulation flags from its title. Called at seed
// and load time so the evaluator stays decoupled from corpus text content.
func (r *Regulation) DeriveFlags() {
	title := strings.ToLower(r.Title)
	for _, term := range healthcareTitleTerms {
		if strings.Contains(title, term) {
			r.Flags.HealthcareSpecific = true
			break
		}
	}
	for _, term := range familyLeaveTitleTerms {
		if strings.Contains(title, term) {
			r.Flags.FamilyLeave = true
			break
		}
	}
}
