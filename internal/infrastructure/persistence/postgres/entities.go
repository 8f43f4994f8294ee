package postgres

import (
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
)

// BusinessRecord is the database row for a business profile. The nested
// Location of the domain model is flattened into columns.
type BusinessRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"size:255;not null"`
	Industry      string    `gorm:"size:100;not null;index"`
	State         string    `gorm:"size:2;not null"`
	County        string    `gorm:"size:100;not null;index"`
	City          string    `gorm:"size:100;not null"`
	ZipCode       string    `gorm:"size:10;not null"`
	Size          string    `gorm:"size:20;not null;index"`
	EmployeeCount int       `gorm:"not null"`
	AnnualRevenue float64   `gorm:"not null"`
	BusinessType  string    `gorm:"size:100;not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (BusinessRecord) TableName() string { return "businesses" }

// RegulationRecord is the database row for a regulation. The penalty,
// requirement, exemption, and applicability collections live in child tables
// and are preloaded on read. The applicability flags are derived once at seed
// time and stored, so reads never re-inspect title text.
type RegulationRecord struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement"`
	Title              string     `gorm:"size:500;not null"`
	Description        string     `gorm:"type:text"`
	Category           string     `gorm:"size:100;not null;index"`
	Jurisdiction       string     `gorm:"size:100;not null;index"`
	Authority          string     `gorm:"size:255"`
	EffectiveDate      time.Time  `gorm:"not null"`
	ComplianceDeadline *time.Time `gorm:"index"`
	HealthcareSpecific bool       `gorm:"not null;default:false"`
	FamilyLeave        bool       `gorm:"not null;default:false"`

	Penalties     []PenaltyRecord       `gorm:"foreignKey:RegulationID;constraint:OnDelete:CASCADE"`
	Requirements  []RequirementRecord   `gorm:"foreignKey:RegulationID;constraint:OnDelete:CASCADE"`
	Exemptions    []ExemptionRecord     `gorm:"foreignKey:RegulationID;constraint:OnDelete:CASCADE"`
	Applicability []ApplicabilityRecord `gorm:"foreignKey:RegulationID;constraint:OnDelete:CASCADE"`
}

func (RegulationRecord) TableName() string { return "regulations" }

// PenaltyRecord is a sanction row attached to a regulation.
type PenaltyRecord struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	RegulationID int64   `gorm:"not null;index"`
	Type         string  `gorm:"size:100"`
	Amount       float64 `gorm:""`
	Description  string  `gorm:"type:text"`
}

func (PenaltyRecord) TableName() string { return "regulation_penalties" }

// RequirementRecord is an obligation row attached to a regulation.
type RequirementRecord struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	RegulationID  int64  `gorm:"not null;index"`
	Description   string `gorm:"type:text"`
	Frequency     string `gorm:"size:100"`
	Documentation string `gorm:"type:text"`
	Deadline      string `gorm:"size:100"`
}

func (RequirementRecord) TableName() string { return "regulation_requirements" }

// ExemptionRecord is a free-text exemption row attached to a regulation.
type ExemptionRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RegulationID int64  `gorm:"not null;index"`
	Exemption    string `gorm:"type:text"`
}

func (ExemptionRecord) TableName() string { return "regulation_exemptions" }

// ApplicabilityRecord is a free-text applicability tag attached to a
// regulation, matched against the industry filter on regulation listings.
type ApplicabilityRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RegulationID int64  `gorm:"not null;index"`
	AppliesTo    string `gorm:"size:255"`
}

func (ApplicabilityRecord) TableName() string { return "regulation_applicability" }

// ComplianceCheckRecord is a persisted compliance evaluation outcome.
type ComplianceCheckRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	BusinessID      int64     `gorm:"not null;index"`
	ComplianceScore int       `gorm:"not null"`
	RiskLevel       string    `gorm:"size:20;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (ComplianceCheckRecord) TableName() string { return "compliance_checks" }

// BusinessRegulationRecord links a business to a regulation found applicable
// in a saved check. Unique per pair; re-saving upserts.
type BusinessRegulationRecord struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	BusinessID       int64     `gorm:"not null;uniqueIndex:idx_business_regulation"`
	RegulationID     int64     `gorm:"not null;uniqueIndex:idx_business_regulation"`
	IsApplicable     bool      `gorm:"not null;default:true"`
	ComplianceStatus string    `gorm:"size:20;not null;default:pending"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (BusinessRegulationRecord) TableName() string { return "business_regulations" }

func businessToRecord(b *models.BusinessProfile) *BusinessRecord {
	return &BusinessRecord{
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

func businessFromRecord(r *BusinessRecord) *models.BusinessProfile {
	return &models.BusinessProfile{
		ID:       r.ID,
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
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func regulationToRecord(reg *models.Regulation) *RegulationRecord {
	record := &RegulationRecord{
		ID:                 reg.ID,
		Title:              reg.Title,
		Description:        reg.Description,
		Category:           string(reg.Category),
		Jurisdiction:       string(reg.Jurisdiction),
		Authority:          reg.Authority,
		EffectiveDate:      reg.EffectiveDate,
		ComplianceDeadline: reg.ComplianceDeadline,
		HealthcareSpecific: reg.Flags.HealthcareSpecific,
		FamilyLeave:        reg.Flags.FamilyLeave,
	}
	for _, p := range reg.Penalties {
		record.Penalties = append(record.Penalties, PenaltyRecord{
			Type: p.Type, Amount: p.Amount, Description: p.Description,
		})
	}
	for _, req := range reg.Requirements {
		record.Requirements = append(record.Requirements, RequirementRecord{
			Description:   req.Description,
			Frequency:     req.Frequency,
			Documentation: req.Documentation,
			Deadline:      req.Deadline,
		})
	}
	for _, e := range reg.Exemptions {
		record.Exemptions = append(record.Exemptions, ExemptionRecord{Exemption: e})
	}
	for _, a := range reg.AppliesTo {
		record.Applicability = append(record.Applicability, ApplicabilityRecord{AppliesTo: a})
	}
	return record
}

func regulationFromRecord(r *RegulationRecord) models.Regulation {
	reg := models.Regulation{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		Category:           constants.Category(r.Category),
		Jurisdiction:       constants.Jurisdiction(r.Jurisdiction),
		Authority:          r.Authority,
		EffectiveDate:      r.EffectiveDate,
		ComplianceDeadline: r.ComplianceDeadline,
		Flags: models.RegulationFlags{
			HealthcareSpecific: r.HealthcareSpecific,
			FamilyLeave:        r.FamilyLeave,
		},
	}
	for _, p := range r.Penalties {
		reg.Penalties = append(reg.Penalties, models.Penalty{
			Type: p.Type, Amount: p.Amount, Description: p.Description,
		})
	}
	for _, req := range r.Requirements {
		reg.Requirements = append(reg.Requirements, models.Requirement{
			Description:   req.Description,
			Frequency:     req.Frequency,
			Documentation: req.Documentation,
			Deadline:      req.Deadline,
		})
	}
	for _, e := range r.Exemptions {
		reg.Exemptions = append(reg.Exemptions, e.Exemption)
	}
	for _, a := range r.Applicability {
		reg.AppliesTo = append(reg.AppliesTo, a.AppliesTo)
	}
	return reg
}
