package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/pkg/constants"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// Seeder loads the regulation corpus into an empty database. Seeding is
// idempotent: a non-empty regulations table is left untouched.
type Seeder struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewSeeder creates a corpus seeder.
func NewSeeder(db *gorm.DB, log logger.Logger) *Seeder {
	return &Seeder{db: db, logger: log.WithComponent("seeder")}
}

// Seed inserts the built-in corpus if the regulations table is empty.
func (s *Seeder) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&RegulationRecord{}).Count(&count).Error; err != nil {
		return apperrors.NewStorage("count regulations", err)
	}
	if count > 0 {
		s.logger.Info(ctx, "regulation corpus already seeded", logger.Int64("regulations", count))
		return nil
	}

	corpus := seedCorpus()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range corpus {
			corpus[i].DeriveFlags()
			record := regulationToRecord(&corpus[i])
			record.ID = 0
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to seed regulation corpus", err)
		return apperrors.NewStorage("seed regulations", err)
	}

	s.logger.Info(ctx, "regulation corpus seeded", logger.Int("regulations", len(corpus)))
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// seedCorpus is the built-in regulation set covering the four jurisdiction
// tiers of the service area.
func seedCorpus() []models.Regulation {
	return []models.Regulation{
		{
			Title:         "Fair Labor Standards Act (FLSA)",
			Description:   "Federal minimum wage, overtime pay, recordkeeping, and youth employment standards.",
			Category:      constants.CategoryLaborEmployment,
			Jurisdiction:  constants.JurisdictionFederal,
			Authority:     "U.S. Department of Labor",
			EffectiveDate: date(1938, 6, 25),
			Penalties: []models.Penalty{
				{Type: "Civil", Amount: 2374, Description: "Per violation of minimum wage or overtime provisions"},
			},
			Requirements: []models.Requirement{
				{Description: "Pay at least the federal minimum wage", Frequency: "Ongoing", Documentation: "Payroll records", Deadline: "Each pay period"},
				{Description: "Pay overtime at 1.5x for hours over 40 per week", Frequency: "Ongoing", Documentation: "Time records", Deadline: "Each pay period"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:              "Occupational Safety and Health Act (OSHA) General Duty",
			Description:        "Employers must provide a workplace free from recognized hazards.",
			Category:           constants.CategoryWorkplaceSafety,
			Jurisdiction:       constants.JurisdictionFederal,
			Authority:          "Occupational Safety and Health Administration",
			EffectiveDate:      date(1971, 4, 28),
			ComplianceDeadline: datePtr(2027, 3, 1),
			Penalties: []models.Penalty{
				{Type: "Civil", Amount: 16131, Description: "Per serious violation"},
				{Type: "Civil", Amount: 161323, Description: "Per willful or repeated violation"},
			},
			Requirements: []models.Requirement{
				{Description: "Maintain OSHA 300 injury and illness log", Frequency: "Ongoing", Documentation: "OSHA Form 300", Deadline: "Annual posting by February 1"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:              "Family and Medical Leave Act (FMLA)",
			Description:        "Unpaid, job-protected leave for qualified medical and family reasons at businesses with 50 or more employees.",
			Category:           constants.CategoryLaborEmployment,
			Jurisdiction:       constants.JurisdictionFederal,
			Authority:          "U.S. Department of Labor",
			EffectiveDate:      date(1993, 8, 5),
			ComplianceDeadline: datePtr(2026, 12, 31),
			Requirements: []models.Requirement{
				{Description: "Provide up to 12 weeks of unpaid leave", Frequency: "Per qualifying event", Documentation: "Leave request records", Deadline: "Within qualifying period"},
			},
			Exemptions: []string{"Businesses with fewer than 50 employees"},
			AppliesTo:  []string{"All industries with 50+ employees"},
		},
		{
			Title:         "Title VII of the Civil Rights Act",
			Description:   "Prohibits employment discrimination based on race, color, religion, sex, or national origin.",
			Category:      constants.CategoryCivilRights,
			Jurisdiction:  constants.JurisdictionFederal,
			Authority:     "Equal Employment Opportunity Commission",
			EffectiveDate: date(1964, 7, 2),
			Exemptions:    []string{"Businesses with fewer than 15 employees"},
			AppliesTo:     []string{"All industries"},
		},
		{
			Title:              "HIPAA Privacy and Security Rules",
			Description:        "Protection of individually identifiable health information held by covered entities.",
			Category:           constants.CategoryPrivacySecurity,
			Jurisdiction:       constants.JurisdictionFederal,
			Authority:          "U.S. Department of Health and Human Services",
			EffectiveDate:      date(2003, 4, 14),
			ComplianceDeadline: datePtr(2026, 10, 15),
			Penalties: []models.Penalty{
				{Type: "Civil", Amount: 50000, Description: "Per violation, up to annual cap"},
			},
			Requirements: []models.Requirement{
				{Description: "Conduct periodic security risk assessments", Frequency: "Annual", Documentation: "Risk assessment report", Deadline: "Annually"},
			},
			AppliesTo: []string{"Healthcare"},
		},
		{
			Title:         "Federal Employer Identification and Tax Registration",
			Description:   "Businesses must obtain an EIN and file federal employment tax returns.",
			Category:      constants.CategoryTaxation,
			Jurisdiction:  constants.JurisdictionFederal,
			Authority:     "Internal Revenue Service",
			EffectiveDate: date(1954, 8, 16),
			Requirements: []models.Requirement{
				{Description: "File quarterly Form 941 employment tax returns", Frequency: "Quarterly", Documentation: "Form 941", Deadline: "Last day of month following quarter"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:              "California Consumer Privacy Act (CCPA)",
			Description:        "Consumer rights over personal information collected by businesses meeting revenue or data thresholds.",
			Category:           constants.CategoryPrivacySecurity,
			Jurisdiction:       constants.JurisdictionState,
			Authority:          "California Privacy Protection Agency",
			EffectiveDate:      date(2020, 1, 1),
			ComplianceDeadline: datePtr(2026, 11, 1),
			Penalties: []models.Penalty{
				{Type: "Civil", Amount: 7500, Description: "Per intentional violation"},
			},
			Requirements: []models.Requirement{
				{Description: "Publish a privacy policy describing consumer rights", Frequency: "Ongoing", Documentation: "Privacy policy", Deadline: "Update every 12 months"},
			},
			Exemptions: []string{"Businesses under $25M revenue not trading in personal data"},
			AppliesTo:  []string{"Technology", "Retail"},
		},
		{
			Title:              "Cal/OSHA Injury and Illness Prevention Program",
			Description:        "Every California employer must maintain a written injury and illness prevention program.",
			Category:           constants.CategoryWorkplaceSafety,
			Jurisdiction:       constants.JurisdictionState,
			Authority:          "California Division of Occupational Safety and Health",
			EffectiveDate:      date(1991, 7, 1),
			ComplianceDeadline: datePtr(2026, 9, 30),
			Requirements: []models.Requirement{
				{Description: "Maintain a written IIPP with hazard inspections", Frequency: "Ongoing", Documentation: "IIPP document and inspection records", Deadline: "Ongoing"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:         "California Minimum Wage Order",
			Description:   "State minimum wage requirements exceeding the federal floor.",
			Category:      constants.CategoryLaborEmployment,
			Jurisdiction:  constants.JurisdictionState,
			Authority:     "California Department of Industrial Relations",
			EffectiveDate: date(2017, 1, 1),
			Requirements: []models.Requirement{
				{Description: "Pay the state minimum wage", Frequency: "Ongoing", Documentation: "Payroll records", Deadline: "Each pay period"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:              "California Environmental Quality Act (CEQA) Review",
			Description:        "Environmental impact review for projects requiring discretionary approval.",
			Category:           constants.CategoryEnvironmental,
			Jurisdiction:       constants.JurisdictionState,
			Authority:          "California Natural Resources Agency",
			EffectiveDate:      date(1970, 11, 23),
			ComplianceDeadline: datePtr(2027, 1, 15),
			AppliesTo:          []string{"Construction", "Manufacturing", "Agriculture"},
		},
		{
			Title:         "California Fair Employment and Housing Act (FEHA)",
			Description:   "State anti-discrimination protections broader than federal law, covering employers with 5 or more employees.",
			Category:      constants.CategoryCivilRights,
			Jurisdiction:  constants.JurisdictionState,
			Authority:     "California Civil Rights Department",
			EffectiveDate: date(1980, 1, 1),
			Exemptions:    []string{"Businesses with fewer than 5 employees"},
			AppliesTo:     []string{"All industries"},
		},
		{
			Title:         "California Seller's Permit and Sales Tax",
			Description:   "Businesses selling tangible goods must hold a seller's permit and remit sales tax.",
			Category:      constants.CategoryTaxation,
			Jurisdiction:  constants.JurisdictionState,
			Authority:     "California Department of Tax and Fee Administration",
			EffectiveDate: date(1933, 8, 1),
			Requirements: []models.Requirement{
				{Description: "File sales and use tax returns", Frequency: "Quarterly", Documentation: "CDTFA returns", Deadline: "Last day of month following quarter"},
			},
			AppliesTo: []string{"Retail", "Food Service"},
		},
		{
			Title:              "Kern County Business Property Statement",
			Description:        "Annual declaration of business personal property for county assessment.",
			Category:           constants.CategoryTaxation,
			Jurisdiction:       constants.JurisdictionCounty,
			Authority:          "Kern County Assessor-Recorder",
			EffectiveDate:      date(1980, 1, 1),
			ComplianceDeadline: datePtr(2027, 4, 1),
			Requirements: []models.Requirement{
				{Description: "File Form 571-L business property statement", Frequency: "Annual", Documentation: "Form 571-L", Deadline: "April 1"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:              "Kern County Environmental Health Permit",
			Description:        "Health permit for facilities handling food, hazardous materials, or medical waste in Kern County.",
			Category:           constants.CategoryHealthSafety,
			Jurisdiction:       constants.JurisdictionCounty,
			Authority:          "Kern County Public Health Services",
			EffectiveDate:      date(1995, 7, 1),
			ComplianceDeadline: datePtr(2026, 12, 1),
			Requirements: []models.Requirement{
				{Description: "Hold a current environmental health permit", Frequency: "Annual", Documentation: "Permit certificate", Deadline: "Annual renewal"},
			},
			AppliesTo: []string{"Food Service", "Healthcare", "Manufacturing"},
		},
		{
			Title:         "Kern County Land Use and Zoning Ordinance",
			Description:   "Zoning compliance for commercial operations in unincorporated Kern County.",
			Category:      constants.CategoryLandUse,
			Jurisdiction:  constants.JurisdictionCounty,
			Authority:     "Kern County Planning and Natural Resources",
			EffectiveDate: date(1985, 3, 1),
			AppliesTo:     []string{"Construction", "Agriculture", "Manufacturing"},
		},
		{
			Title:              "Bakersfield Business Tax Certificate",
			Description:        "Every business operating in Bakersfield must hold a current business tax certificate.",
			Category:           constants.CategoryBusinessLicensing,
			Jurisdiction:       constants.JurisdictionCity,
			Authority:          "City of Bakersfield Treasury Division",
			EffectiveDate:      date(1990, 1, 1),
			ComplianceDeadline: datePtr(2026, 10, 1),
			Penalties: []models.Penalty{
				{Type: "Civil", Amount: 500, Description: "Operating without a certificate"},
			},
			Requirements: []models.Requirement{
				{Description: "Renew the business tax certificate", Frequency: "Annual", Documentation: "Certificate", Deadline: "Annual renewal"},
			},
			AppliesTo: []string{"All industries"},
		},
		{
			Title:         "Bakersfield Sign and Storefront Ordinance",
			Description:   "Municipal standards for commercial signage and storefront maintenance.",
			Category:      constants.CategoryLocalOrdinances,
			Jurisdiction:  constants.JurisdictionCity,
			Authority:     "City of Bakersfield Development Services",
			EffectiveDate: date(2005, 6, 1),
			AppliesTo:     []string{"Retail", "Food Service"},
		},
		{
			Title:              "Bakersfield Commercial Waste and Recycling Ordinance",
			Description:        "Commercial waste separation and recycling requirements within city limits.",
			Category:           constants.CategoryEnvironmental,
			Jurisdiction:       constants.JurisdictionCity,
			Authority:          "City of Bakersfield Public Works",
			EffectiveDate:      date(2012, 1, 1),
			ComplianceDeadline: datePtr(2027, 2, 1),
			AppliesTo:          []string{"All industries"},
		},
	}
}
