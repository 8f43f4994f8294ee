// Package constants defines the shared enumerations and defaults for the
// bizcomply compliance service: regulation taxonomy, jurisdiction tiers,
// business attributes, and cache/server defaults.
package constants

import "time"

// Category classifies a regulation's subject matter. The set is fixed; the
// industry→category mapping and the scoring tables consume these values.
type Category string

const (
	CategoryLaborEmployment      Category = "Labor & Employment"
	CategoryWorkplaceSafety      Category = "Workplace Safety"
	CategoryEnvironmental        Category = "Environmental"
	CategoryHealthSafety         Category = "Health & Safety"
	CategoryPrivacySecurity      Category = "Privacy & Security"
	CategoryBusinessLicensing    Category = "Business Licensing"
	CategoryLocalOrdinances      Category = "Local Ordinances"
	CategoryLandUse              Category = "Land Use"
	CategoryTransportation       Category = "Transportation"
	CategoryTaxation             Category = "Taxation"
	CategoryProfessionalLicense  Category = "Professional Licensing"
	CategoryCivilRights          Category = "Civil Rights"
	CategoryFinancialServices    Category = "Financial Services"
)

// Jurisdiction is the governing level a regulation originates from. The
// labels are flat strings; the applicability rules treat them as an
// inclusive-OR hierarchy Federal ⊂ State ⊂ County ⊂ City.
type Jurisdiction string

const (
	JurisdictionFederal Jurisdiction = "Federal"
	JurisdictionState   Jurisdiction = "California"
	JurisdictionCounty  Jurisdiction = "Kern County"
	JurisdictionCity    Jurisdiction = "Bakersfield"
)

// Reference locality for location-specific recommendations.
const (
	ReferenceCounty = "Kern"
	ReferenceCity   = "Bakersfield"
)

// BusinessSize buckets a business for scoring purposes.
type BusinessSize string

const (
	SizeSmall  BusinessSize = "Small"
	SizeMedium BusinessSize = "Medium"
	SizeLarge  BusinessSize = "Large"
)

// ValidSizes lists the accepted business size values.
var ValidSizes = []BusinessSize{SizeSmall, SizeMedium, SizeLarge}

// RiskLevel is the four-tier classification derived from the compliance score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// ComplianceStatus tracks a business/regulation linkage over time.
type ComplianceStatus string

const (
	ComplianceStatusPending   ComplianceStatus = "pending"
	ComplianceStatusCompliant ComplianceStatus = "compliant"
	ComplianceStatusOverdue   ComplianceStatus = "overdue"
)

// Known industries. Unknown industries are accepted and fall back to the
// Business Licensing category set.
const (
	IndustryAgriculture    = "Agriculture"
	IndustryAutomotive     = "Automotive"
	IndustryConstruction   = "Construction"
	IndustryFoodService    = "Food Service"
	IndustryHealthcare     = "Healthcare"
	IndustryManufacturing  = "Manufacturing"
	IndustryRetail         = "Retail"
	IndustryTechnology     = "Technology"
	IndustryTransportation = "Transportation"
	IndustryOther          = "Other"
)

// Validation bounds, mirroring the public API contract.
const (
	MinEmployeeCount = 1
	MaxEmployeeCount = 10000
	MaxAnnualRevenue = 1_000_000_000
	StateCodeLength  = 2
)

// Cache defaults.
const (
	DefaultCacheTTL        = 3600 * time.Second
	CacheKeyComplianceScan = "compliance"
	CacheKeyRegulation     = "regulation"
)

// Evaluator bounds.
const (
	MaxUpcomingDeadlines = 5
	MinComplianceScore   = 0
	MaxComplianceScore   = 100
)

// LogLevel controls logger verbosity.
type LogLevel int8

const (
	LogLevelDebug LogLevel = iota - 1
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// ContextKey is the type for request-scoped context values.
type ContextKey string

// ContextKeyRequestID carries the per-request correlation ID.
const ContextKeyRequestID ContextKey = "request_id"
