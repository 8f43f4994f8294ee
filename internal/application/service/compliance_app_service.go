// Package service wires the domain logic to repositories, cache, audit, and
// metrics. Handlers call these application services only.
package service

import (
	"context"
	"time"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	domainservice "github.com/bizcomply/bizcomply/internal/domain/service"
	"github.com/bizcomply/bizcomply/internal/infrastructure/audit"
	"github.com/bizcomply/bizcomply/internal/infrastructure/cache"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/pkg/constants"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// ComplianceAppService runs compliance evaluations and manages stored
// results.
type ComplianceAppService struct {
	businesses  repository.BusinessRepository
	regulations repository.RegulationRepository
	compliance  repository.ComplianceRepository
	cache       *cache.Manager
	audit       audit.Publisher
	metrics     *monitoring.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// NewComplianceAppService constructs the compliance application service.
func NewComplianceAppService(
	businesses repository.BusinessRepository,
	regulations repository.RegulationRepository,
	compliance repository.ComplianceRepository,
	cacheManager *cache.Manager,
	auditPublisher audit.Publisher,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *ComplianceAppService {
	return &ComplianceAppService{
		businesses:  businesses,
		regulations: regulations,
		compliance:  compliance,
		cache:       cacheManager,
		audit:       auditPublisher,
		metrics:     metrics,
		logger:      log.WithComponent("compliance_service"),
		now:         time.Now,
	}
}

// Check validates the profile and runs the full evaluation pipeline:
// cache lookup, corpus load, applicability selection, scoring. The result is
// cached under the profile's attribute key.
func (s *ComplianceAppService) Check(ctx context.Context, profile *models.BusinessProfile) (*models.ComplianceResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	key := cache.ComplianceKey(profile)

	if cached, ok := s.cache.GetComplianceResult(ctx, key); ok {
		s.logger.Debug(ctx, "compliance result served from cache",
			logger.String("industry", profile.Industry))
		s.publishAudit(ctx, profile, cached, true)
		return cached, nil
	}

	corpus, err := s.regulations.FindByJurisdictions(ctx, domainservice.JurisdictionTiers(profile))
	if err != nil {
		return nil, err
	}

	selected := domainservice.SelectApplicableRegulations(profile, corpus)
	result := domainservice.Evaluate(profile, selected, s.now())

	s.cache.SetComplianceResult(ctx, key, result)

	elapsed := s.now().Sub(start)
	s.metrics.ObserveComplianceCheck(profile.Industry, string(result.RiskLevel), elapsed)
	s.logger.Info(ctx, "compliance check completed",
		logger.String("industry", profile.Industry),
		logger.String("size", string(profile.Size)),
		logger.Int("score", result.ComplianceScore),
		logger.String("risk_level", string(result.RiskLevel)),
		logger.Int("applicable_regulations", len(selected)),
		logger.Int64("latency_ms", elapsed.Milliseconds()),
	)

	s.publishAudit(ctx, profile, result, false)
	return result, nil
}

// CheckAndSave evaluates a stored business and persists the outcome along
// with the applicability linkage.
func (s *ComplianceAppService) CheckAndSave(ctx context.Context, businessID int64) (*models.ComplianceResult, *models.ComplianceRecord, error) {
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.Check(ctx, business)
	if err != nil {
		return nil, nil, err
	}

	record := &models.ComplianceRecord{
		BusinessID:      businessID,
		ComplianceScore: result.ComplianceScore,
		RiskLevel:       result.RiskLevel,
	}
	if err := s.compliance.SaveResult(ctx, record); err != nil {
		return nil, nil, err
	}

	for _, reg := range result.ApplicableRegulations {
		link := &models.BusinessRegulation{
			BusinessID:       businessID,
			RegulationID:     reg.ID,
			IsApplicable:     true,
			ComplianceStatus: constants.ComplianceStatusPending,
		}
		if err := s.compliance.UpsertBusinessRegulation(ctx, link); err != nil {
			return nil, nil, err
		}
	}

	return result, record, nil
}

// History returns the stored check outcomes for a business, newest first.
func (s *ComplianceAppService) History(ctx context.Context, businessID int64) ([]*models.ComplianceRecord, error) {
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.compliance.History(ctx, businessID)
}

// Latest returns the most recent stored check outcome for a business.
func (s *ComplianceAppService) Latest(ctx context.Context, businessID int64) (*models.ComplianceRecord, error) {
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.compliance.LatestResult(ctx, businessID)
}

// AppliedRegulations returns the regulations linked to a business by its
// saved checks.
func (s *ComplianceAppService) AppliedRegulations(ctx context.Context, businessID int64) ([]models.Regulation, error) {
	if err := s.requireBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.compliance.AppliedRegulations(ctx, businessID)
}

func (s *ComplianceAppService) requireBusiness(ctx context.Context, businessID int64) error {
	exists, err := s.businesses.Exists(ctx, businessID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("business", businessID)
	}
	return nil
}

func (s *ComplianceAppService) publishAudit(ctx context.Context, profile *models.BusinessProfile, result *models.ComplianceResult, cacheHit bool) {
	s.audit.Publish(ctx, audit.Event{
		Timestamp:       s.now(),
		RequestID:       requestIDFrom(ctx),
		BusinessID:      profile.ID,
		Industry:        profile.Industry,
		County:          profile.Location.County,
		Size:            string(profile.Size),
		ComplianceScore: result.ComplianceScore,
		RiskLevel:       result.RiskLevel,
		RegulationCount: len(result.ApplicableRegulations),
		CacheHit:        cacheHit,
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}
