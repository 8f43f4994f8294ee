package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// topAggregateLimit caps the industry and location leaderboards in the stats
// response.
const topAggregateLimit = 10

// BusinessOverview bundles the aggregate business statistics.
type BusinessOverview struct {
	Stats         *repository.BusinessStats  `json:"stats"`
	TopIndustries []repository.GroupCount    `json:"topIndustries"`
	TopLocations  []repository.LocationCount `json:"topLocations"`
}

// BusinessAppService manages stored business profiles.
type BusinessAppService struct {
	businesses repository.BusinessRepository
	logger     logger.Logger
}

// NewBusinessAppService constructs the business application service.
func NewBusinessAppService(businesses repository.BusinessRepository, log logger.Logger) *BusinessAppService {
	return &BusinessAppService{
		businesses: businesses,
		logger:     log.WithComponent("business_service"),
	}
}

// Create validates and stores a new business profile.
func (s *BusinessAppService) Create(ctx context.Context, profile *models.BusinessProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return s.businesses.Create(ctx, profile)
}

// Get loads a stored business by ID.
func (s *BusinessAppService) Get(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	return s.businesses.FindByID(ctx, id)
}

// Update validates and replaces a stored business profile.
func (s *BusinessAppService) Update(ctx context.Context, profile *models.BusinessProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return s.businesses.Update(ctx, profile)
}

// Delete removes a stored business.
func (s *BusinessAppService) Delete(ctx context.Context, id int64) error {
	return s.businesses.Delete(ctx, id)
}

// List returns a filtered page of businesses with the total count.
func (s *BusinessAppService) List(ctx context.Context, filter repository.BusinessFilter) ([]*models.BusinessProfile, int64, error) {
	return s.businesses.FindAll(ctx, filter)
}

// Overview gathers the aggregate statistics. The three queries are
// independent and run concurrently.
func (s *BusinessAppService) Overview(ctx context.Context) (*BusinessOverview, error) {
	overview := &BusinessOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.businesses.Stats(gctx)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		industries, err := s.businesses.TopIndustries(gctx, topAggregateLimit)
		if err != nil {
			return err
		}
		overview.TopIndustries = industries
		return nil
	})
	g.Go(func() error {
		locations, err := s.businesses.TopLocations(gctx, topAggregateLimit)
		if err != nil {
			return err
		}
		overview.TopLocations = locations
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "failed to gather business overview", err)
		return nil, err
	}
	return overview, nil
}
