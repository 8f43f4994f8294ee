package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/internal/infrastructure/cache"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// RegulationOverview bundles the regulation corpus statistics.
type RegulationOverview struct {
	Stats         *repository.RegulationStats `json:"stats"`
	Categories    []repository.GroupCount     `json:"categories"`
	Jurisdictions []repository.GroupCount     `json:"jurisdictions"`
}

// RegulationAppService serves the read-only regulation corpus.
type RegulationAppService struct {
	regulations repository.RegulationRepository
	cache       *cache.Manager
	logger      logger.Logger
}

// NewRegulationAppService constructs the regulation application service.
func NewRegulationAppService(regulations repository.RegulationRepository, cacheManager *cache.Manager, log logger.Logger) *RegulationAppService {
	return &RegulationAppService{
		regulations: regulations,
		cache:       cacheManager,
		logger:      log.WithComponent("regulation_service"),
	}
}

// List returns a filtered page of regulations with the total count.
func (s *RegulationAppService) List(ctx context.Context, filter repository.RegulationFilter) ([]models.Regulation, int64, error) {
	return s.regulations.FindAll(ctx, filter)
}

// Get loads one regulation, serving repeat reads from cache.
func (s *RegulationAppService) Get(ctx context.Context, id int64) (*models.Regulation, error) {
	if cached, ok := s.cache.GetRegulation(ctx, id); ok {
		return cached, nil
	}

	reg, err := s.regulations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetRegulation(ctx, reg)
	return reg, nil
}

// Categories returns the category breakdown of the corpus.
func (s *RegulationAppService) Categories(ctx context.Context) ([]repository.GroupCount, error) {
	return s.regulations.Categories(ctx)
}

// Jurisdictions returns the jurisdiction breakdown of the corpus.
func (s *RegulationAppService) Jurisdictions(ctx context.Context) ([]repository.GroupCount, error) {
	return s.regulations.Jurisdictions(ctx)
}

// Overview gathers the corpus statistics concurrently.
func (s *RegulationAppService) Overview(ctx context.Context) (*RegulationOverview, error) {
	overview := &RegulationOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.regulations.Stats(gctx)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		categories, err := s.regulations.Categories(gctx)
		if err != nil {
			return err
		}
		overview.Categories = categories
		return nil
	})
	g.Go(func() error {
		jurisdictions, err := s.regulations.Jurisdictions(gctx)
		if err != nil {
			return err
		}
		overview.Jurisdictions = jurisdictions
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "failed to gather regulation overview", err)
		return nil, err
	}
	return overview, nil
}
