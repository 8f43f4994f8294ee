package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/pkg/constants"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// RegulationRepoImpl implements repository.RegulationRepository on gorm.
// The corpus is read-only at runtime; writes happen through the seeder.
type RegulationRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewRegulationRepository creates the gorm-backed regulation repository.
func NewRegulationRepository(db *gorm.DB, log logger.Logger) repository.RegulationRepository {
	return &RegulationRepoImpl{db: db, logger: log.WithComponent("regulation_repo")}
}

func (r *RegulationRepoImpl) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Penalties").
		Preload("Requirements").
		Preload("Exemptions").
		Preload("Applicability")
}

func (r *RegulationRepoImpl) FindByID(ctx context.Context, id int64) (*models.Regulation, error) {
	var record RegulationRecord
	err := r.preloaded(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("regulation", id)
		}
		r.logger.Error(ctx, "failed to load regulation", err, logger.Int64("regulation_id", id))
		return nil, apperrors.NewStorage("find regulation", err)
	}

	reg := regulationFromRecord(&record)
	return &reg, nil
}

// sortColumns whitelists the sortable listing columns.
var sortColumns = map[string]string{
	"title":               "title",
	"category":            "category",
	"jurisdiction":        "jurisdiction",
	"effective_date":      "effective_date",
	"compliance_deadline": "compliance_deadline",
}

func (r *RegulationRepoImpl) FindAll(ctx context.Context, filter repository.RegulationFilter) ([]models.Regulation, int64, error) {
	query := r.db.WithContext(ctx).Model(&RegulationRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", filter.Jurisdiction)
	}
	if filter.Industry != "" {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&ApplicabilityRecord{}).
				Select("regulation_id").
				Where("LOWER(applies_to) LIKE ?", "%"+strings.ToLower(filter.Industry)+"%"),
		)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewStorage("count regulations", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "title"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	var records []RegulationRecord
	err := query.
		Preload("Penalties").
		Preload("Requirements").
		Preload("Exemptions").
		Preload("Applicability").
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list regulations", err)
		return nil, 0, apperrors.NewStorage("list regulations", err)
	}

	regulations := make([]models.Regulation, len(records))
	for i := range records {
		regulations[i] = regulationFromRecord(&records[i])
	}
	return regulations, total, nil
}

func (r *RegulationRepoImpl) FindByJurisdictions(ctx context.Context, jurisdictions []constants.Jurisdiction) ([]models.Regulation, error) {
	labels := make([]string, len(jurisdictions))
	for i, j := range jurisdictions {
		labels[i] = string(j)
	}

	var records []RegulationRecord
	err := r.preloaded(ctx).
		Where("jurisdiction IN ?", labels).
		Order("id").
		Find(&records).Error
	if err != nil {
		r.logger.Error(ctx, "failed to load regulation corpus", err)
		return nil, apperrors.NewStorage("load regulation corpus", err)
	}

	regulations := make([]models.Regulation, len(records))
	for i := range records {
		regulations[i] = regulationFromRecord(&records[i])
	}
	return regulations, nil
}

func (r *RegulationRepoImpl) Categories(ctx context.Context) ([]repository.GroupCount, error) {
	var rows []repository.GroupCount
	err := r.db.WithContext(ctx).Model(&RegulationRecord{}).
		Select("category AS label, COUNT(*) AS count").
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewStorage("regulation categories", err)
	}
	return rows, nil
}

func (r *RegulationRepoImpl) Jurisdictions(ctx context.Context) ([]repository.GroupCount, error) {
	var rows []repository.GroupCount
	err := r.db.WithContext(ctx).Model(&RegulationRecord{}).
		Select("jurisdiction AS label, COUNT(*) AS count").
		Group("jurisdiction").
		Order("jurisdiction").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewStorage("regulation jurisdictions", err)
	}
	return rows, nil
}

func (r *RegulationRepoImpl) Stats(ctx context.Context) (*repository.RegulationStats, error) {
	stats := &repository.RegulationStats{}
	model := func() *gorm.DB { return r.db.WithContext(ctx).Model(&RegulationRecord{}) }

	if err := model().Count(&stats.TotalRegulations).Error; err != nil {
		return nil, apperrors.NewStorage("regulation stats", err)
	}
	if err := model().Distinct("category").Count(&stats.TotalCategories).Error; err != nil {
		return nil, apperrors.NewStorage("regulation stats", err)
	}
	if err := model().Distinct("jurisdiction").Count(&stats.TotalJurisdictions).Error; err != nil {
		return nil, apperrors.NewStorage("regulation stats", err)
	}
	if err := model().Distinct("authority").Count(&stats.TotalAuthorities).Error; err != nil {
		return nil, apperrors.NewStorage("regulation stats", err)
	}
	if err := model().Where("compliance_deadline IS NOT NULL").Count(&stats.RegulationsWithDeadlines).Error; err != nil {
		return nil, apperrors.NewStorage("regulation stats", err)
	}

	return stats, nil
}
