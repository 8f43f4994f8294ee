package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/pkg/constants"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// BusinessRepoImpl implements repository.BusinessRepository on gorm.
type BusinessRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewBusinessRepository creates the gorm-backed business repository.
func NewBusinessRepository(db *gorm.DB, log logger.Logger) repository.BusinessRepository {
	return &BusinessRepoImpl{db: db, logger: log.WithComponent("business_repo")}
}

func (r *BusinessRepoImpl) Create(ctx context.Context, business *models.BusinessProfile) error {
	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	record := businessToRecord(business)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.logger.Error(ctx, "failed to create business", err, logger.String("name", business.Name))
		return apperrors.NewStorage("create business", err)
	}
	business.ID = record.ID

	r.logger.Info(ctx, "business created",
		logger.Int64("business_id", record.ID),
		logger.String("industry", business.Industry),
	)
	return nil
}

func (r *BusinessRepoImpl) Update(ctx context.Context, business *models.BusinessProfile) error {
	business.UpdatedAt = time.Now()

	record := businessToRecord(business)
	result := r.db.WithContext(ctx).
		Model(&BusinessRecord{}).
		Where("id = ?", business.ID).
		Updates(record)
	if result.Error != nil {
		r.logger.Error(ctx, "failed to update business", result.Error, logger.Int64("business_id", business.ID))
		return apperrors.NewStorage("update business", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("business", business.ID)
	}
	return nil
}

func (r *BusinessRepoImpl) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BusinessRecord{})
	if result.Error != nil {
		r.logger.Error(ctx, "failed to delete business", result.Error, logger.Int64("business_id", id))
		return apperrors.NewStorage("delete business", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("business", id)
	}

	r.logger.Info(ctx, "business deleted", logger.Int64("business_id", id))
	return nil
}

func (r *BusinessRepoImpl) FindByID(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	var record BusinessRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("business", id)
		}
		r.logger.Error(ctx, "failed to load business", err, logger.Int64("business_id", id))
		return nil, apperrors.NewStorage("find business", err)
	}
	return businessFromRecord(&record), nil
}

func (r *BusinessRepoImpl) FindAll(ctx context.Context, filter repository.BusinessFilter) ([]*models.BusinessProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&BusinessRecord{})
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if filter.County != "" {
		query = query.Where("county = ?", filter.County)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewStorage("count businesses", err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	var records []BusinessRecord
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list businesses", err)
		return nil, 0, apperrors.NewStorage("list businesses", err)
	}

	businesses := make([]*models.BusinessProfile, len(records))
	for i := range records {
		businesses[i] = businessFromRecord(&records[i])
	}
	return businesses, total, nil
}

func (r *BusinessRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BusinessRecord{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperrors.NewStorage("check business", err)
	}
	return count > 0, nil
}

func (r *BusinessRepoImpl) Stats(ctx context.Context) (*repository.BusinessStats, error) {
	stats := &repository.BusinessStats{}
	model := func() *gorm.DB { return r.db.WithContext(ctx).Model(&BusinessRecord{}) }

	if err := model().Count(&stats.TotalBusinesses).Error; err != nil {
		return nil, apperrors.NewStorage("business stats", err)
	}
	if err := model().Distinct("industry").Count(&stats.TotalIndustries).Error; err != nil {
		return nil, apperrors.NewStorage("business stats", err)
	}
	if err := model().Distinct("county").Count(&stats.TotalCounties).Error; err != nil {
		return nil, apperrors.NewStorage("business stats", err)
	}
	if err := model().Distinct("city").Count(&stats.TotalCities).Error; err != nil {
		return nil, apperrors.NewStorage("business stats", err)
	}

	if stats.TotalBusinesses > 0 {
		row := r.db.WithContext(ctx).Model(&BusinessRecord{}).
			Select("AVG(employee_count) AS avg_employees, AVG(annual_revenue) AS avg_revenue").
			Row()
		if err := row.Scan(&stats.AvgEmployees, &stats.AvgRevenue); err != nil {
			return nil, apperrors.NewStorage("business stats", err)
		}
	}

	sizeCounts := map[constants.BusinessSize]*int64{
		constants.SizeSmall:  &stats.SmallBusinesses,
		constants.SizeMedium: &stats.MediumBusinesses,
		constants.SizeLarge:  &stats.LargeBusinesses,
	}
	for size, target := range sizeCounts {
		err := r.db.WithContext(ctx).Model(&BusinessRecord{}).
			Where("size = ?", string(size)).
			Count(target).Error
		if err != nil {
			return nil, apperrors.NewStorage("business stats", err)
		}
	}

	return stats, nil
}

func (r *BusinessRepoImpl) TopIndustries(ctx context.Context, limit int) ([]repository.GroupCount, error) {
	var rows []repository.GroupCount
	err := r.db.WithContext(ctx).Model(&BusinessRecord{}).
		Select("industry AS label, COUNT(*) AS count").
		Group("industry").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewStorage("top industries", err)
	}
	return rows, nil
}

func (r *BusinessRepoImpl) TopLocations(ctx context.Context, limit int) ([]repository.LocationCount, error) {
	var rows []repository.LocationCount
	err := r.db.WithContext(ctx).Model(&BusinessRecord{}).
		Select("county, city, COUNT(*) AS count").
		Group("county").Group("city").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewStorage("top locations", err)
	}
	return rows, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
