package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bizcomply/bizcomply/internal/domain/models"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	"github.com/bizcomply/bizcomply/pkg/constants"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// ComplianceRepoImpl implements repository.ComplianceRepository on gorm.
type ComplianceRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewComplianceRepository creates the gorm-backed compliance repository.
func NewComplianceRepository(db *gorm.DB, log logger.Logger) repository.ComplianceRepository {
	return &ComplianceRepoImpl{db: db, logger: log.WithComponent("compliance_repo")}
}

func (r *ComplianceRepoImpl) SaveResult(ctx context.Context, record *models.ComplianceRecord) error {
	record.CreatedAt = time.Now()

	row := &ComplianceCheckRecord{
		BusinessID:      record.BusinessID,
		ComplianceScore: record.ComplianceScore,
		RiskLevel:       string(record.RiskLevel),
		CreatedAt:       record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.logger.Error(ctx, "failed to save compliance result", err,
			logger.Int64("business_id", record.BusinessID))
		return apperrors.NewStorage("save compliance result", err)
	}
	record.ID = row.ID

	r.logger.Info(ctx, "compliance result saved",
		logger.Int64("business_id", record.BusinessID),
		logger.Int("score", record.ComplianceScore),
		logger.String("risk_level", string(record.RiskLevel)),
	)
	return nil
}

// UpsertBusinessRegulation inserts the applicability link or refreshes its
// status and timestamp when the (business, regulation) pair already exists.
func (r *ComplianceRepoImpl) UpsertBusinessRegulation(ctx context.Context, link *models.BusinessRegulation) error {
	now := time.Now()
	row := &BusinessRegulationRecord{
		BusinessID:       link.BusinessID,
		RegulationID:     link.RegulationID,
		IsApplicable:     link.IsApplicable,
		ComplianceStatus: string(link.ComplianceStatus),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_id"}, {Name: "regulation_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_applicable":     row.IsApplicable,
				"compliance_status": row.ComplianceStatus,
				"updated_at":        now,
			}),
		}).
		Create(row).Error
	if err != nil {
		r.logger.Error(ctx, "failed to upsert business regulation link", err,
			logger.Int64("business_id", link.BusinessID),
			logger.Int64("regulation_id", link.RegulationID),
		)
		return apperrors.NewStorage("upsert business regulation", err)
	}
	return nil
}

func (r *ComplianceRepoImpl) LatestResult(ctx context.Context, businessID int64) (*models.ComplianceRecord, error) {
	var row ComplianceCheckRecord
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("compliance result", businessID)
		}
		return nil, apperrors.NewStorage("load compliance result", err)
	}
	return complianceFromRow(&row), nil
}

func (r *ComplianceRepoImpl) History(ctx context.Context, businessID int64) ([]*models.ComplianceRecord, error) {
	var rows []ComplianceCheckRecord
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Error(ctx, "failed to load compliance history", err,
			logger.Int64("business_id", businessID))
		return nil, apperrors.NewStorage("load compliance history", err)
	}

	records := make([]*models.ComplianceRecord, len(rows))
	for i := range rows {
		records[i] = complianceFromRow(&rows[i])
	}
	return records, nil
}

func (r *ComplianceRepoImpl) AppliedRegulations(ctx context.Context, businessID int64) ([]models.Regulation, error) {
	var records []RegulationRecord
	err := r.db.WithContext(ctx).
		Preload("Penalties").
		Preload("Requirements").
		Preload("Exemptions").
		Preload("Applicability").
		Where(
			"id IN (?)",
			r.db.Model(&BusinessRegulationRecord{}).
				Select("regulation_id").
				Where("business_id = ? AND is_applicable = ?", businessID, true),
		).
		Order("category, title").
		Find(&records).Error
	if err != nil {
		r.logger.Error(ctx, "failed to load applied regulations", err,
			logger.Int64("business_id", businessID))
		return nil, apperrors.NewStorage("load applied regulations", err)
	}

	regulations := make([]models.Regulation, len(records))
	for i := range records {
		regulations[i] = regulationFromRecord(&records[i])
	}
	return regulations, nil
}

func complianceFromRow(row *ComplianceCheckRecord) *models.ComplianceRecord {
	return &models.ComplianceRecord{
		ID:              row.ID,
		BusinessID:      row.BusinessID,
		ComplianceScore: row.ComplianceScore,
		RiskLevel:       constants.RiskLevel(row.RiskLevel),
		CreatedAt:       row.CreatedAt,
	}
}
