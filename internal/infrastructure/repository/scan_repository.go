package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/pkg/pagination"
	"gorm.io/gorm"
)

type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository creates a new scan history repository
func NewScanRepository(db *gorm.DB) domainRepo.ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(OperatorScope(ctx))
}

func (r *scanRepository) Create(ctx context.Context, scan *entity.ScanRecord) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *scanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScanRecord, error) {
	var scan entity.ScanRecord
	err := r.scoped(ctx).First(&scan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scan, err
}

func (r *scanRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScanRecord, error) {
	var scans []entity.ScanRecord
	if len(ids) == 0 {
		return scans, nil
	}
	err := r.scoped(ctx).
		Where("id IN ?", ids).
		Order("scanned_at ASC, id ASC").
		Find(&scans).Error
	return scans, err
}

func (r *scanRepository) List(ctx context.Context, params *pagination.Params) ([]entity.ScanRecord, int64, error) {
	var scans []entity.ScanRecord
	var total int64

	query := r.scoped(ctx).Model(&entity.ScanRecord{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Normalize()
	err := query.Offset(params.Offset()).Limit(params.Limit()).
		Order("scanned_at ASC, id ASC").
		Find(&scans).Error

	return scans, total, err
}

func (r *scanRepository) ListAll(ctx context.Context) ([]entity.ScanRecord, error) {
	var scans []entity.ScanRecord
	err := r.scoped(ctx).Order("scanned_at ASC, id ASC").Find(&scans).Error
	return scans, err
}

func (r *scanRepository) Latest(ctx context.Context) (*entity.ScanRecord, error) {
	var scan entity.ScanRecord
	err := r.scoped(ctx).Order("scanned_at DESC, id DESC").First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scan, err
}

func (r *scanRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.scoped(ctx).Delete(&entity.ScanRecord{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *scanRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.scoped(ctx).Where("1 = 1").Delete(&entity.ScanRecord{})
	return res.RowsAffected, res.Error
}
