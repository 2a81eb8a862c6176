// Package sqlite implements the domain repositories on a store-local SQLite
// file with sqlx, for deployments that run next to the label printer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

const scanColumns = `id, operator_id, code, discount, outlet, scanned_by, payload, scanned_at`

type scanRepository struct {
	db *sqlx.DB
}

// NewScanRepository creates a scan history repository backed by SQLite
func NewScanRepository(db *sqlx.DB) domainRepo.ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, scan *entity.ScanRecord) error {
	if scan.ID == uuid.Nil {
		scan.ID = uuid.New()
	}
	scan.ScannedAt = scan.ScannedAt.UTC()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO scans (`+scanColumns+`)
		VALUES (:id, :operator_id, :code, :discount, :outlet, :scanned_by, :payload, :scanned_at)`, scan)
	return err
}

func (r *scanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScanRecord, error) {
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return nil, nil
	}

	var scan entity.ScanRecord
	err := r.db.GetContext(ctx, &scan,
		`SELECT `+scanColumns+` FROM scans WHERE id = ? AND operator_id = ?`, id, operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScanRecord, error) {
	scans := []entity.ScanRecord{}
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok || len(ids) == 0 {
		return scans, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+scanColumns+` FROM scans WHERE operator_id = ? AND id IN (?) ORDER BY scanned_at ASC, rowid ASC`,
		operatorID, ids)
	if err != nil {
		return nil, err
	}
	err = r.db.SelectContext(ctx, &scans, r.db.Rebind(query), args...)
	return scans, err
}

func (r *scanRepository) List(ctx context.Context, params *pagination.Params) ([]entity.ScanRecord, int64, error) {
	scans := []entity.ScanRecord{}
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return scans, 0, nil
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM scans WHERE operator_id = ?`, operatorID); err != nil {
		return nil, 0, err
	}

	params.Normalize()
	err := r.db.SelectContext(ctx, &scans,
		`SELECT `+scanColumns+` FROM scans WHERE operator_id = ?
		ORDER BY scanned_at ASC, rowid ASC LIMIT ? OFFSET ?`,
		operatorID, params.Limit(), params.Offset())
	return scans, total, err
}

func (r *scanRepository) ListAll(ctx context.Context) ([]entity.ScanRecord, error) {
	scans := []entity.ScanRecord{}
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return scans, nil
	}

	err := r.db.SelectContext(ctx, &scans,
		`SELECT `+scanColumns+` FROM scans WHERE operator_id = ? ORDER BY scanned_at ASC, rowid ASC`, operatorID)
	return scans, err
}

func (r *scanRepository) Latest(ctx context.Context) (*entity.ScanRecord, error) {
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return nil, nil
	}

	var scan entity.ScanRecord
	err := r.db.GetContext(ctx, &scan,
		`SELECT `+scanColumns+` FROM scans WHERE operator_id = ? ORDER BY scanned_at DESC, rowid DESC LIMIT 1`, operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM scans WHERE id = ? AND operator_id = ?`, id, operatorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *scanRepository) DeleteAll(ctx context.Context) (int64, error) {
	operatorID, ok := domainRepo.GetOperatorID(ctx)
	if !ok {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM scans WHERE operator_id = ?`, operatorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
