package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

// ScanRepository stores the scan history of the operator found in the
// context. Lists are ordered oldest first, the order labels are printed in.
type ScanRepository interface {
	Create(ctx context.Context, scan *entity.ScanRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ScanRecord, error)
	// GetByIDs returns the matching scans in scan order. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScanRecord, error)
	List(ctx context.Context, params *pagination.Params) ([]entity.ScanRecord, int64, error)
	ListAll(ctx context.Context) ([]entity.ScanRecord, error)
	// Latest returns the most recent scan, or nil when the history is empty.
	Latest(ctx context.Context) (*entity.ScanRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}
