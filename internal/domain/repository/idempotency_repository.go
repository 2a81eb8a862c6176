package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and operator ID
	GetByKey(ctx context.Context, key string, operatorID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve inserts ikey as a pending key. It reports false when an
	// unexpired key with the same value already exists for the operator;
	// an expired one is replaced.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete stores the response of a reserved key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete releases a key so the request can be retried
	Delete(ctx context.Context, key string, operatorID uuid.UUID) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
