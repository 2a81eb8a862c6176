package repository

import (
	"context"

	"github.com/sangkips/discount-label-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the key/value settings store
type SettingsRepository interface {
	// Get returns nil when the key has never been set.
	Get(ctx context.Context, key string) (*entity.Setting, error)
	GetAll(ctx context.Context) ([]entity.Setting, error)
	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}
