package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
)

type idempotencyRepository struct {
	db *sqlx.DB
}

// NewIdempotencyRepository creates an idempotency repository backed by SQLite
func NewIdempotencyRepository(db *sqlx.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, operatorID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.GetContext(ctx, &ikey, `
		SELECT id, key, operator_id, endpoint, request_hash, response_code, response_body, created_at, expires_at
		FROM idempotency_keys WHERE key = ? AND operator_id = ?`, key, operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	ikey.CreatedAt = ikey.CreatedAt.UTC()
	ikey.ExpiresAt = ikey.ExpiresAt.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM idempotency_keys WHERE key = ? AND operator_id = ? AND expires_at < ?`,
		ikey.Key, ikey.OperatorID, time.Now().UTC()); err != nil {
		return false, err
	}

	res, err := tx.NamedExecContext(ctx, `
		INSERT INTO idempotency_keys
			(id, key, operator_id, endpoint, request_hash, response_code, response_body, created_at, expires_at)
		VALUES
			(:id, :key, :operator_id, :endpoint, :request_hash, :response_code, :response_body, :created_at, :expires_at)
		ON CONFLICT(key, operator_id) DO NOTHING`, ikey)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, tx.Commit()
}

func (r *idempotencyRepository) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE idempotency_keys SET response_code = ?, response_body = ?
		WHERE key = ? AND operator_id = ?`,
		ikey.ResponseCode, ikey.ResponseBody, ikey.Key, ikey.OperatorID)
	return err
}

func (r *idempotencyRepository) Delete(ctx context.Context, key string, operatorID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE key = ? AND operator_id = ?`, key, operatorID)
	return err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE expires_at < ?`, time.Now().UTC())
	return err
}
