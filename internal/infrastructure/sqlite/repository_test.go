package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/database"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedScans(t *testing.T, ctx context.Context, repo domainRepo.ScanRepository, operatorID uuid.UUID, codes ...string) []*entity.ScanRecord {
	t.Helper()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*entity.ScanRecord, 0, len(codes))
	for i, code := range codes {
		rec, err := entity.NewScanRecord(operatorID, code, "10", "SZ01",
			map[string]any{"name_product": "P-" + code, "harga_awal": 10000}, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, rec))
		out = append(out, rec)
	}
	return out
}

func TestScanRepository_CreateAndGet(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	operatorID := uuid.New()
	ctx := domainRepo.WithOperator(context.Background(), operatorID)

	recs := seedScans(t, ctx, repo, operatorID, "8991")

	got, err := repo.GetByID(ctx, recs[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "8991", got.Code)
	assert.Equal(t, "10", got.Discount)
	assert.Equal(t, "SZ01", got.Outlet)
	assert.True(t, recs[0].ScannedAt.Equal(got.ScannedAt))

	product, err := got.Product()
	require.NoError(t, err)
	assert.Equal(t, "P-8991", product["name_product"])

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestScanRepository_OrderAndPaging(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	operatorID := uuid.New()
	ctx := domainRepo.WithOperator(context.Background(), operatorID)

	recs := seedScans(t, ctx, repo, operatorID, "1", "2", "3", "4", "5")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, code := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, code, all[i].Code)
	}

	page, total, err := repo.List(ctx, &pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "3", page[0].Code)
	assert.Equal(t, "4", page[1].Code)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "5", latest.Code)

	some, err := repo.GetByIDs(ctx, []uuid.UUID{recs[3].ID, recs[0].ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "1", some[0].Code)
	assert.Equal(t, "4", some[1].Code)
}

func TestScanRepository_OperatorIsolation(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	alice, bob := uuid.New(), uuid.New()
	aliceCtx := domainRepo.WithOperator(context.Background(), alice)
	bobCtx := domainRepo.WithOperator(context.Background(), bob)

	recs := seedScans(t, aliceCtx, repo, alice, "1", "2")

	got, err := repo.GetByID(bobCtx, recs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repo.ListAll(bobCtx)
	require.NoError(t, err)
	assert.Empty(t, all)

	deleted, err := repo.Delete(bobCtx, recs[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// no operator in context sees nothing
	all, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScanRepository_Delete(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	operatorID := uuid.New()
	ctx := domainRepo.WithOperator(context.Background(), operatorID)

	recs := seedScans(t, ctx, repo, operatorID, "1", "2", "3")

	deleted, err := repo.Delete(ctx, recs[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSettingsRepository(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx, entity.SettingActiveDiscount)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, entity.SettingActiveDiscount, `"10"`))
	require.NoError(t, repo.Set(ctx, entity.SettingActiveDiscount, `"25"`))
	require.NoError(t, repo.Set(ctx, entity.SettingDiscountConfigured, `true`))

	got, err = repo.Get(ctx, entity.SettingActiveDiscount)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `"25"`, got.Value)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.SettingActiveDiscount, all[0].Key)
	assert.Equal(t, entity.SettingDiscountConfigured, all[1].Key)
}

func TestIdempotencyRepository(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()
	operatorID := uuid.New()

	newKey := func(key string, ttl time.Duration) *entity.IdempotencyKey {
		return &entity.IdempotencyKey{
			Key:         key,
			OperatorID:  operatorID,
			Endpoint:    "POST /api/v1/printer/print",
			RequestHash: "h-" + key,
			ExpiresAt:   time.Now().Add(ttl),
		}
	}

	ok, err := repo.Reserve(ctx, newKey("print-1", time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	pending, err := repo.GetByKey(ctx, "print-1", operatorID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.IsPending())

	// a second reservation while the first is live is refused
	ok, err = repo.Reserve(ctx, newKey("print-1", time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	done := newKey("print-1", time.Hour)
	done.ResponseCode = 200
	done.ResponseBody = `{"success":true}`
	require.NoError(t, repo.Complete(ctx, done))

	got, err := repo.GetByKey(ctx, "print-1", operatorID)
	require.NoError(t, err)
	assert.False(t, got.IsPending())
	assert.Equal(t, 200, got.ResponseCode)
	assert.Equal(t, `{"success":true}`, got.ResponseBody)
	assert.False(t, got.IsExpired())

	other, err := repo.GetByKey(ctx, "print-1", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, other)

	// an expired key can be reserved again
	ok, err = repo.Reserve(ctx, newKey("old", -time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Reserve(ctx, newKey("old", time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "old", operatorID))
	gone, err := repo.GetByKey(ctx, "old", operatorID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	ok, err = repo.Reserve(ctx, newKey("stale", -time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.DeleteExpired(ctx))
	gone, err = repo.GetByKey(ctx, "stale", operatorID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.GetByKey(ctx, "print-1", operatorID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
