package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/database"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func scanAt(t *testing.T, operatorID uuid.UUID, id, code string, at time.Time) *entity.ScanRecord {
	t.Helper()
	rec, err := entity.NewScanRecord(operatorID, code, "10", "SZ01", map[string]any{"name_product": "P-" + code}, at)
	require.NoError(t, err)
	if id != "" {
		rec.ID = uuid.MustParse(id)
	}
	return rec
}

func codes(scans []entity.ScanRecord) []string {
	out := make([]string, len(scans))
	for i, s := range scans {
		out[i] = s.Code
	}
	return out
}

func TestScanRepository_Order(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	operatorID := uuid.New()
	ctx := domainRepo.WithOperator(context.Background(), operatorID)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	same := base.Add(time.Minute)
	recs := []*entity.ScanRecord{
		scanAt(t, operatorID, "", "11", base),
		// equal timestamps; the lower id comes first whatever the insert order
		scanAt(t, operatorID, "00000000-0000-0000-0000-0000000000b2", "33", same),
		scanAt(t, operatorID, "00000000-0000-0000-0000-0000000000a1", "22", same),
		scanAt(t, operatorID, "", "44", base.Add(2*time.Minute)),
	}
	for _, rec := range recs {
		require.NoError(t, repo.Create(ctx, rec))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"11", "22", "33", "44"}, codes(all))

	for i := 0; i < 3; i++ {
		again, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, codes(all), codes(again))
	}

	picked, err := repo.GetByIDs(ctx, []uuid.UUID{recs[3].ID, recs[1].ID, recs[2].ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"22", "33", "44"}, codes(picked))

	page := &pagination.Params{Page: 2, PerPage: 2}
	items, total, err := repo.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"33", "44"}, codes(items))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "44", latest.Code)
}

func TestScanRepository_OperatorScope(t *testing.T) {
	repo := NewScanRepository(newTestDB(t))
	mine, theirs := uuid.New(), uuid.New()
	ctx := domainRepo.WithOperator(context.Background(), mine)
	otherCtx := domainRepo.WithOperator(context.Background(), theirs)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rec := scanAt(t, mine, "", "11", base)
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Create(otherCtx, scanAt(t, theirs, "", "99", base)))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "11", got.Code)

	hidden, err := repo.GetByID(otherCtx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	none, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, none)

	deleted, err := repo.Delete(otherCtx, rec.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	n, err := repo.DeleteAll(otherCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestIdempotencyRepository_Reserve(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()
	operatorID := uuid.New()

	newKey := func(ttl time.Duration) *entity.IdempotencyKey {
		return &entity.IdempotencyKey{
			Key:         "run-1",
			OperatorID:  operatorID,
			Endpoint:    "POST /api/v1/printer/print",
			RequestHash: "abc",
			ExpiresAt:   time.Now().Add(ttl),
		}
	}

	ok, err := repo.Reserve(ctx, newKey(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(ctx, newKey(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	done := newKey(time.Hour)
	done.ResponseCode = 207
	done.ResponseBody = `{"partial":true}`
	require.NoError(t, repo.Complete(ctx, done))

	got, err := repo.GetByKey(ctx, "run-1", operatorID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsPending())
	assert.Equal(t, 207, got.ResponseCode)

	require.NoError(t, repo.Delete(ctx, "run-1", operatorID))
	gone, err := repo.GetByKey(ctx, "run-1", operatorID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// an expired reservation does not block the key
	ok, err = repo.Reserve(ctx, newKey(-time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Reserve(ctx, newKey(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, entity.SettingActiveDiscount, `"10"`))
	require.NoError(t, repo.Set(ctx, entity.SettingActiveDiscount, `"25"`))
	require.NoError(t, repo.Set(ctx, entity.SettingDiscountConfigured, `true`))

	got, err := repo.Get(ctx, entity.SettingActiveDiscount)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `"25"`, got.Value)

	missing, err := repo.Get(ctx, entity.SettingOutlet)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.SettingActiveDiscount, all[0].Key)
}
