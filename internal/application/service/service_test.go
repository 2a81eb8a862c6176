package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/discount-label-api/internal/config"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/catalog"
	"github.com/sangkips/discount-label-api/internal/infrastructure/database"
	"github.com/sangkips/discount-label-api/internal/infrastructure/sqlite"
	"github.com/sangkips/discount-label-api/pkg/printer"
)

type fixture struct {
	ctx      context.Context
	operator uuid.UUID
	scans    domainRepo.ScanRepository
	settings *SettingsService
	lookup   *fakeLookup
	conn     *printer.Connection
	device   *recordingPrinter
	scan     *ScanService
	labels   *LabelService
	printer  *PrinterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		operator: uuid.New(),
		scans:    sqlite.NewScanRepository(db),
		lookup:   &fakeLookup{},
		device:   &recordingPrinter{connected: true},
	}
	f.ctx = domainRepo.WithOperator(context.Background(), f.operator)
	f.settings = NewSettingsService(sqlite.NewSettingsRepository(db), config.DiscountConfig{DefaultOutlet: "2018", DefaultPercent: "0"})
	f.conn = printer.NewConnection(f.device, printer.Config{Type: printer.TypeNetwork, Address: "10.0.0.9:9100"})
	f.scan = NewScanService(f.scans, f.settings, f.lookup)
	f.labels = NewLabelService(f.scans)
	f.printer = NewPrinterService(f.conn, f.scans, f.settings, func(cfg printer.Config) (printer.Printer, error) {
		if cfg.Type == "broken" {
			return nil, errors.New("printer: unknown printer type \"broken\"")
		}
		return f.device, nil
	})
	return f
}

// seed stores scans directly, one second apart, oldest first.
func (f *fixture) seed(t *testing.T, codes ...string) []*entity.ScanRecord {
	t.Helper()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*entity.ScanRecord, 0, len(codes))
	for i, code := range codes {
		rec, err := entity.NewScanRecord(f.operator, code, "10", "2018", map[string]any{
			"name_product":      "P-" + code,
			"code_barcode_lama": code,
			"harga_awal":        10000,
			"harga_discount":    9000,
		}, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, f.scans.Create(f.ctx, rec))
		out = append(out, rec)
	}
	return out
}

type fakeLookup struct {
	mu     sync.Mutex
	calls  []catalog.ScanRequest
	result *catalog.ScanResult
	err    error
}

func (l *fakeLookup) ScanProduct(ctx context.Context, in catalog.ScanRequest) (*catalog.ScanResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, in)
	if l.err != nil {
		return nil, l.err
	}
	return l.result, nil
}

type recordingPrinter struct {
	mu        sync.Mutex
	jobs      [][]byte
	connected bool
	failAt    int // 1-based job number that fails; 0 never fails
	calls     int
	closed    int
}

var errPaper = errors.New("paper out")

func (p *recordingPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failAt != 0 && p.calls == p.failAt {
		return errPaper
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *recordingPrinter) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}
