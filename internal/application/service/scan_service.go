package service

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	"github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/catalog"
	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

// ProductLookup finds the product behind a scanned code
type ProductLookup interface {
	ScanProduct(ctx context.Context, in catalog.ScanRequest) (*catalog.ScanResult, error)
}

// ScanService handles product scans and the scan history
type ScanService struct {
	scanRepo repository.ScanRepository
	settings *SettingsService
	lookup   ProductLookup
	now      func() time.Time
}

// NewScanService creates a new scan service
func NewScanService(scanRepo repository.ScanRepository, settings *SettingsService, lookup ProductLookup) *ScanService {
	return &ScanService{
		scanRepo: scanRepo,
		settings: settings,
		lookup:   lookup,
		now:      time.Now,
	}
}

// ScanInput represents a scanned or typed product code. Empty Discount and
// Outlet use the station settings; OperatorOutlet comes from the token.
type ScanInput struct {
	Code           string
	Discount       string
	Outlet         string
	OperatorName   string
	OperatorOutlet string
}

// ScanView is a stored scan together with its label preview
type ScanView struct {
	*entity.ScanRecord
	Product map[string]any `json:"product"`
	Label   *LabelPreview  `json:"label"`
}

// Scan looks the code up in the catalog, records it as the latest scan
// and returns its label preview.
func (s *ScanService) Scan(ctx context.Context, input *ScanInput) (*ScanView, error) {
	operatorID, ok := repository.GetOperatorID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "code", Message: "Kode barang wajib diisi"},
		})
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	discount := firstNonEmpty(input.Discount, settings.ActiveDiscount, "0")
	outlet := firstNonEmpty(input.Outlet, settings.Outlet, input.OperatorOutlet)

	res, err := s.lookup.ScanProduct(ctx, catalog.ScanRequest{Code: code, Outlet: outlet, Discount: discount})
	if err != nil {
		log.Printf("Catalog lookup failed (code %s): %v", code, err)
		return nil, apperror.ErrCatalogUnavailable
	}
	if !res.OK {
		if res.Status >= http.StatusInternalServerError {
			return nil, apperror.NewUpstreamError(res.ErrorMessage)
		}
		return nil, apperror.NewAppError(http.StatusUnprocessableEntity, res.ErrorMessage)
	}
	if res.Product == nil {
		return nil, apperror.NewNotFoundError("Produk")
	}

	rec, err := entity.NewScanRecord(operatorID, code, discount, outlet, res.Product, s.now())
	if err != nil {
		return nil, err
	}
	rec.ScannedBy = input.OperatorName
	if err := s.scanRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	log.Printf("Scan recorded: code=%s outlet=%s discount=%s by=%s", code, outlet, discount, input.OperatorName)
	return toScanView(rec)
}

// GetScan returns one scan of the history.
func (s *ScanService) GetScan(ctx context.Context, id uuid.UUID) (*ScanView, error) {
	rec, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Scan")
	}
	return toScanView(rec)
}

// LatestScan returns the most recent scan, or nil when there is none.
func (s *ScanService) LatestScan(ctx context.Context) (*ScanView, error) {
	rec, err := s.scanRepo.Latest(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	return toScanView(rec)
}

// ListScans returns the history in print order.
func (s *ScanService) ListScans(ctx context.Context, params *pagination.Params) (*pagination.Result[*ScanView], error) {
	params.Normalize()
	records, total, err := s.scanRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]*ScanView, 0, len(records))
	for i := range records {
		view, err := toScanView(&records[i])
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	return pagination.NewResult(items, params, total), nil
}

// DeleteScan removes one scan from the history.
func (s *ScanService) DeleteScan(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.scanRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Scan")
	}
	return nil
}

// ClearHistory removes every scan of the operator.
func (s *ScanService) ClearHistory(ctx context.Context) (int64, error) {
	return s.scanRepo.DeleteAll(ctx)
}

func toScanView(rec *entity.ScanRecord) (*ScanView, error) {
	scan, err := rec.ToScan()
	if err != nil {
		return nil, err
	}
	return &ScanView{
		ScanRecord: rec,
		Product:    scan.Payload,
		Label:      BuildPreview(scan),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
