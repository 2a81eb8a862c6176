package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	"github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/code128"
	"github.com/sangkips/discount-label-api/pkg/label"
	"github.com/sangkips/discount-label-api/pkg/preview"
)

// BarcodePreview describes the symbol a scanner will read off the label.
type BarcodePreview struct {
	Value       string        `json:"value"`
	CheckSymbol *int          `json:"check_symbol,omitempty"`
	Modules     int           `json:"modules"`
	Bars        []code128.Bar `json:"bars,omitempty"`
}

// LabelPreview is what the operator sees before printing. Payload and
// EscPos are exactly what the printer receives.
type LabelPreview struct {
	Name            string          `json:"name"`
	InternalCode    string          `json:"internal_code,omitempty"`
	OriginalPrice   *float64        `json:"original_price"`
	DiscountedPrice *float64        `json:"discounted_price"`
	DisplayDiscount *float64        `json:"display_discount"`
	Quantity        float64         `json:"quantity"`
	Unit            string          `json:"unit"`
	Barcode         *BarcodePreview `json:"barcode"`
	Payload         label.Payload   `json:"payload"`
	EscPos          string          `json:"escpos,omitempty"`
	Warning         string          `json:"warning,omitempty"`
}

// BuildPreview resolves s and renders everything the operator needs to
// check the label. A barcode the printer would reject is reported in
// Warning instead of failing the preview.
func BuildPreview(s label.Scan) *LabelPreview {
	rec := label.Resolve(s)
	payload := label.BuildPayload(rec, s.Code)

	p := &LabelPreview{
		Name:            payload.Name,
		InternalCode:    rec.InternalCode,
		OriginalPrice:   payload.OriginalPrice,
		DiscountedPrice: payload.DiscountedPrice,
		Quantity:        payload.Quantity,
		Unit:            payload.Unit,
		Payload:         payload,
	}
	if d, ok := label.DisplayDiscount(rec); ok {
		p.DisplayDiscount = &d
	}

	if payload.BarcodeValue != nil {
		bp := &BarcodePreview{Value: *payload.BarcodeValue}
		if bars, ok := code128.Encode(bp.Value); ok {
			check, _ := code128.CheckSymbol(bp.Value)
			bp.CheckSymbol = &check
			bp.Bars = bars
			bp.Modules = code128.Width(bars)
		}
		p.Barcode = bp
	}

	data, err := label.Serialize(payload)
	if err != nil {
		p.Warning = err.Error()
		return p
	}
	p.EscPos = base64.StdEncoding.EncodeToString(data)
	return p
}

// LabelService renders previews for stored scans and ad-hoc payloads
type LabelService struct {
	scanRepo repository.ScanRepository
}

// NewLabelService creates a new label service
func NewLabelService(scanRepo repository.ScanRepository) *LabelService {
	return &LabelService{scanRepo: scanRepo}
}

// PreviewInput is an ad-hoc label request that is not stored
type PreviewInput struct {
	Code     string
	Discount string
	Payload  map[string]any
}

// Preview builds a preview for input without touching the history.
func (s *LabelService) Preview(input *PreviewInput) *LabelPreview {
	return BuildPreview(label.Scan{
		Code:      strings.TrimSpace(input.Code),
		Discount:  strings.TrimSpace(input.Discount),
		Payload:   input.Payload,
		ScannedAt: time.Now(),
	})
}

// PreviewScan builds the preview of a stored scan.
func (s *LabelService) PreviewScan(ctx context.Context, id uuid.UUID) (*LabelPreview, error) {
	scan, err := s.loadScan(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildPreview(scan), nil
}

// BarcodePNG draws the barcode of a stored scan.
func (s *LabelService) BarcodePNG(ctx context.Context, id uuid.UUID, width, height int) ([]byte, error) {
	scan, err := s.loadScan(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := label.Build(scan)
	if payload.BarcodeValue == nil {
		return nil, apperror.ErrUnsupportedBarcode
	}
	img, err := preview.BarcodePNG(*payload.BarcodeValue, width, height)
	if errors.Is(err, preview.ErrUnsupported) {
		return nil, apperror.ErrUnsupportedBarcode
	}
	return img, err
}

// SheetPDF renders the given scans, or the whole history when ids is
// empty, as a PDF with one label per page.
func (s *LabelService) SheetPDF(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	records, err := loadRecords(ctx, s.scanRepo, ids)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperror.NewNotFoundError("Scan")
	}

	payloads := make([]label.Payload, 0, len(records))
	for i := range records {
		scan, err := records[i].ToScan()
		if err != nil {
			log.Printf("Skipping scan %s in PDF: %v", records[i].ID, err)
			continue
		}
		payloads = append(payloads, label.Build(scan))
	}
	return preview.LabelsPDF(payloads)
}

func (s *LabelService) loadScan(ctx context.Context, id uuid.UUID) (label.Scan, error) {
	rec, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return label.Scan{}, err
	}
	if rec == nil {
		return label.Scan{}, apperror.NewNotFoundError("Scan")
	}
	return rec.ToScan()
}

// loadRecords returns the scans for ids in scan order, or every scan of
// the operator when ids is empty.
func loadRecords(ctx context.Context, repo repository.ScanRepository, ids []uuid.UUID) ([]entity.ScanRecord, error) {
	if len(ids) == 0 {
		return repo.ListAll(ctx)
	}
	return repo.GetByIDs(ctx, ids)
}
