package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/discount-label-api/pkg/label"
)

// ScanRecord is one product scan kept in the label history. Payload holds
// the product object returned by the catalog as raw JSON.
type ScanRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id" db:"id"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;index" json:"operator_id" db:"operator_id"`
	Code       string    `gorm:"size:255;not null;index" json:"code" db:"code"`
	Discount   string    `gorm:"size:32" json:"discount" db:"discount"`
	Outlet     string    `gorm:"size:64" json:"outlet" db:"outlet"`
	ScannedBy  string    `gorm:"size:255" json:"scanned_by,omitempty" db:"scanned_by"`
	Payload    string    `gorm:"type:text" json:"-" db:"payload"`
	ScannedAt  time.Time `gorm:"not null;index" json:"scanned_at" db:"scanned_at"`
}

// NewScanRecord creates a record for a fresh catalog lookup.
func NewScanRecord(operatorID uuid.UUID, code, discount, outlet string, product map[string]any, at time.Time) (*ScanRecord, error) {
	rec := &ScanRecord{
		ID:         uuid.New(),
		OperatorID: operatorID,
		Code:       code,
		Discount:   discount,
		Outlet:     outlet,
		ScannedAt:  at,
	}
	if product != nil {
		raw, err := json.Marshal(product)
		if err != nil {
			return nil, fmt.Errorf("encode product payload: %w", err)
		}
		rec.Payload = string(raw)
	}
	return rec, nil
}

// BeforeCreate generates a UUID before creating a new scan
func (s *ScanRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ScanRecord model
func (ScanRecord) TableName() string {
	return "scans"
}

// Product decodes the stored catalog payload. Numbers are kept as
// json.Number so large codes do not lose precision.
func (s *ScanRecord) Product() (map[string]any, error) {
	if s.Payload == "" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(s.Payload)))
	dec.UseNumber()

	var product map[string]any
	if err := dec.Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product payload: %w", err)
	}
	return product, nil
}

// ToScan converts the record into the input of the label builder.
func (s *ScanRecord) ToScan() (label.Scan, error) {
	product, err := s.Product()
	if err != nil {
		return label.Scan{}, err
	}
	return label.Scan{
		Code:      s.Code,
		Discount:  s.Discount,
		Payload:   product,
		ScannedAt: s.ScannedAt,
	}, nil
}
