package label

import (
	"errors"
	"fmt"

	"github.com/sangkips/discount-label-api/pkg/printer"
)

// ErrBarcodeTooLong is returned for barcodes the printer's one-byte length
// prefix cannot describe.
var ErrBarcodeTooLong = errors.New("label: barcode longer than 255 bytes")

// Payload holds the fully resolved fields of one label.
type Payload struct {
	Name            string   `json:"name"`
	BarcodeValue    *string  `json:"barcode_value"`
	DiscountPercent *int     `json:"discount_percent"`
	OriginalPrice   *float64 `json:"original_price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
}

// BuildPayload resolves label fields from r. fallbackCode is the code the
// operator scanned; it stands in for a missing barcode. BuildPayload never
// fails: each field falls back to its default on its own.
func BuildPayload(r Record, fallbackCode string) Payload {
	p := Payload{
		Name:            r.Name,
		OriginalPrice:   r.OriginalPrice,
		DiscountedPrice: r.DiscountedPrice,
		Quantity:        DefaultQuantity,
		Unit:            r.Unit,
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}

	if code := DeriveBarcode(r, fallbackCode); code != "" {
		p.BarcodeValue = &code
	}

	if d, ok := BarcodeDiscount(r); ok {
		p.DiscountPercent = &d
	} else if d, ok := priceDiscount(r); ok {
		p.DiscountPercent = &d
	}
	return p
}

// Build resolves s and builds its payload, using the scanned code as the
// fallback barcode.
func Build(s Scan) Payload {
	return BuildPayload(Resolve(s), s.Code)
}

// Validate reports whether the payload can be serialized.
func (p Payload) Validate() error {
	if p.BarcodeValue != nil && len(*p.BarcodeValue) > printer.MaxBarcodeLength {
		return fmt.Errorf("%w: %d bytes", ErrBarcodeTooLong, len(*p.BarcodeValue))
	}
	return nil
}
