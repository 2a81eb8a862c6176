package label

import (
	"math"
	"strconv"
)

// BarcodePrefix starts every derived discount barcode.
const BarcodePrefix = "A"

// BarcodeDiscount returns the discount source truncated toward zero
// (20.5 → 20). This is the value appended to derived barcodes and printed
// in the HEMAT banner.
func BarcodeDiscount(r Record) (int, bool) {
	if r.Discount == nil {
		return 0, false
	}
	d := math.Trunc(*r.Discount)
	if math.Abs(d) > math.MaxInt32 {
		return 0, false
	}
	return int(d), true
}

// DisplayDiscount returns the discount shown next to prices: the payload's
// numeric discount as is, otherwise the price difference as a rounded
// percentage of the original price.
func DisplayDiscount(r Record) (float64, bool) {
	if r.DiscountField != nil {
		return *r.DiscountField, true
	}
	if p, ok := priceDiscount(r); ok {
		return float64(p), true
	}
	return 0, false
}

func priceDiscount(r Record) (int, bool) {
	if r.OriginalPrice == nil || r.DiscountedPrice == nil {
		return 0, false
	}
	orig, disc := *r.OriginalPrice, *r.DiscountedPrice
	if orig <= 0 || orig <= disc {
		return 0, false
	}
	return int(math.Round((orig - disc) / orig * 100)), true
}

// OldBarcode returns the barcode the new one is derived from.
func OldBarcode(r Record, fallbackCode string) string {
	switch {
	case r.OldBarcode != "":
		return r.OldBarcode
	case r.InternalCode != "":
		return r.InternalCode
	default:
		return fallbackCode
	}
}

// DeriveBarcode returns the barcode printed on the label. An explicit new
// barcode from the catalog wins; otherwise it is "A" + old barcode +
// truncated discount, with no zero padding (5 → "A…5"). Without a discount
// the scanned code is used unchanged.
func DeriveBarcode(r Record, fallbackCode string) string {
	if r.NewBarcode != "" {
		return r.NewBarcode
	}
	old := OldBarcode(r, fallbackCode)
	if d, ok := BarcodeDiscount(r); ok && old != "" {
		return BarcodePrefix + old + strconv.Itoa(d)
	}
	return fallbackCode
}
