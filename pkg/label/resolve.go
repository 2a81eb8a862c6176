package label

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is the typed view of a scan after alias resolution. Text fields
// are empty and numeric fields nil when the payload holds nothing usable.
type Record struct {
	Name            string
	InternalCode    string
	OldBarcode      string
	NewBarcode      string
	OriginalPrice   *float64
	DiscountedPrice *float64
	// Discount is the discount source: the payload's discount when the key
	// is present, otherwise the discount active at scan time. nil when
	// neither is a finite number.
	Discount *float64
	// DiscountField is the payload's discount only when it arrived as a
	// JSON number.
	DiscountField *float64
	Quantity      *float64
	Unit          string
}

// Resolve applies Aliases to the scan's payload.
func Resolve(s Scan) Record {
	p := s.Payload
	r := Record{
		Name:         firstText(p, Aliases[FieldName]),
		InternalCode: firstText(p, Aliases[FieldInternalCode]),
		OldBarcode:   firstText(p, Aliases[FieldOldBarcode]),
		NewBarcode:   firstText(p, Aliases[FieldNewBarcode]),
		Unit:         firstText(p, Aliases[FieldUnit]),
	}

	r.OriginalPrice = firstNumber(p, Aliases[FieldOriginalPrice])
	r.DiscountedPrice = firstNumber(p, Aliases[FieldDiscountedPrice])

	if raw, ok := firstPresent(p, Aliases[FieldDiscount]); ok {
		// A present but unusable payload discount does not fall back to
		// the scan-time discount.
		r.Discount = toNumberPtr(raw)
		if isNumeric(raw) {
			r.DiscountField = toNumberPtr(raw)
		}
	} else if s.Discount != "" {
		// an empty scan-time discount counts as absent, not as 0; callers
		// fill in their own fallback
		r.Discount = toNumberPtr(s.Discount)
	}

	if q := firstNumber(p, Aliases[FieldQuantity]); q != nil && *q >= 0 {
		r.Quantity = q
	}
	return r
}

// firstText returns the first alias holding a non-empty string or a
// non-zero number.
func firstText(p map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := toText(p[k]); ok {
			return s
		}
	}
	return ""
}

// firstPresent returns the first alias whose value is not null.
func firstPresent(p map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstNumber converts the first present alias. It does not look further
// when that value is not numeric.
func firstNumber(p map[string]any, keys []string) *float64 {
	v, ok := firstPresent(p, keys)
	if !ok {
		return nil
	}
	return toNumberPtr(v)
}

func toNumberPtr(v any) *float64 {
	f, ok := toNumber(v)
	if !ok {
		return nil
	}
	return &f
}

func toText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return t.String(), true
	default:
		f, ok := toNumber(v)
		if !ok || f == 0 {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		_, ok := toNumber(v)
		return ok
	}
	return false
}
