// Package label turns scanned product data into discount labels: it
// resolves the catalog's loosely-typed product payload, derives the new
// discount barcode, and serializes the label as ESC/POS commands.
//
// Everything here except PrintAll is pure and safe for concurrent use.
package label

import "time"

// Scan is one product lookup as captured when the operator scanned it.
type Scan struct {
	// Code is the raw code read by the scanner.
	Code string `json:"code"`
	// Discount is the discount percent active when the code was scanned,
	// as entered by the operator. Empty means none.
	Discount string `json:"discount,omitempty"`
	// Payload is the product object returned by the catalog.
	Payload   map[string]any `json:"payload"`
	ScannedAt time.Time      `json:"scanned_at"`
}

// Field names a logical label attribute.
type Field string

const (
	FieldName            Field = "name"
	FieldInternalCode    Field = "internal_code"
	FieldOldBarcode      Field = "old_barcode"
	FieldNewBarcode      Field = "new_barcode"
	FieldOriginalPrice   Field = "original_price"
	FieldDiscountedPrice Field = "discounted_price"
	FieldDiscount        Field = "discount"
	FieldQuantity        Field = "quantity"
	FieldUnit            Field = "unit"
)

// Aliases lists, per field, the payload keys the catalog may use for it,
// highest priority first.
var Aliases = map[Field][]string{
	FieldName:            {"name_product", "descript", "name"},
	FieldInternalCode:    {"internal", "code_barcode_lama", "mixcode", "code_scan"},
	FieldOldBarcode:      {"code_barcode_lama"},
	FieldNewBarcode:      {"code_barcode_baru"},
	FieldOriginalPrice:   {"harga_awal", "retail_price", "rrtlprc", "harga"},
	FieldDiscountedPrice: {"harga_discount", "harga_diskon"},
	FieldDiscount:        {"discount"},
	FieldQuantity:        {"qty"},
	FieldUnit:            {"uomsales"},
}

// Defaults used when the payload has no usable value.
const (
	DefaultName     = "Produk tanpa nama"
	DefaultUnit     = "PCS"
	DefaultQuantity = 1
)
