package label

import (
	"fmt"

	"github.com/sangkips/discount-label-api/pkg/printer"
)

// Label layout constants, tuned for 58mm printers.
const (
	barcodeHeightDots  = 0x50
	barcodeModuleWidth = 0x03
	trailingFeedLines  = 2

	originalPriceLabel   = "Harga Awal     : "
	discountedPriceLabel = "Diskon Menjadi : "
)

// Serialize renders p as the ESC/POS byte stream the label printers
// expect. The byte layout is fixed; printers are driven open loop.
func Serialize(p Payload) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	doc := printer.NewDocument().
		SetFont(printer.FontB).
		SetAlign(printer.AlignCenter)

	if p.DiscountPercent != nil {
		doc.SetPrintMode(printer.ModeDoubleHeight).
			TextF("HEMAT %d%%", *p.DiscountPercent).
			SetPrintMode(printer.ModeNormal)
	}

	doc.Text(p.Name).
		TextF("Qty: %s %s", FormatQuantity(p.Quantity), p.Unit)

	if p.BarcodeValue != nil {
		code := *p.BarcodeValue
		doc.SetBarcodeHeight(barcodeHeightDots).
			SetBarcodeWidth(barcodeModuleWidth).
			Code128(code).
			LineFeed().
			Text(code)
	}

	doc.SetAlign(printer.AlignLeft)
	if p.OriginalPrice != nil {
		doc.Write(originalPriceLabel).Text(FormatRupiah(*p.OriginalPrice))
	}
	if p.DiscountedPrice != nil {
		doc.Write(discountedPriceLabel).
			SetPrintMode(printer.ModeDoubleHeight).
			SetBold(true).
			Write(FormatRupiah(*p.DiscountedPrice)).
			SetBold(false).
			SetPrintMode(printer.ModeNormal).
			LineFeed()
	}

	doc.SetAlign(printer.AlignCenter).
		FeedLines(trailingFeedLines)

	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	return doc.Bytes(), nil
}
