package preview

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/sangkips/discount-label-api/pkg/code128"
	"github.com/sangkips/discount-label-api/pkg/label"
)

// ErrNoLabels is returned when a sheet is requested for an empty list.
var ErrNoLabels = errors.New("preview: no labels to render")

// Paper geometry in millimetres for 58mm label stock.
const (
	pageWidth    = 58.0
	pageHeight   = 70.0
	pageMargin   = 3.0
	barHeight    = 14.0
	lineHeight   = 4.5
	bannerHeight = 7.0
)

// LabelsPDF lays out one label per page, mirroring what the thermal
// printer produces for each payload.
func LabelsPDF(payloads []label.Payload) ([]byte, error) {
	if len(payloads) == 0 {
		return nil, ErrNoLabels
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetTitle("Discount Labels", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range payloads {
		addLabelPage(pdf, tr, p)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return out.Bytes(), nil
}

func addLabelPage(pdf *gofpdf.Fpdf, tr func(string) string, p label.Payload) {
	pdf.AddPage()
	pdf.SetY(pageMargin)

	if p.DiscountPercent != nil {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, bannerHeight, fmt.Sprintf("HEMAT %d%%", *p.DiscountPercent), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, lineHeight, tr(p.Name), "", "C", false)
	pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("Qty: %s %s", label.FormatQuantity(p.Quantity), p.Unit)), "", 1, "C", false, 0, "")

	if p.BarcodeValue != nil {
		drawBars(pdf, *p.BarcodeValue)
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(0, lineHeight, tr(*p.BarcodeValue), "", 1, "C", false, 0, "")
	}

	if p.OriginalPrice != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, lineHeight, "Harga Awal     : "+label.FormatRupiah(*p.OriginalPrice), "", 1, "L", false, 0, "")
	}
	if p.DiscountedPrice != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(22, bannerHeight, "Diskon Menjadi : ", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, bannerHeight, label.FormatRupiah(*p.DiscountedPrice), "", 1, "L", false, 0, "")
	}
}

// drawBars paints the symbol as filled rectangles, centred and shrunk to
// the printable width. Values the encoder rejects draw nothing.
func drawBars(pdf *gofpdf.Fpdf, value string) {
	bars, ok := code128.Encode(value)
	if !ok {
		return
	}

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*pageMargin
	module := usable / float64(code128.Width(bars))
	y := pdf.GetY() + 1

	pdf.SetFillColor(0, 0, 0)
	x := pageMargin
	for _, b := range bars {
		w := float64(b.Width) * module
		if b.Black {
			pdf.Rect(x, y, w, barHeight, "F")
		}
		x += w
	}
	pdf.SetY(y + barHeight + 1)
}
