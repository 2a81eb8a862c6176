// Package preview renders discount labels for the screen: Code128 PNG
// images and printable PDF sheets.
package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"

	"github.com/sangkips/discount-label-api/pkg/code128"
)

// ErrUnsupported is returned for values that cannot be drawn as Code128
// set B, including the empty string.
var ErrUnsupported = errors.New("preview: value cannot be encoded as code128")

// symbol adapts code128 bars to barcode.BarcodeIntCS so the barcode
// package can scale it.
type symbol struct {
	value   string
	check   int
	modules []bool
}

func newSymbol(value string) (*symbol, error) {
	bars, ok := code128.Encode(value)
	if !ok {
		return nil, ErrUnsupported
	}
	check, _ := code128.CheckSymbol(value)

	modules := make([]bool, 0, code128.Width(bars))
	for _, b := range bars {
		for i := 0; i < b.Width; i++ {
			modules = append(modules, b.Black)
		}
	}
	return &symbol{value: strings.TrimSpace(value), check: check, modules: modules}, nil
}

func (s *symbol) ColorModel() color.Model { return color.Gray16Model }

func (s *symbol) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(s.modules), 1)
}

func (s *symbol) At(x, y int) color.Color {
	if x >= 0 && x < len(s.modules) && s.modules[x] {
		return color.Black
	}
	return color.White
}

func (s *symbol) Metadata() barcode.Metadata {
	return barcode.Metadata{CodeKind: "Code 128", Dimensions: 1}
}

func (s *symbol) Content() string { return s.value }

func (s *symbol) CheckSum() int { return s.check }

var _ barcode.BarcodeIntCS = (*symbol)(nil)

// Modules returns the module count of value including both quiet zones.
func Modules(value string) (int, error) {
	s, err := newSymbol(value)
	if err != nil {
		return 0, err
	}
	return len(s.modules), nil
}

// BarcodePNG draws value as a PNG of at least width by height pixels.
// Widths narrower than the symbol are widened to one pixel per module.
func BarcodePNG(value string, width, height int) ([]byte, error) {
	s, err := newSymbol(value)
	if err != nil {
		return nil, err
	}
	if width < len(s.modules) {
		width = len(s.modules)
	}
	if height < 1 {
		height = 1
	}

	scaled, err := barcode.Scale(s, width, height)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
