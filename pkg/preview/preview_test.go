package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/boombuler/barcode"
	bcode128 "github.com/boombuler/barcode/code128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/discount-label-api/pkg/code128"
	"github.com/sangkips/discount-label-api/pkg/label"
)

func ptr[T any](v T) *T { return &v }

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestModules(t *testing.T) {
	n, err := Modules("A10")
	require.NoError(t, err)
	assert.Equal(t, 2*code128.QuietZone+5*11+13, n)

	_, err = Modules("")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSymbol_MatchesBoombulerEncoder(t *testing.T) {
	s, err := newSymbol("Hello")
	require.NoError(t, err)

	ref, err := bcode128.Encode("Hello")
	require.NoError(t, err)

	assert.Equal(t, ref.CheckSum(), s.CheckSum())
	assert.Equal(t, 76, s.CheckSum())
	assert.Equal(t, ref.Bounds().Dx(), s.Bounds().Dx()-2*code128.QuietZone)
	for x := 0; x < ref.Bounds().Dx(); x++ {
		assert.Equal(t, isBlack(ref.At(x, 0)), isBlack(s.At(x+code128.QuietZone, 0)), "module %d", x)
	}
}

func TestSymbol_Metadata(t *testing.T) {
	s, err := newSymbol(" A10 ")
	require.NoError(t, err)

	var bc barcode.Barcode = s
	assert.Equal(t, "A10", bc.Content())
	assert.Equal(t, byte(1), bc.Metadata().Dimensions)
	assert.Equal(t, 13, s.CheckSum())
}

func TestBarcodePNG(t *testing.T) {
	n, err := Modules("A10")
	require.NoError(t, err)

	data, err := BarcodePNG("A10", n*2, 40)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, n*2, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	// quiet zone then the first bar of START-B
	assert.False(t, isBlack(img.At(0, 0)))
	assert.False(t, isBlack(img.At(2*code128.QuietZone-1, 20)))
	assert.True(t, isBlack(img.At(2*code128.QuietZone, 20)))
}

func TestBarcodePNG_WidensNarrowRequests(t *testing.T) {
	n, err := Modules("A10")
	require.NoError(t, err)

	data, err := BarcodePNG("A10", 1, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, n, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestBarcodePNG_Unsupported(t *testing.T) {
	_, err := BarcodePNG("Rp 100", 100, 10)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLabelsPDF(t *testing.T) {
	_, err := LabelsPDF(nil)
	assert.ErrorIs(t, err, ErrNoLabels)

	data, err := LabelsPDF([]label.Payload{
		{
			Name:            "Produk Contoh",
			BarcodeValue:    ptr("A123456789012310"),
			DiscountPercent: ptr(10),
			OriginalPrice:   ptr(10000.0),
			DiscountedPrice: ptr(9000.0),
			Quantity:        2,
			Unit:            "PCS",
		},
		{Name: "Kopi Élite", BarcodeValue: ptr("café"), Quantity: 1, Unit: "PCS"},
		{Name: "Tanpa Barcode", Quantity: 1, Unit: "BOX"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
