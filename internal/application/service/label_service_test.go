package service

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/label"
)

func TestBuildPreview(t *testing.T) {
	p := BuildPreview(SampleScan())

	assert.Equal(t, "TES PRINTER", p.Name)
	assert.Equal(t, "1234567890123", p.InternalCode)
	require.NotNil(t, p.DisplayDiscount)
	assert.Equal(t, 10.0, *p.DisplayDiscount)
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "A123456789012310", p.Barcode.Value)
	assert.Equal(t, 44, *p.Barcode.CheckSymbol)
	assert.Equal(t, 20+18*11+13, p.Barcode.Modules)
	assert.Empty(t, p.Warning)

	want, err := label.Serialize(label.Build(SampleScan()))
	require.NoError(t, err)
	got, err := base64.StdEncoding.DecodeString(p.EscPos)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuildPreview_Degraded(t *testing.T) {
	// non set-B characters: no bars, but the printer still gets the text
	p := BuildPreview(label.Scan{Code: "kopi-é"})
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "kopi-é", p.Barcode.Value)
	assert.Nil(t, p.Barcode.CheckSymbol)
	assert.Empty(t, p.Barcode.Bars)
	assert.NotEmpty(t, p.EscPos)

	p = BuildPreview(label.Scan{Code: strings.Repeat("9", 300)})
	assert.Empty(t, p.EscPos)
	assert.NotEmpty(t, p.Warning)
}

func TestLabelService_Preview(t *testing.T) {
	f := newFixture(t)

	p := f.labels.Preview(&PreviewInput{Code: " 8991 ", Discount: "25"})
	assert.Equal(t, "A899125", p.Barcode.Value)
	assert.Equal(t, label.DefaultName, p.Name)

	all, err := f.scans.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLabelService_StoredScan(t *testing.T) {
	f := newFixture(t)
	recs := f.seed(t, "77", "78")

	p, err := f.labels.PreviewScan(f.ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "A7710", p.Barcode.Value)

	img, err := f.labels.BarcodePNG(f.ctx, recs[0].ID, 400, 80)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 80, decoded.Bounds().Dy())

	pdf, err := f.labels.SheetPDF(f.ctx, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	pdf, err = f.labels.SheetPDF(f.ctx, []uuid.UUID{recs[1].ID})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = f.labels.PreviewScan(f.ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	_, err = f.labels.SheetPDF(f.ctx, []uuid.UUID{uuid.New()})
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
