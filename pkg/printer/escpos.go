package printer

import (
	"bytes"
	"fmt"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character fonts (ESC M n)
const (
	FontA = 0x00
	FontB = 0x01 // smaller font, if the printer has one
)

// Print modes (ESC ! n)
const (
	ModeNormal       = 0x00
	ModeDoubleHeight = 0x10
	ModeDoubleWidth  = 0x20
)

// Barcode systems for GS k m n d1..dn
const (
	BarcodeCode128 = 0x49
)

// MaxBarcodeLength is the longest barcode a single length byte can describe.
const MaxBarcodeLength = 255

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf bytes.Buffer
	err error
}

// NewDocument creates a new ESC/POS document starting with ESC @.
func NewDocument() *Document {
	d := &Document{}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetFont selects the character font with ESC M.
func (d *Document) SetFont(font byte) *Document {
	d.buf.Write([]byte{ESC, 'M', font})
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetPrintMode sets the ESC ! print mode byte. Use ModeNormal to reset.
func (d *Document) SetPrintMode(mode byte) *Document {
	d.buf.Write([]byte{ESC, '!', mode})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetBarcodeHeight sets the barcode height in dots (GS h).
func (d *Document) SetBarcodeHeight(dots byte) *Document {
	d.buf.Write([]byte{GS, 'h', dots})
	return d
}

// SetBarcodeWidth sets the barcode module width (GS w).
func (d *Document) SetBarcodeWidth(n byte) *Document {
	d.buf.Write([]byte{GS, 'w', n})
	return d
}

// Code128 prints data with the printer's own Code128 generator
// (GS k 73 n d1..dn). The printer computes the check symbol itself. Data
// longer than MaxBarcodeLength is not written and is reported by Err.
func (d *Document) Code128(data string) *Document {
	if len(data) > MaxBarcodeLength {
		if d.err == nil {
			d.err = fmt.Errorf("printer: barcode of %d bytes exceeds %d", len(data), MaxBarcodeLength)
		}
		return d
	}
	d.buf.Write([]byte{GS, 'k', BarcodeCode128, byte(len(data))})
	d.buf.WriteString(data)
	return d
}

// Write appends s without a trailing line feed.
func (d *Document) Write(s string) *Document {
	d.buf.WriteString(s)
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Err returns the first error recorded while building the document.
func (d *Document) Err() error {
	return d.err
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.err = nil
	d.Init()
	return d
}
