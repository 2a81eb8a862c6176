package label

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatAmount formats v with Indonesian separators: 10000 → "10.000",
// 1234.5 → "1.234,5".
func FormatAmount(v float64) string {
	return idPrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatRupiah prefixes FormatAmount with the currency symbol.
func FormatRupiah(v float64) string {
	return "Rp " + FormatAmount(v)
}

// FormatQuantity prints a quantity without trailing zeros.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
