// Package code128 encodes text as Code 128 (code set B) bar/space modules
// for on-screen label previews.
package code128

import "strings"

// Symbol values with a fixed meaning in code set B.
const (
	StartA = 103
	StartB = 104
	StartC = 105
	Stop   = 106
)

// QuietZone is the width, in modules, of the blank margin placed before and
// after the bars.
const QuietZone = 10

// Bar is a single run of ink or blank space.
type Bar struct {
	Width int  `json:"width"`
	Black bool `json:"black"`
}

// Patterns holds the module widths of every Code 128 symbol, indexed by
// symbol value. Widths alternate bar/space starting with a bar. STOP is the
// only 7-element pattern.
var Patterns = [107]string{
	"212222", "222122", "222221", "121223", "121322", "131222", "122213", "122312", "132212", "221213", // 0-9
	"221312", "231212", "112232", "122132", "122231", "113222", "123122", "123221", "223211", "221132", // 10-19
	"221231", "213212", "223112", "312131", "311222", "321122", "321221", "312212", "322112", "322211", // 20-29
	"212123", "212321", "232121", "111323", "131123", "131321", "112313", "132113", "132311", "211313", // 30-39
	"231113", "231311", "112133", "112331", "132131", "113123", "113321", "133121", "313121", "211331", // 40-49
	"231131", "213113", "213311", "213131", "311123", "311321", "331121", "312113", "312311", "332111", // 50-59
	"314111", "221411", "431111", "111224", "111422", "121124", "121421", "141122", "141221", "112214", // 60-69
	"112412", "122114", "122411", "142112", "142211", "241211", "221114", "413111", "241112", "134111", // 70-79
	"111242", "121142", "121241", "114212", "124112", "124211", "411212", "421112", "421211", "212141", // 80-89
	"214121", "412121", "111143", "111341", "131141", "114113", "114311", "411113", "411311", "113141", // 90-99
	"114131", "311141", "411131", "211412", "211214", "211232", "2331112", // 100-106
}

// SymbolB maps a character to its code set B symbol value. Only printable
// ASCII (32..126) is supported.
func SymbolB(r rune) (int, bool) {
	if r < 32 || r > 126 {
		return 0, false
	}
	return int(r - 32), true
}

// Checksum returns the mod-103 check symbol for data symbols following the
// given start symbol. Positions are weighted from 1.
func Checksum(start int, data []int) int {
	sum := start
	for i, v := range data {
		sum += v * (i + 1)
	}
	return sum % 103
}

// Symbols returns the full symbol sequence for value: START-B, one symbol
// per character, the checksum and STOP. The value is trimmed first. ok is
// false when the trimmed value is empty or holds a character outside code
// set B.
func Symbols(value string) (symbols []int, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}

	data := make([]int, 0, len(value))
	for _, r := range value {
		v, ok := SymbolB(r)
		if !ok {
			return nil, false
		}
		data = append(data, v)
	}

	symbols = make([]int, 0, len(data)+3)
	symbols = append(symbols, StartB)
	symbols = append(symbols, data...)
	symbols = append(symbols, Checksum(StartB, data), Stop)
	return symbols, true
}

// CheckSymbol returns the checksum symbol a scanner will expect for value.
func CheckSymbol(value string) (int, bool) {
	symbols, ok := Symbols(value)
	if !ok {
		return 0, false
	}
	return symbols[len(symbols)-2], true
}

// Encode converts value into bars framed by quiet zones. It never fails
// loudly: empty or unsupported input yields (nil, false) and the caller
// renders nothing.
func Encode(value string) ([]Bar, bool) {
	symbols, ok := Symbols(value)
	if !ok {
		return nil, false
	}

	bars := make([]Bar, 0, len(symbols)*6+3)
	bars = append(bars, Bar{Width: QuietZone})
	for _, s := range symbols {
		black := true
		for _, w := range Patterns[s] {
			bars = append(bars, Bar{Width: int(w - '0'), Black: black})
			black = !black
		}
	}
	bars = append(bars, Bar{Width: QuietZone})
	return bars, true
}

// Width returns the total number of modules covered by bars.
func Width(bars []Bar) int {
	n := 0
	for _, b := range bars {
		n += b.Width
	}
	return n
}
