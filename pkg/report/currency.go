// Package report renders scenarios and their analyses for people: Markdown,
// HTML and PDF. Nothing here feeds back into a calculation.
package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix follows every formatted amount regardless of locale.
const CurrencySuffix = " TL"

// FormatCurrency rounds amount to whole lira and groups digits the way tag
// does (7.498.575 for Turkish, 7,498,575 for English).
func FormatCurrency(amount float64, tag language.Tag) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	return FormatNumber(amount, tag) + CurrencySuffix
}

// FormatNumber rounds v to an integer with the locale's digit grouping.
func FormatNumber(v float64, tag language.Tag) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", int64(math.Round(v)))
}

// FormatPercent prints v with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatFactor prints a multiplier such as 1.15 or 1.03.
func FormatFactor(v float64) string {
	return fmt.Sprintf("×%.2f", v)
}
