package views

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxPriceFractionDigits matches the en-IN locale default
const maxPriceFractionDigits = 3

// indianLocale groups the last three integer digits together and every two
// digits before that (lakh/crore)
var indianLocale = language.MustParse("en-IN")

// FormatPrice renders a price with the currency symbol and Indian digit
// grouping, e.g. 452000 -> ₹4,52,000 and 1234567.891 -> ₹12,34,567.891
func FormatPrice(symbol string, price float64) string {
	return symbol + GroupIndian(price)
}

// GroupIndian formats n in the en-IN locale, keeping at most three fraction digits
func GroupIndian(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "∞"
	case math.IsInf(n, -1):
		return "-∞"
	}

	return message.NewPrinter(indianLocale).
		Sprint(number.Decimal(n, number.MaxFractionDigits(maxPriceFractionDigits)))
}

// Capitalize upper-cases the first letter of a display label.
// The submitted value always stays the raw server string.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatKm renders a whole-number kilometre reading with the same grouping as
// prices, otherwise the text as entered
func FormatKm(km string) string {
	n, err := strconv.ParseInt(km, 10, 64)
	if err != nil {
		return km
	}
	return message.NewPrinter(indianLocale).Sprint(number.Decimal(n)) + " km"
}

// FormatOwner describes the previous-owner count, where 0 means first owner
func FormatOwner(owner string) string {
	n, err := strconv.Atoi(owner)
	if err != nil || n < 0 {
		return owner
	}
	return humanize.Ordinal(n+1) + " owner"
}
