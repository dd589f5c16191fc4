// Package numfmt holds the rounding and number formatting rules shared by the
// calculators and the report formatters.
package numfmt

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Round rounds half toward positive infinity, so Round(-2.5) is -2 and
// Round(2.5) is 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundInt is Round converted to int.
func RoundInt(x float64) int {
	return int(Round(x))
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return Round(x*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return Round(x*100) / 100
}

// Number prints x in its shortest decimal form: 2, 2.5, 0.1.
func Number(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Fixed1 prints x with exactly one decimal place.
func Fixed1(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// Grouped prints an integer with Brazilian digit grouping (1.234.567).
func Grouped(n int64) string {
	return ptBR.Sprintf("%d", n)
}

// Currency prints a whole-real amount, e.g. R$57.200.
func Currency(d decimal.Decimal) string {
	return "R$" + Grouped(d.Round(0).IntPart())
}

// Percent prints a percentage with the given number of decimals.
func Percent(x float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, x)
}

// Minutes renders a duration in minutes as "45 min", "2h" or "1h 30min".
func Minutes(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%s min", Number(Round(minutes)))
	}
	hours := math.Floor(minutes / 60)
	mins := Round(math.Mod(minutes, 60))
	if mins == 0 {
		return fmt.Sprintf("%sh", Number(hours))
	}
	return fmt.Sprintf("%sh %smin", Number(hours), Number(mins))
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}
