package dues

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AmountFormatter renders amounts with locale separators and a currency symbol.
type AmountFormatter struct {
	printer *message.Printer
	symbol  string
	point   string
}

// NewAmountFormatter builds a formatter for a BCP 47 locale such as "pt-BR".
func NewAmountFormatter(locale, symbol string) (*AmountFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("dues: parse locale %q: %w", locale, err)
	}
	p := message.NewPrinter(tag)
	point := strings.TrimSuffix(strings.TrimPrefix(p.Sprint(number.Decimal(1.5, number.Scale(1))), "1"), "5")
	return &AmountFormatter{printer: p, symbol: symbol, point: point}, nil
}

// Number formats amount with exactly two fraction digits and no symbol.
// Only the whole units go through the locale printer, so the cents stay
// exact for amounts a float64 cannot hold.
func (f *AmountFormatter) Number(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}
	whole, cents, _ := strings.Cut(fixed, ".")
	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + f.printer.Sprint(number.Decimal(units)) + f.point + cents
}

// Format formats amount with the currency symbol, e.g. "R$ 1.500,00".
func (f *AmountFormatter) Format(amount decimal.Decimal) string {
	if f.symbol == "" {
		return f.Number(amount)
	}
	return f.symbol + " " + f.Number(amount)
}
