// Package money formata valores em reais e datas no padrão brasileiro.
package money

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var quantityFormats = [...]string{"%.0f", "%.1f", "%.2f", "%.3f", "%.4f"}

// BRL formata v como "R$ 1.234,56".
func BRL(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("R$ %.2f", f)
}

// Quantity formata uma quantidade sem zeros à direita, com vírgula decimal.
func Quantity(v decimal.Decimal) string {
	f, _ := v.Float64()
	places := int(-v.Exponent())
	if v.Equal(v.Truncate(0)) {
		places = 0
	}
	if places > 4 {
		places = 4
	}
	if places < 0 {
		places = 0
	}
	return printer.Sprintf(quantityFormats[places], f)
}

// Date formata como dd/mm/aaaa.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}
