package utils

import "github.com/shopspring/decimal"

// FormatMoney formata com duas casas decimais, como nos relatórios
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
