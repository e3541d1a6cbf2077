package domain

import "github.com/shopspring/decimal"

// MonthlySummary é a redução de um mês para os totais exibidos no resumo
type MonthlySummary struct {
	Period Period `json:"period"`
	Label  string `json:"label"`
	Status string `json:"status"`
	InvoiceTotals
	NetAmount decimal.Decimal `json:"net"`
}

func NewMonthlySummary(period Period, status string, invoices []*Invoice) *MonthlySummary {
	totals := SumInvoices(invoices)
	return &MonthlySummary{
		Period:        period,
		Label:         period.Label(),
		Status:        status,
		InvoiceTotals: totals,
		NetAmount:     totals.Net(),
	}
}

// YearlySummary agrupa os resumos mensais de um ano, na ordem dos meses
type YearlySummary struct {
	Year   int               `json:"year"`
	Months []*MonthlySummary `json:"months"`
}
