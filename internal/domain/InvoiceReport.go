package domain

// InvoiceReport é o conjunto de faturas de uma janela, pronto para renderização
type InvoiceReport struct {
	Period   Period          `json:"period"`
	Label    string          `json:"label"`
	Status   string          `json:"status"`
	Count    int             `json:"count"`
	Invoices []*Invoice      `json:"invoices"`
	Totals   InvoiceTotals   `json:"totals"`
	Summary  *MonthlySummary `json:"summary,omitempty"`
}

// StatusBreakdown resume as faturas de um único status dentro da janela
type StatusBreakdown struct {
	Status string `json:"status"`
	InvoiceTotals
}

// StatusReport é a visão por status usada no relatório completo do mês
type StatusReport struct {
	Period   Period             `json:"period"`
	Label    string             `json:"label"`
	Statuses []string           `json:"statuses"`
	Items    []*StatusBreakdown `json:"items"`
}

// InvoiceLookup é o resultado da busca por número de fatura
type InvoiceLookup struct {
	InvoiceNumber string     `json:"invoice_number"`
	Invoices      []*Invoice `json:"invoices"`
}

// Found indica se alguma fatura foi encontrada
func (l *InvoiceLookup) Found() bool {
	return l != nil && len(l.Invoices) > 0
}

// MonthlyReport é o relatório completo do mês (--force / --cron): visão por status
// seguida da tabela de faturas e do resumo das pagas
type MonthlyReport struct {
	Statuses *StatusReport  `json:"statuses"`
	Invoices *InvoiceReport `json:"invoices"`
}
