package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusAll desliga o filtro de status (comparação sem diferenciar maiúsculas)
const StatusAll = "all"

// Status conhecidos do WHMCS. A coluna é texto livre, então outros valores podem aparecer.
const (
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusUnpaid    = "Unpaid"
	InvoiceStatusCancelled = "Cancelled"
	InvoiceStatusRefunded  = "Refunded"
)

// Invoice representa uma linha de tblinvoices com as taxas já resolvidas
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Tax           decimal.Decimal `json:"tax"`
	Fees          decimal.Decimal `json:"fees"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	DatePaid      *time.Time      `json:"date_paid,omitempty"`
	ClientID      int64           `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
}

// IsPaid compara o status exatamente com "Paid"; só essas faturas têm taxas resolvidas
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsAllStatuses indica se o filtro informado é o sentinela "all"
func IsAllStatuses(status string) bool {
	return status == "" || strings.EqualFold(status, StatusAll)
}

// InvoiceTotals soma as colunas monetárias de um conjunto de faturas
type InvoiceTotals struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
	Tax      decimal.Decimal `json:"tax"`
	Fees     decimal.Decimal `json:"fees"`
}

// Net é o valor líquido: total - taxas - impostos
func (t InvoiceTotals) Net() decimal.Decimal {
	return t.Total.Sub(t.Fees).Sub(t.Tax)
}

// SumInvoices soma subtotal, total, imposto e taxas; conjunto vazio resulta em zeros
func SumInvoices(invoices []*Invoice) InvoiceTotals {
	totals := InvoiceTotals{
		Subtotal: decimal.Zero,
		Total:    decimal.Zero,
		Tax:      decimal.Zero,
		Fees:     decimal.Zero,
	}

	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		totals.Count++
		totals.Subtotal = totals.Subtotal.Add(inv.Subtotal)
		totals.Total = totals.Total.Add(inv.Total)
		totals.Tax = totals.Tax.Add(inv.Tax)
		totals.Fees = totals.Fees.Add(inv.Fees)
	}

	return totals
}
