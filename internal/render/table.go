package render

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/utils"
)

var invoiceHeader = []string{
	"ID",
	"Invoice Number",
	"Sub Total",
	"Total",
	"Tax",
	"Fees",
	"Status",
	"Date",
	"Date Paid",
	"User ID",
	"Client Name",
}

// InvoiceRows monta as linhas da tabela: uma por fatura mais a linha de totais.
// A linha de totais soma apenas as faturas, nunca a si mesma.
func InvoiceRows(invoices []*domain.Invoice) [][]string {
	rows := make([][]string, 0, len(invoices)+1)

	for _, inv := range invoices {
		rows = append(rows, []string{
			strconv.FormatInt(inv.ID, 10),
			inv.InvoiceNumber,
			utils.FormatMoney(inv.Subtotal),
			utils.FormatMoney(inv.Total),
			utils.FormatMoney(inv.Tax),
			utils.FormatMoney(inv.Fees),
			inv.Status,
			formatDate(inv.Date),
			formatDatePaid(inv.DatePaid),
			strconv.FormatInt(inv.ClientID, 10),
			inv.ClientName,
		})
	}

	totals := domain.SumInvoices(invoices)
	rows = append(rows, []string{
		strconv.Itoa(totals.Count),
		"",
		utils.FormatMoney(totals.Subtotal),
		utils.FormatMoney(totals.Total),
		utils.FormatMoney(totals.Tax),
		utils.FormatMoney(totals.Fees),
		"",
		"",
		"",
		"",
		"",
	})

	return rows
}

func writeInvoiceTable(w io.Writer, invoices []*domain.Invoice) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(invoiceHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	table.AppendBulk(InvoiceRows(invoices))
	table.Render()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatDatePaid(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateTime)
}
