package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/utils"
)

const summaryRule = "====================================="

// TextRenderer escreve tabelas em grade e blocos chave/valor com faixas coloridas
type TextRenderer struct {
	w       io.Writer
	header  *color.Color
	header2 *color.Color
	header3 *color.Color
}

func NewTextRenderer(w io.Writer, noColor bool) *TextRenderer {
	r := &TextRenderer{
		w:       w,
		header:  color.New(color.BgYellow, color.FgBlack),
		header2: color.New(color.BgGreen, color.FgBlack),
		header3: color.New(color.BgWhite, color.FgBlack),
	}

	if noColor {
		r.header.DisableColor()
		r.header2.DisableColor()
		r.header3.DisableColor()
	}

	return r
}

// banner escreve o texto na faixa colorida seguido de um sublinhado do mesmo tamanho
func (r *TextRenderer) banner(c *color.Color, text string) {
	fmt.Fprintln(r.w, c.Sprint(text))
	fmt.Fprintln(r.w, strings.Repeat("=", len(text)))
}

func (r *TextRenderer) line(label, value string) {
	fmt.Fprintf(r.w, "%-25s: %10s\n", label, value)
}

func (r *TextRenderer) InvoiceReport(report *domain.InvoiceReport) error {
	fmt.Fprintf(r.w, "Invoices from Month: %s\n", report.Label)
	r.banner(r.header, fmt.Sprintf("Number of rows fetched: %d", report.Count))

	writeInvoiceTable(r.w, report.Invoices)

	if report.Summary != nil {
		return r.MonthlySummary(report.Summary)
	}

	return nil
}

func (r *TextRenderer) MonthlySummary(summary *domain.MonthlySummary) error {
	r.banner(r.header2, fmt.Sprintf("Summary for %s", summary.Label))
	r.line("Invoices", strconv.Itoa(summary.Count))
	r.line("Subtotal", utils.FormatMoney(summary.Subtotal))
	r.line("Fees", utils.FormatMoney(summary.Fees))
	r.line("Tax", utils.FormatMoney(summary.Tax))
	fmt.Fprintln(r.w, summaryRule)
	r.line("Net = Total - Fees - Tax", utils.FormatMoney(summary.NetAmount))
	r.line("Taxes to be paid", utils.FormatMoney(summary.Tax))
	fmt.Fprintln(r.w)

	return nil
}

func (r *TextRenderer) YearlySummary(summary *domain.YearlySummary) error {
	if len(summary.Months) == 0 {
		r.banner(r.header3, fmt.Sprintf("No closed months to summarize in %d", summary.Year))
		fmt.Fprintln(r.w)
		return nil
	}

	for _, month := range summary.Months {
		if err := r.MonthlySummary(month); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) StatusReport(report *domain.StatusReport) error {
	r.banner(r.header, "Invoice Statuses")
	for _, status := range report.Statuses {
		fmt.Fprintln(r.w, status)
	}
	fmt.Fprintln(r.w)

	r.banner(r.header, fmt.Sprintf("Invoice Totals for %s", report.Label))
	fmt.Fprintln(r.w)

	for _, item := range report.Items {
		if item.Count == 0 {
			r.banner(r.header3, fmt.Sprintf("No %s invoices in %s", item.Status, report.Label))
			fmt.Fprintln(r.w)
			continue
		}

		r.banner(r.header2, fmt.Sprintf("%s invoices in %s", item.Status, report.Label))
		r.line("Invoices", strconv.Itoa(item.Count))
		r.line("Before Tax/Fees", utils.FormatMoney(item.Subtotal))
		r.line("Fees", utils.FormatMoney(item.Fees))
		r.line("Total tax", utils.FormatMoney(item.Tax))
		fmt.Fprintln(r.w)
	}
	fmt.Fprintln(r.w)

	return nil
}

func (r *TextRenderer) MonthlyReport(report *domain.MonthlyReport) error {
	if err := r.StatusReport(report.Statuses); err != nil {
		return err
	}
	return r.InvoiceReport(report.Invoices)
}

func (r *TextRenderer) InvoiceLookup(lookup *domain.InvoiceLookup) error {
	if !lookup.Found() {
		r.banner(r.header3, fmt.Sprintf("No invoice %s", lookup.InvoiceNumber))
		return nil
	}

	r.banner(r.header2, fmt.Sprintf("Invoice %s", lookup.InvoiceNumber))
	writeInvoiceTable(r.w, lookup.Invoices)

	return nil
}
