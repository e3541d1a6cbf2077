package render

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/billing-report/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONRenderer escreve um documento JSON por relatório, identificado pelo campo "report"
type JSONRenderer struct {
	enc *jsoniter.Encoder
}

type envelope struct {
	Report string      `json:"report"`
	Data   interface{} `json:"data"`
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) write(report string, data interface{}) error {
	return r.enc.Encode(envelope{Report: report, Data: data})
}

func (r *JSONRenderer) InvoiceReport(report *domain.InvoiceReport) error {
	return r.write("invoices", report)
}

func (r *JSONRenderer) MonthlySummary(summary *domain.MonthlySummary) error {
	return r.write("monthly_summary", summary)
}

func (r *JSONRenderer) YearlySummary(summary *domain.YearlySummary) error {
	return r.write("yearly_summary", summary)
}

func (r *JSONRenderer) StatusReport(report *domain.StatusReport) error {
	return r.write("statuses", report)
}

func (r *JSONRenderer) MonthlyReport(report *domain.MonthlyReport) error {
	return r.write("monthly_report", report)
}

func (r *JSONRenderer) InvoiceLookup(lookup *domain.InvoiceLookup) error {
	return r.write("invoice", lookup)
}
