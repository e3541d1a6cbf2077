// Package render escreve os relatórios no terminal (tabela e blocos de resumo) ou em JSON
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/billing-report/internal/domain"
)

// Formatos de saída suportados
const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Renderer formata os relatórios já calculados. Nenhuma regra numérica além da soma fica aqui.
type Renderer interface {
	InvoiceReport(report *domain.InvoiceReport) error
	MonthlySummary(summary *domain.MonthlySummary) error
	YearlySummary(summary *domain.YearlySummary) error
	StatusReport(report *domain.StatusReport) error
	MonthlyReport(report *domain.MonthlyReport) error
	InvoiceLookup(lookup *domain.InvoiceLookup) error
}

type Options struct {
	Format  string
	NoColor bool
}

func New(w io.Writer, opts Options) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return NewTextRenderer(w, opts.NoColor), nil
	case FormatJSON:
		return NewJSONRenderer(w), nil
	}

	return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownFormat, opts.Format, FormatText, FormatJSON)
}
