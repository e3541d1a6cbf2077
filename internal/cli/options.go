package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/billing-report/internal/render"
	"github.com/vfg2006/billing-report/internal/usecases/reporting"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
)

// Nomes das flags
const (
	flagForce        = "force"
	flagCron         = "cron"
	flagAllInvoices  = "all-invoices"
	flagPaidInvoices = "paid-invoices"
	flagSummaryYear  = "summary-year"
	flagInvoice      = "invoice"
	flagDebug        = "debug"
	flagOutput       = "output"
	flagNoColor      = "no-color"
)

type Options struct {
	Force        bool
	Cron         bool
	AllInvoices  string
	PaidInvoices string
	SummaryYear  string
	Invoice      string
	Debug        bool
	Output       string
	NoColor      bool
}

func (o *Options) bind(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.BoolVar(&o.Force, flagForce, false, "Run the full monthly report for last month regardless of the date")
	flags.BoolVar(&o.Cron, flagCron, false, "Run the full monthly report only when today matches REPORT_CRON_SCHEDULE (first day of the month by default)")
	flags.StringVar(&o.AllInvoices, flagAllInvoices, "", "All invoices of a month: last (default), this or MMM-YYYY (e.g. Aug-2021)")
	flags.StringVar(&o.PaidInvoices, flagPaidInvoices, "", "Paid invoices of a month: last (default), this or MMM-YYYY")
	flags.StringVar(&o.SummaryYear, flagSummaryYear, "", "Paid summary of every closed month of a year (default: this year)")
	flags.StringVar(&o.Invoice, flagInvoice, "", "Look up a single invoice by number")
	flags.BoolVar(&o.Debug, flagDebug, false, "Trace queries and their arguments on stderr")
	flags.StringVarP(&o.Output, flagOutput, "o", render.FormatText, "Output format: text or json")
	flags.BoolVar(&o.NoColor, flagNoColor, false, "Disable colored banners")

	// Valor opcional: "--all-invoices" sozinho vale "last" e o mês pode vir como argumento
	flags.Lookup(flagAllInvoices).NoOptDefVal = reporting.PeriodLast
	flags.Lookup(flagPaidInvoices).NoOptDefVal = reporting.PeriodLast
	flags.Lookup(flagSummaryYear).NoOptDefVal = reporting.PeriodThis
}

type actionKind int

const (
	actionNone actionKind = iota
	actionForce
	actionCron
	actionAllInvoices
	actionPaidInvoices
	actionSummaryYear
	actionInvoice
)

func (k actionKind) String() string {
	switch k {
	case actionForce:
		return flagForce
	case actionCron:
		return flagCron
	case actionAllInvoices:
		return flagAllInvoices
	case actionPaidInvoices:
		return flagPaidInvoices
	case actionSummaryYear:
		return flagSummaryYear
	case actionInvoice:
		return flagInvoice
	}
	return "none"
}

type action struct {
	kind  actionKind
	value string
}

type candidate struct {
	flag  string
	kind  actionKind
	value *string
}

// resolveAction escolhe a única ação da execução pela ordem fixa de precedência:
// force, cron, all-invoices, paid-invoices, summary-year, invoice.
// argv é a linha de comando original, usada para achar a flag dona do argumento posicional.
func resolveAction(cmd *cobra.Command, o *Options, args, argv []string) (action, error) {
	flags := cmd.Flags()

	candidates := []candidate{
		{flag: flagForce, kind: actionForce},
		{flag: flagCron, kind: actionCron},
		{flag: flagAllInvoices, kind: actionAllInvoices, value: &o.AllInvoices},
		{flag: flagPaidInvoices, kind: actionPaidInvoices, value: &o.PaidInvoices},
		{flag: flagSummaryYear, kind: actionSummaryYear, value: &o.SummaryYear},
		{flag: flagInvoice, kind: actionInvoice, value: &o.Invoice},
	}

	// O argumento posicional pertence à flag de valor opcional escrita logo antes dele.
	// Sem essa pista, só é aceito quando uma única flag ficou sem valor.
	if len(args) > 0 {
		owner := positionalOwner(argv, args[0])

		var pending []candidate
		for _, c := range candidates {
			if c.value == nil || !flags.Changed(c.flag) {
				continue
			}
			f := flags.Lookup(c.flag)
			if f.NoOptDefVal == "" || *c.value != f.NoOptDefVal {
				continue
			}
			if c.flag == owner {
				pending = []candidate{c}
				break
			}
			pending = append(pending, c)
		}

		if len(pending) != 1 {
			return action{}, reporting.NewReportError(
				reporting.ErrInvalidInput,
				cliErrors.ErrInvalidInput,
				fmt.Sprintf("unexpected argument %q", args[0]),
			)
		}
		*pending[0].value = args[0]
	}

	for _, c := range candidates {
		if !flags.Changed(c.flag) {
			continue
		}
		if c.kind == actionForce && !o.Force || c.kind == actionCron && !o.Cron {
			continue
		}
		a := action{kind: c.kind}
		if c.value != nil {
			a.value = *c.value
		}
		return a, nil
	}

	return action{kind: actionNone}, nil
}

// positionalOwner devolve o nome da flag escrita logo antes de arg, como em
// "--summary-year 2023", ou vazio quando arg não vem depois de uma flag longa sem "="
func positionalOwner(argv []string, arg string) string {
	for i := 1; i < len(argv); i++ {
		if argv[i-1] == "--" {
			break
		}
		if argv[i] != arg {
			continue
		}
		prev := argv[i-1]
		if strings.HasPrefix(prev, "--") && !strings.Contains(prev, "=") {
			return strings.TrimPrefix(prev, "--")
		}
	}
	return ""
}

// validate confere o valor da ação antes de carregar configuração ou abrir conexão,
// assim uma entrada inválida sempre sai como InvalidInput
func (a action) validate(now time.Time) error {
	switch a.kind {
	case actionAllInvoices, actionPaidInvoices:
		_, err := reporting.ResolvePeriod(a.value, now)
		return err
	case actionSummaryYear:
		_, err := reporting.ResolveYear(a.value, now)
		return err
	case actionInvoice:
		if strings.TrimSpace(a.value) == "" {
			return reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrInvalidInput, "invoice number is required")
		}
	}
	return nil
}
