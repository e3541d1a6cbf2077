// Package cli implementa a linha de comando do billing-report: uma ação por execução,
// escolhida pela primeira flag reconhecida na ordem de precedência.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/internal/render"
	"github.com/vfg2006/billing-report/internal/usecases/reporting"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
	"github.com/vfg2006/billing-report/pkg/log"
)

var version = "1.0.0"

type command struct {
	opts   Options
	build  Builder
	now    func() time.Time
	stdout io.Writer
	stderr io.Writer
	root   *cobra.Command
}

func NewRootCommand(build Builder, now func() time.Time, stdout, stderr io.Writer) *cobra.Command {
	c := &command{
		build:  build,
		now:    now,
		stdout: stdout,
		stderr: stderr,
	}

	c.root = &cobra.Command{
		Use:   "billing-report [month|year]",
		Short: "Invoice, fee and net reports from the WHMCS billing database",
		Long: `billing-report reads invoices, processing fees and clients from a WHMCS database
and prints monthly invoice tables, monthly and yearly summaries of paid invoices
and the full monthly report used by the first-of-the-month cron job.

Exactly one action runs per invocation, chosen in this order:
--force, --cron, --all-invoices, --paid-invoices, --summary-year, --invoice.

Database credentials come from the environment (or a .env file):
  DB_DRIVER (mysql, postgres or sqlite), DB_HOST, DB_PORT, DB_USER, DB_PASS, DB_NAME`,
		Example: `  # Full report for last month, only on the first day of the month
  billing-report --cron

  # All invoices of August 2021
  billing-report --all-invoices Aug-2021

  # Paid invoices of the current month
  billing-report --paid-invoices=this

  # Paid summary of each closed month of 2023, as JSON
  billing-report --summary-year 2023 -o json

  # A single invoice
  billing-report --invoice 1042`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	c.root.SetOut(stdout)
	c.root.SetErr(stderr)
	c.root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrInvalidInput, err.Error())
	})

	c.opts.bind(c.root)

	return c.root
}

// Execute roda a linha de comando e devolve o código de saída do processo
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, build Builder) int {
	return execute(ctx, NewRootCommand(build, time.Now, stdout, stderr), args, stderr)
}

// argvKey guarda no contexto a linha de comando original
type argvKey struct{}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	ctx = context.WithValue(ctx, argvKey{}, args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return cliErrors.ExitOK
	}

	return writeError(stderr, cmd, err)
}

func writeError(w io.Writer, cmd *cobra.Command, err error) int {
	var reportErr *reporting.ReportError
	if !errors.As(err, &reportErr) {
		// Erros do próprio cobra (argumentos a mais, flag sem valor)
		reportErr = reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrInvalidInput, err.Error())
	}

	var details any
	if query, args, ok := reporting.QueryDetails(err); ok {
		details = fmt.Sprintf("query: %s args: %v", query, args)
	}

	output, _ := cmd.Flags().GetString(flagOutput)
	if output == render.FormatJSON {
		return cliErrors.WriteJSONError(w, reportErr.Code, reportErr.Error(), details)
	}

	return cliErrors.WriteError(w, reportErr.Code, reportErr.Error(), details)
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	if c.opts.NoColor {
		color.NoColor = true
	}

	var argv []string
	if ctx := cmd.Context(); ctx != nil {
		argv, _ = ctx.Value(argvKey{}).([]string)
	}

	act, err := resolveAction(cmd, &c.opts, args, argv)
	if err != nil {
		return err
	}

	if act.kind == actionNone {
		_ = cmd.Help()
		return reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrMissingAction, "No arguments provided")
	}

	// O fuso da configuração ainda não é conhecido; o formato do mês e do ano não depende dele
	if err := act.validate(c.now()); err != nil {
		return err
	}

	renderer, err := render.New(c.stdout, render.Options{Format: c.opts.Output, NoColor: c.opts.NoColor})
	if err != nil {
		return reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrInvalidFormat, err.Error())
	}

	app, err := c.build(BuildOptions{Debug: c.opts.Debug, LogOutput: c.stderr})
	if err != nil {
		return reporting.Classify(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, correlationID := log.WithCorrelationID(ctx)
	if app.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.Timeout)
		defer cancel()
	}

	loc := app.Location
	if loc == nil {
		loc = time.Local
	}
	now := c.now().In(loc)

	logger := app.Logger.WithContext(ctx).WithFields(log.Fields{
		"action": act.kind.String(),
		"value":  act.value,
	})
	logger.Info("Iniciando relatório")

	startTime := time.Now()
	if err := c.dispatch(ctx, app, renderer, act, now); err != nil {
		logger.WithError(err).Error("Relatório interrompido")
		return reporting.Classify(err)
	}

	logger.WithFields(log.Fields{
		"correlation_id": correlationID,
		"duration":       time.Since(startTime).String(),
	}).Info("Relatório concluído")

	return nil
}

// dispatch resolve a janela no fuso da configuração e só então conecta;
// nada é renderizado antes de todos os dados estarem carregados
func (c *command) dispatch(ctx context.Context, app *App, renderer render.Renderer, act action, now time.Time) error {
	switch act.kind {
	case actionForce, actionCron:
		if act.kind == actionCron && !app.Gate.ShouldRun(now) {
			app.Logger.WithContext(ctx).WithFields(log.Fields{
				"today":    now.Format(time.DateOnly),
				"next_run": app.Gate.NextRun(now).Format(time.DateOnly),
			}).Info("Hoje não é dia de relatório, nada a fazer")
			return nil
		}

		period, err := reporting.ResolvePeriod(reporting.PeriodLast, now)
		if err != nil {
			return err
		}
		reporter, err := app.Connect(ctx)
		if err != nil {
			return err
		}
		report, err := reporter.MonthlyReport(ctx, period)
		if err != nil {
			return err
		}
		return renderer.MonthlyReport(report)

	case actionAllInvoices, actionPaidInvoices:
		period, err := reporting.ResolvePeriod(act.value, now)
		if err != nil {
			return err
		}
		status := domain.StatusAll
		if act.kind == actionPaidInvoices {
			status = domain.InvoiceStatusPaid
		}
		reporter, err := app.Connect(ctx)
		if err != nil {
			return err
		}
		report, err := reporter.InvoiceReport(ctx, period, status)
		if err != nil {
			return err
		}
		return renderer.InvoiceReport(report)

	case actionSummaryYear:
		year, err := reporting.ResolveYear(act.value, now)
		if err != nil {
			return err
		}
		reporter, err := app.Connect(ctx)
		if err != nil {
			return err
		}
		summary, err := reporter.YearlySummary(ctx, year, now)
		if err != nil {
			return err
		}
		return renderer.YearlySummary(summary)

	case actionInvoice:
		reporter, err := app.Connect(ctx)
		if err != nil {
			return err
		}
		lookup, err := reporter.LookupInvoice(ctx, act.value)
		if err != nil {
			return err
		}
		return renderer.InvoiceLookup(lookup)
	}

	return reporting.NewReportError(reporting.ErrInvalidInput, cliErrors.ErrMissingAction, "No arguments provided")
}
