package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/billing-report/infrastructure/repository"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
	"github.com/vfg2006/billing-report/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Reporter monta os relatórios de faturamento. Todos os dados são buscados antes de
// qualquer renderização, então uma falha nunca produz relatório parcial.
type Reporter interface {
	// FetchInvoices retorna as faturas da janela com as taxas resolvidas (apenas Paid)
	FetchInvoices(ctx context.Context, period domain.Period, status string) (int, []*domain.Invoice, error)

	// InvoiceReport retorna a tabela de faturas da janela com nomes de clientes e o resumo das pagas
	InvoiceReport(ctx context.Context, period domain.Period, status string) (*domain.InvoiceReport, error)

	// MonthlySummary reduz as faturas do mês aos totais do resumo
	MonthlySummary(ctx context.Context, period domain.Period, status string) (*domain.MonthlySummary, error)

	// YearlySummary gera um resumo mensal (Paid) para cada mês encerrado do ano
	YearlySummary(ctx context.Context, year int, now time.Time) (*domain.YearlySummary, error)

	// StatusReport totaliza as faturas da janela por status
	StatusReport(ctx context.Context, period domain.Period) (*domain.StatusReport, error)

	// MonthlyReport é o relatório completo usado por --force e --cron
	MonthlyReport(ctx context.Context, period domain.Period) (*domain.MonthlyReport, error)

	// LookupInvoice busca uma fatura pelo número, em qualquer data
	LookupInvoice(ctx context.Context, invoiceNumber string) (*domain.InvoiceLookup, error)
}

type Service struct {
	invoiceRepository repository.InvoiceRepository
	feeRepository     repository.FeeRepository
	clientRepository  repository.ClientRepository
	logger            log.Logger
}

func NewService(
	invoiceRepository repository.InvoiceRepository,
	feeRepository repository.FeeRepository,
	clientRepository repository.ClientRepository,
	logger log.Logger,
) Reporter {
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		invoiceRepository: invoiceRepository,
		feeRepository:     feeRepository,
		clientRepository:  clientRepository,
		logger:            logger,
	}
}

func (s *Service) FetchInvoices(ctx context.Context, period domain.Period, status string) (int, []*domain.Invoice, error) {
	logger := s.logger.WithContext(ctx).WithFields(log.Fields{
		"period": period.String(),
		"status": status,
	})

	invoices, err := s.invoiceRepository.ListByPeriod(ctx, period, status)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar faturas")
		return 0, nil, Classify(errors.Wrapf(err, "fetching invoices for %s", period.Label()))
	}

	if err := s.resolveFees(ctx, invoices); err != nil {
		logger.WithError(err).Error("Erro ao buscar taxas das faturas")
		return 0, nil, Classify(errors.Wrapf(err, "resolving fees for %s", period.Label()))
	}

	logger.WithField("count", len(invoices)).Debug("Faturas carregadas")

	return len(invoices), invoices, nil
}

func (s *Service) InvoiceReport(ctx context.Context, period domain.Period, status string) (*domain.InvoiceReport, error) {
	count, invoices, err := s.FetchInvoices(ctx, period, status)
	if err != nil {
		return nil, err
	}

	if err := s.resolveClientNames(ctx, invoices); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Erro ao buscar nomes dos clientes")
		return nil, Classify(errors.Wrapf(err, "resolving client names for %s", period.Label()))
	}

	// O resumo é sempre das faturas pagas. Quando o filtro já inclui as pagas
	// não há motivo para consultar de novo.
	var summary *domain.MonthlySummary
	switch {
	case domain.IsAllStatuses(status):
		summary = domain.NewMonthlySummary(period, domain.InvoiceStatusPaid, paidOnly(invoices))
	case status == domain.InvoiceStatusPaid:
		summary = domain.NewMonthlySummary(period, domain.InvoiceStatusPaid, invoices)
	default:
		summary, err = s.MonthlySummary(ctx, period, domain.InvoiceStatusPaid)
		if err != nil {
			return nil, err
		}
	}

	return &domain.InvoiceReport{
		Period:   period,
		Label:    period.Label(),
		Status:   displayStatus(status),
		Count:    count,
		Invoices: invoices,
		Totals:   domain.SumInvoices(invoices),
		Summary:  summary,
	}, nil
}

func (s *Service) MonthlySummary(ctx context.Context, period domain.Period, status string) (*domain.MonthlySummary, error) {
	if strings.TrimSpace(status) == "" {
		status = domain.InvoiceStatusPaid
	}

	// A janela é recalculada a partir do mês para garantir [dia 1, dia 1 do mês seguinte)
	window := domain.MonthPeriod(period.Start.Year(), period.Start.Month(), period.Start.Location())

	_, invoices, err := s.FetchInvoices(ctx, window, status)
	if err != nil {
		return nil, err
	}

	return domain.NewMonthlySummary(window, displayStatus(status), invoices), nil
}

func (s *Service) YearlySummary(ctx context.Context, year int, now time.Time) (*domain.YearlySummary, error) {
	if year > now.Year() {
		return nil, NewReportError(ErrInvalidInput, cliErrors.ErrInvalidInput, "year is in the future")
	}

	periods := YearPeriods(year, now)
	yearly := &domain.YearlySummary{
		Year:   year,
		Months: make([]*domain.MonthlySummary, 0, len(periods)),
	}

	for _, period := range periods {
		summary, err := s.MonthlySummary(ctx, period, domain.InvoiceStatusPaid)
		if err != nil {
			return nil, err
		}
		yearly.Months = append(yearly.Months, summary)
	}

	s.logger.WithContext(ctx).WithFields(log.Fields{
		"year":   year,
		"months": len(yearly.Months),
	}).Info("Resumo anual gerado")

	return yearly, nil
}

func (s *Service) StatusReport(ctx context.Context, period domain.Period) (*domain.StatusReport, error) {
	statuses, err := s.invoiceRepository.ListStatuses(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Erro ao listar status das faturas")
		return nil, Classify(errors.Wrap(err, "listing invoice statuses"))
	}

	_, invoices, err := s.FetchInvoices(ctx, period, domain.StatusAll)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string][]*domain.Invoice, len(statuses))
	for _, inv := range invoices {
		byStatus[inv.Status] = append(byStatus[inv.Status], inv)
	}

	items := make([]*domain.StatusBreakdown, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, &domain.StatusBreakdown{
			Status:        status,
			InvoiceTotals: domain.SumInvoices(byStatus[status]),
		})
	}

	return &domain.StatusReport{
		Period:   period,
		Label:    period.Label(),
		Statuses: statuses,
		Items:    items,
	}, nil
}

func (s *Service) MonthlyReport(ctx context.Context, period domain.Period) (*domain.MonthlyReport, error) {
	statuses, err := s.StatusReport(ctx, period)
	if err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceReport(ctx, period, domain.StatusAll)
	if err != nil {
		return nil, err
	}

	return &domain.MonthlyReport{
		Statuses: statuses,
		Invoices: invoices,
	}, nil
}

func (s *Service) LookupInvoice(ctx context.Context, invoiceNumber string) (*domain.InvoiceLookup, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, NewReportError(ErrInvalidInput, cliErrors.ErrInvalidInput, "invoice number is required")
	}

	invoices, err := s.invoiceRepository.ListByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, Classify(errors.Wrapf(err, "fetching invoice %s", invoiceNumber))
	}

	if err := s.resolveFees(ctx, invoices); err != nil {
		return nil, Classify(errors.Wrapf(err, "resolving fees for invoice %s", invoiceNumber))
	}

	if err := s.resolveClientNames(ctx, invoices); err != nil {
		return nil, Classify(errors.Wrapf(err, "resolving client for invoice %s", invoiceNumber))
	}

	return &domain.InvoiceLookup{
		InvoiceNumber: invoiceNumber,
		Invoices:      invoices,
	}, nil
}

// resolveFees preenche as taxas das faturas pagas com uma única consulta agrupada.
// As demais ficam com zero.
func (s *Service) resolveFees(ctx context.Context, invoices []*domain.Invoice) error {
	paidIDs := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		inv.Fees = decimal.Zero
		if inv.IsPaid() {
			paidIDs = append(paidIDs, inv.ID)
		}
	}

	if len(paidIDs) == 0 {
		return nil
	}

	fees, err := s.feeRepository.TotalsByInvoices(ctx, paidIDs)
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		if !inv.IsPaid() {
			continue
		}
		if fee, ok := fees[inv.ID]; ok {
			inv.Fees = fee
		}
	}

	return nil
}

func (s *Service) resolveClientNames(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	clientIDs := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		clientIDs = append(clientIDs, inv.ClientID)
	}

	names, err := s.clientRepository.GetNames(ctx, clientIDs)
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		inv.ClientName = names[inv.ClientID]
	}

	return nil
}

func paidOnly(invoices []*domain.Invoice) []*domain.Invoice {
	paid := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.IsPaid() {
			paid = append(paid, inv)
		}
	}
	return paid
}

func displayStatus(status string) string {
	if domain.IsAllStatuses(status) {
		return domain.StatusAll
	}
	return status
}
