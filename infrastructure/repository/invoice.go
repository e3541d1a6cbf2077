package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/internal/config"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/log"
)

const (
	invoicesTable = "tblinvoices i"
)

var invoiceColumns = []string{
	"i.id",
	"i.invoicenum",
	"i.subtotal",
	"i.total",
	"i.tax",
	"i.status",
	"i.date",
	"i.datepaid",
	"i.userid",
}

//go:generate mockgen -source=invoice.go -destination=mocks/invoice_mock.go -package=mocks

// InvoiceRepository lê faturas de tblinvoices. Taxas não são resolvidas aqui (Fees = 0).
type InvoiceRepository interface {
	ListByPeriod(ctx context.Context, period domain.Period, status string) ([]*domain.Invoice, error)
	ListByNumber(ctx context.Context, invoiceNumber string) ([]*domain.Invoice, error)
	ListStatuses(ctx context.Context) ([]string, error)
}

type invoiceRepository struct {
	q   queryRunner
	loc *time.Location
}

func NewInvoiceRepository(provider sqldb.Provider, logger log.Logger, loc *time.Location) InvoiceRepository {
	if loc == nil {
		loc = time.Local
	}
	return &invoiceRepository{
		q:   queryRunner{provider: provider, logger: logger},
		loc: loc,
	}
}

// ListByPeriod retorna as faturas com date >= início e date < fim, filtrando por status
// quando o filtro não é "all"
func (r *invoiceRepository) ListByPeriod(ctx context.Context, period domain.Period, status string) ([]*domain.Invoice, error) {
	builder := r.q.builder().
		Select(invoiceColumns...).
		From(invoicesTable).
		Where(squirrel.GtOrEq{"i.date": period.Start.Format(time.DateOnly)}).
		Where(squirrel.Lt{"i.date": period.End.Format(time.DateOnly)}).
		OrderBy("i.date ASC", "i.id ASC")

	if !domain.IsAllStatuses(status) {
		builder = builder.Where(r.statusEquals(status))
	}

	invoices := make([]*domain.Invoice, 0)
	err := r.q.run(ctx, "invoices.list_by_period", builder, func(rows *sql.Rows) error {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return err
		}
		invoices = append(invoices, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// ListByNumber busca pelo número da fatura. No WHMCS o invoicenum costuma ficar vazio
// e a fatura é identificada pelo id, então números puramente numéricos também casam com o id.
func (r *invoiceRepository) ListByNumber(ctx context.Context, invoiceNumber string) ([]*domain.Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)

	var where squirrel.Sqlizer = squirrel.Eq{"i.invoicenum": invoiceNumber}
	if id, err := strconv.ParseInt(invoiceNumber, 10, 64); err == nil {
		where = squirrel.Or{
			squirrel.Eq{"i.invoicenum": invoiceNumber},
			squirrel.Eq{"i.id": id},
		}
	}

	builder := r.q.builder().
		Select(invoiceColumns...).
		From(invoicesTable).
		Where(where).
		OrderBy("i.date ASC", "i.id ASC")

	invoices := make([]*domain.Invoice, 0)
	err := r.q.run(ctx, "invoices.list_by_number", builder, func(rows *sql.Rows) error {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return err
		}
		invoices = append(invoices, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// ListStatuses retorna os status distintos presentes na tabela
func (r *invoiceRepository) ListStatuses(ctx context.Context) ([]string, error) {
	builder := r.q.builder().
		Select("DISTINCT i.status").
		From(invoicesTable).
		OrderBy("i.status ASC")

	statuses := make([]string, 0)
	err := r.q.run(ctx, "invoices.list_statuses", builder, func(rows *sql.Rows) error {
		var status string
		if err := rows.Scan(&status); err != nil {
			return err
		}
		statuses = append(statuses, status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return statuses, nil
}

// statusEquals compara o status de forma exata. No MySQL a collation padrão ignora
// maiúsculas, por isso a comparação binária.
func (r *invoiceRepository) statusEquals(status string) squirrel.Sqlizer {
	if r.q.provider.Driver() == config.DriverMySQL {
		return squirrel.Expr("BINARY i.status = ?", status)
	}
	return squirrel.Eq{"i.status": status}
}

func (r *invoiceRepository) scanInvoice(rows *sql.Rows) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	date := dbDate{loc: r.loc}
	datePaid := dbDate{loc: r.loc}
	var invoiceNumber sql.NullString

	err := rows.Scan(
		&inv.ID,
		&invoiceNumber,
		&inv.Subtotal,
		&inv.Total,
		&inv.Tax,
		&inv.Status,
		&date,
		&datePaid,
		&inv.ClientID,
	)
	if err != nil {
		return nil, err
	}

	inv.InvoiceNumber = invoiceNumber.String
	if date.Time != nil {
		inv.Date = *date.Time
	}
	inv.DatePaid = datePaid.Time

	return inv, nil
}
