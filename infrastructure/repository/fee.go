package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/pkg/log"
)

const (
	feeLedgerTable = "tblaccounts a"

	// Limite de ids por IN; fica abaixo do limite de parâmetros do SQLite antigo (999)
	feeChunkSize = 500
)

//go:generate mockgen -source=fee.go -destination=mocks/fee_mock.go -package=mocks

// FeeRepository soma as taxas do livro tblaccounts por fatura
type FeeRepository interface {
	TotalByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
	TotalsByInvoices(ctx context.Context, invoiceIDs []int64) (map[int64]decimal.Decimal, error)
}

type feeRepository struct {
	q queryRunner
}

func NewFeeRepository(provider sqldb.Provider, logger log.Logger) FeeRepository {
	return &feeRepository{
		q: queryRunner{provider: provider, logger: logger},
	}
}

// TotalByInvoice retorna a soma das taxas da fatura; sem lançamentos o resultado é zero
func (r *feeRepository) TotalByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	builder := r.q.builder().
		Select("COALESCE(SUM(a.fees), 0)").
		From(feeLedgerTable).
		Where(squirrel.Eq{"a.invoiceid": invoiceID})

	total := decimal.Zero
	err := r.q.run(ctx, "fees.total_by_invoice", builder, func(rows *sql.Rows) error {
		var sum decimal.NullDecimal
		if err := rows.Scan(&sum); err != nil {
			return err
		}
		if sum.Valid {
			total = sum.Decimal
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// TotalsByInvoices resolve as taxas de várias faturas com uma query agrupada por bloco de ids.
// Faturas sem lançamentos ficam com zero no mapa.
func (r *feeRepository) TotalsByInvoices(ctx context.Context, invoiceIDs []int64) (map[int64]decimal.Decimal, error) {
	ids := uniqueIDs(invoiceIDs)
	totals := make(map[int64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return totals, nil
	}

	for _, id := range ids {
		totals[id] = decimal.Zero
	}

	conn, err := r.q.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	for _, block := range chunk(ids, feeChunkSize) {
		builder := r.q.builder().
			Select("a.invoiceid", "COALESCE(SUM(a.fees), 0)").
			From(feeLedgerTable).
			Where(squirrel.Eq{"a.invoiceid": block}).
			GroupBy("a.invoiceid")

		err := r.q.runWith(ctx, conn, "fees.totals_by_invoices", builder, func(rows *sql.Rows) error {
			var invoiceID int64
			var sum decimal.NullDecimal
			if err := rows.Scan(&invoiceID, &sum); err != nil {
				return err
			}
			if sum.Valid {
				totals[invoiceID] = sum.Decimal
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return totals, nil
}
