package sandbox

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/log"
	"github.com/vfg2006/billing-report/pkg/utils"
)

type Client struct {
	ID          int64
	CompanyName string
}

type Invoice struct {
	ID            int64
	InvoiceNumber string
	ClientID      int64
	Date          time.Time
	DatePaid      *time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        string
}

// Fee é uma linha do livro de taxas (tblaccounts)
type Fee struct {
	InvoiceID int64
	Amount    decimal.Decimal
}

type Fixture struct {
	Clients  []Client
	Invoices []Invoice
	Fees     []Fee
}

// Seed insere o fixture em uma única transação
func Seed(ctx context.Context, db *sql.DB, fx Fixture, logger log.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := seed(ctx, tx, fx, logger); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func seed(ctx context.Context, tx *sql.Tx, fx Fixture, logger log.Logger) error {
	startTime := time.Now()

	clientStmt, err := tx.PrepareContext(ctx, `INSERT INTO tblclients (id, companyname) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("erro ao preparar statement para tblclients: %w", err)
	}
	defer clientStmt.Close()

	for _, c := range fx.Clients {
		if _, err := clientStmt.ExecContext(ctx, c.ID, c.CompanyName); err != nil {
			return fmt.Errorf("erro ao inserir cliente %d: %w", c.ID, err)
		}
	}

	invoiceStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tblinvoices (id, userid, invoicenum, date, duedate, datepaid, subtotal, tax, total, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("erro ao preparar statement para tblinvoices: %w", err)
	}
	defer invoiceStmt.Close()

	for i, inv := range fx.Invoices {
		// WHMCS grava datas de pagamento ausentes como data zerada
		datePaid := "0000-00-00 00:00:00"
		if inv.DatePaid != nil {
			datePaid = inv.DatePaid.Format(time.DateTime)
		}

		_, err := invoiceStmt.ExecContext(ctx,
			inv.ID,
			inv.ClientID,
			inv.InvoiceNumber,
			inv.Date.Format(time.DateOnly),
			inv.Date.AddDate(0, 0, 7).Format(time.DateOnly),
			datePaid,
			inv.Subtotal.String(),
			inv.Tax.String(),
			inv.Total.String(),
			inv.Status,
		)
		if err != nil {
			return fmt.Errorf("erro ao inserir fatura [%d/%d] %d: %w", i+1, len(fx.Invoices), inv.ID, err)
		}
	}

	feeStmt, err := tx.PrepareContext(ctx, `INSERT INTO tblaccounts (invoiceid, fees, description) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("erro ao preparar statement para tblaccounts: %w", err)
	}
	defer feeStmt.Close()

	for _, f := range fx.Fees {
		if _, err := feeStmt.ExecContext(ctx, f.InvoiceID, f.Amount.String(), "Invoice Payment"); err != nil {
			return fmt.Errorf("erro ao inserir taxa da fatura %d: %w", f.InvoiceID, err)
		}
	}

	logger.WithFields(log.Fields{
		"clients":  len(fx.Clients),
		"invoices": len(fx.Invoices),
		"fees":     len(fx.Fees),
		"duration": time.Since(startTime).String(),
	}).Info("Dados do sandbox inseridos")

	return nil
}

var demoStatuses = []string{
	domain.InvoiceStatusPaid,
	domain.InvoiceStatusPaid,
	domain.InvoiceStatusPaid,
	domain.InvoiceStatusUnpaid,
	domain.InvoiceStatusCancelled,
}

// DemoFixture gera dados de exemplo para os últimos meses antes de now.
// A semente fixa datas, valores, status e taxas; os números das faturas vêm do nanoid.
func DemoFixture(now time.Time, months, invoicesPerMonth int, seed int64) (Fixture, error) {
	rnd := rand.New(rand.NewSource(seed))
	fx := Fixture{}

	for id := int64(1); id <= 8; id++ {
		fx.Clients = append(fx.Clients, Client{ID: id, CompanyName: fmt.Sprintf("Client %02d Ltd", id)})
	}

	taxRate := decimal.NewFromFloat(0.08)
	feeRate := decimal.NewFromFloat(0.029)
	feeFixed := decimal.NewFromFloat(0.30)

	var invoiceID int64
	for m := months; m >= 0; m-- {
		period := domain.MonthPeriod(now.Year(), now.Month()-time.Month(m), now.Location())
		days := int(period.End.Sub(period.Start).Hours() / 24)

		for n := 0; n < invoicesPerMonth; n++ {
			invoiceID++
			number, err := utils.GenerateID()
			if err != nil {
				return Fixture{}, fmt.Errorf("erro ao gerar número da fatura: %w", err)
			}

			date := period.Start.AddDate(0, 0, rnd.Intn(days))
			if date.After(now) {
				continue
			}

			subtotal := decimal.NewFromInt(int64(10 + rnd.Intn(490)))
			tax := subtotal.Mul(taxRate).Round(2)
			total := subtotal.Add(tax)
			status := demoStatuses[rnd.Intn(len(demoStatuses))]

			inv := Invoice{
				ID:            invoiceID,
				InvoiceNumber: "INV-" + number,
				ClientID:      int64(1 + rnd.Intn(len(fx.Clients))),
				Date:          date,
				Subtotal:      subtotal,
				Tax:           tax,
				Total:         total,
				Status:        status,
			}

			if status == domain.InvoiceStatusPaid {
				paid := date.AddDate(0, 0, rnd.Intn(5))
				inv.DatePaid = &paid
				fx.Fees = append(fx.Fees, Fee{
					InvoiceID: invoiceID,
					Amount:    total.Mul(feeRate).Add(feeFixed).Round(2),
				})
			}

			fx.Invoices = append(fx.Invoices, inv)
		}
	}

	return fx, nil
}
