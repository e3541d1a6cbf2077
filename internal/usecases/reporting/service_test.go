package reporting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/infrastructure/repository"
	"github.com/vfg2006/billing-report/infrastructure/repository/mocks"
	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
	"github.com/vfg2006/billing-report/pkg/log"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	invoices *mocks.MockInvoiceRepository
	fees     *mocks.MockFeeRepository
	clients  *mocks.MockClientRepository
}

func newTestService(t *testing.T) (Reporter, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		invoices: mocks.NewMockInvoiceRepository(ctrl),
		fees:     mocks.NewMockFeeRepository(ctrl),
		clients:  mocks.NewMockClientRepository(ctrl),
	}

	return NewService(m.invoices, m.fees, m.clients, log.Discard()), m
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

func invoice(id int64, status, total, tax string, clientID int64) *domain.Invoice {
	t := dec(total)
	x := dec(tax)
	return &domain.Invoice{
		ID:            id,
		InvoiceNumber: fmt.Sprintf("INV-%d", id),
		Subtotal:      t.Sub(x),
		Total:         t,
		Tax:           x,
		Status:        status,
		Date:          date(2024, time.February, int(id)),
		ClientID:      clientID,
	}
}

// fixture com totais [100, 200, 50], taxas [5, 0, 2] e impostos [8, 16, 4]
func paidFixture() []*domain.Invoice {
	return []*domain.Invoice{
		invoice(1, domain.InvoiceStatusPaid, "100", "8", 10),
		invoice(2, domain.InvoiceStatusPaid, "200", "16", 20),
		invoice(3, domain.InvoiceStatusPaid, "50", "4", 10),
	}
}

func paidFixtureFees() map[int64]decimal.Decimal {
	return map[int64]decimal.Decimal{
		1: dec("5"),
		2: decimal.Zero,
		3: dec("2"),
	}
}

func TestService_MonthlySummary_Net(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, domain.InvoiceStatusPaid).
		Return(paidFixture(), nil)
	m.fees.EXPECT().
		TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
		Return(paidFixtureFees(), nil)

	summary, err := svc.MonthlySummary(ctx, period, "")
	require.NoError(t, err)

	assert.Equal(t, "February 2024", summary.Label)
	assert.Equal(t, domain.InvoiceStatusPaid, summary.Status)
	assert.Equal(t, 3, summary.Count)
	assertDecimal(t, "350", summary.Total)
	assertDecimal(t, "7", summary.Fees)
	assertDecimal(t, "28", summary.Tax)
	assertDecimal(t, "322", summary.Subtotal)
	assertDecimal(t, "315", summary.NetAmount)
}

func TestService_MonthlySummary_RecomputesWindow(t *testing.T) {
	svc, m := newTestService(t)

	// Uma janela fora do padrão é normalizada para o mês inteiro
	skewed := domain.Period{
		Start: time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
	}

	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), domain.MonthPeriod(2024, time.February, time.UTC), domain.InvoiceStatusPaid).
		Return([]*domain.Invoice{}, nil)

	summary, err := svc.MonthlySummary(context.Background(), skewed, domain.InvoiceStatusPaid)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Count)
	assertDecimal(t, "0", summary.NetAmount)
}

func TestService_FetchInvoices_FeesOnlyForPaid(t *testing.T) {
	svc, m := newTestService(t)
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	invoices := []*domain.Invoice{
		invoice(1, domain.InvoiceStatusPaid, "100", "8", 10),
		invoice(2, domain.InvoiceStatusUnpaid, "200", "16", 20),
		invoice(3, "paid", "50", "4", 10),
		invoice(4, domain.InvoiceStatusCancelled, "80", "0", 30),
	}
	// Valor residual de fee nunca deve vazar para faturas não pagas
	invoices[1].Fees = dec("99")

	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, "all").
		Return(invoices, nil)
	m.fees.EXPECT().
		TotalsByInvoices(gomock.Any(), []int64{1}).
		Return(map[int64]decimal.Decimal{1: dec("3.20")}, nil)

	count, got, err := svc.FetchInvoices(context.Background(), period, "all")
	require.NoError(t, err)

	assert.Equal(t, 4, count)
	require.Len(t, got, 4)
	assertDecimal(t, "3.20", got[0].Fees)
	assertDecimal(t, "0", got[1].Fees)
	assertDecimal(t, "0", got[2].Fees, "status diferente de Paid exato não tem taxa")
	assertDecimal(t, "0", got[3].Fees)
}

func TestService_FetchInvoices_NoPaidSkipsFeeQuery(t *testing.T) {
	svc, m := newTestService(t)
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, domain.InvoiceStatusUnpaid).
		Return([]*domain.Invoice{invoice(7, domain.InvoiceStatusUnpaid, "10", "1", 1)}, nil)

	count, _, err := svc.FetchInvoices(context.Background(), period, domain.InvoiceStatusUnpaid)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_FetchInvoices_Errors(t *testing.T) {
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	tests := []struct {
		name     string
		setup    func(m serviceMocks)
		sentinel error
		code     string
	}{
		{
			name: "Falha na query de faturas",
			setup: func(m serviceMocks) {
				m.invoices.EXPECT().
					ListByPeriod(gomock.Any(), period, "all").
					Return(nil, &repository.QueryError{
						Op:    "invoices.list_by_period",
						Query: "SELECT i.id FROM tblinvoices i WHERE i.date >= ?",
						Args:  []interface{}{"2024-02-01"},
						Err:   errors.New("no such table: tblinvoices"),
					})
			},
			sentinel: ErrQuery,
			code:     cliErrors.ErrDatabaseOperation,
		},
		{
			name: "Falha na query de taxas",
			setup: func(m serviceMocks) {
				m.invoices.EXPECT().
					ListByPeriod(gomock.Any(), period, "all").
					Return(paidFixture(), nil)
				m.fees.EXPECT().
					TotalsByInvoices(gomock.Any(), gomock.Any()).
					Return(nil, &repository.QueryError{Op: "fees.totals_by_invoices", Err: errors.New("boom")})
			},
			sentinel: ErrQuery,
			code:     cliErrors.ErrDatabaseOperation,
		},
		{
			name: "Falha de conexão",
			setup: func(m serviceMocks) {
				m.invoices.EXPECT().
					ListByPeriod(gomock.Any(), period, "all").
					Return(nil, fmt.Errorf("%w: access denied", sqldb.ErrConnection))
			},
			sentinel: ErrConfiguration,
			code:     cliErrors.ErrConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			tt.setup(m)

			_, invoices, err := svc.FetchInvoices(context.Background(), period, "all")
			require.Error(t, err)
			assert.Nil(t, invoices)

			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}
}

func TestService_FetchInvoices_QueryDetailsSurfaced(t *testing.T) {
	svc, m := newTestService(t)
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, domain.InvoiceStatusPaid).
		Return(nil, &repository.QueryError{
			Op:    "invoices.list_by_period",
			Query: "SELECT i.id FROM tblinvoices i WHERE i.status = ?",
			Args:  []interface{}{"Paid"},
			Err:   errors.New("syntax error"),
		})

	_, _, err := svc.FetchInvoices(context.Background(), period, domain.InvoiceStatusPaid)
	require.Error(t, err)

	query, args, ok := QueryDetails(err)
	require.True(t, ok)
	assert.Equal(t, "SELECT i.id FROM tblinvoices i WHERE i.status = ?", query)
	assert.Equal(t, []interface{}{"Paid"}, args)
	assert.Contains(t, err.Error(), "invoices.list_by_period: syntax error")
	assert.NotContains(t, err.Error(), "SELECT i.id FROM tblinvoices i")
}

func TestService_InvoiceReport(t *testing.T) {
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	t.Run("Todas as faturas com resumo das pagas sem nova consulta", func(t *testing.T) {
		svc, m := newTestService(t)

		invoices := append(paidFixture(), invoice(4, domain.InvoiceStatusUnpaid, "40", "2", 30))

		m.invoices.EXPECT().
			ListByPeriod(gomock.Any(), period, "ALL").
			Return(invoices, nil)
		m.fees.EXPECT().
			TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
			Return(paidFixtureFees(), nil)
		m.clients.EXPECT().
			GetNames(gomock.Any(), []int64{10, 20, 10, 30}).
			Return(map[int64]string{10: "Acme", 20: "Globex", 30: "Initech"}, nil)

		report, err := svc.InvoiceReport(context.Background(), period, "ALL")
		require.NoError(t, err)

		assert.Equal(t, "February 2024", report.Label)
		assert.Equal(t, domain.StatusAll, report.Status)
		assert.Equal(t, 4, report.Count)
		assert.Equal(t, "Acme", report.Invoices[0].ClientName)
		assert.Equal(t, "Globex", report.Invoices[1].ClientName)
		assert.Equal(t, "Initech", report.Invoices[3].ClientName)

		assert.Equal(t, 4, report.Totals.Count)
		assertDecimal(t, "390", report.Totals.Total)
		assertDecimal(t, "7", report.Totals.Fees)
		assertDecimal(t, "30", report.Totals.Tax)

		require.NotNil(t, report.Summary)
		assert.Equal(t, 3, report.Summary.Count)
		assertDecimal(t, "315", report.Summary.NetAmount)
	})

	t.Run("Filtro por outro status consulta as pagas para o resumo", func(t *testing.T) {
		svc, m := newTestService(t)

		gomock.InOrder(
			m.invoices.EXPECT().
				ListByPeriod(gomock.Any(), period, domain.InvoiceStatusUnpaid).
				Return([]*domain.Invoice{invoice(4, domain.InvoiceStatusUnpaid, "40", "2", 30)}, nil),
			m.clients.EXPECT().
				GetNames(gomock.Any(), []int64{30}).
				Return(map[int64]string{30: "Initech"}, nil),
			m.invoices.EXPECT().
				ListByPeriod(gomock.Any(), period, domain.InvoiceStatusPaid).
				Return(paidFixture(), nil),
			m.fees.EXPECT().
				TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
				Return(paidFixtureFees(), nil),
		)

		report, err := svc.InvoiceReport(context.Background(), period, domain.InvoiceStatusUnpaid)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Count)
		assertDecimal(t, "40", report.Totals.Total)
		assertDecimal(t, "315", report.Summary.NetAmount)
	})

	t.Run("Janela vazia tem totais zerados", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByPeriod(gomock.Any(), period, domain.InvoiceStatusPaid).
			Return([]*domain.Invoice{}, nil)

		report, err := svc.InvoiceReport(context.Background(), period, domain.InvoiceStatusPaid)
		require.NoError(t, err)

		assert.Equal(t, 0, report.Count)
		assert.Empty(t, report.Invoices)
		assertDecimal(t, "0", report.Totals.Subtotal)
		assertDecimal(t, "0", report.Totals.Total)
		assertDecimal(t, "0", report.Totals.Tax)
		assertDecimal(t, "0", report.Totals.Fees)
		assertDecimal(t, "0", report.Summary.NetAmount)
	})

	t.Run("Cliente inexistente aborta o relatório", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByPeriod(gomock.Any(), period, domain.InvoiceStatusUnpaid).
			Return([]*domain.Invoice{invoice(4, domain.InvoiceStatusUnpaid, "40", "2", 99)}, nil)
		m.clients.EXPECT().
			GetNames(gomock.Any(), []int64{99}).
			Return(nil, fmt.Errorf("%w: id 99", repository.ErrClientNotFound))

		report, err := svc.InvoiceReport(context.Background(), period, domain.InvoiceStatusUnpaid)
		require.Error(t, err)
		assert.Nil(t, report)

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, errors.Is(err, repository.ErrClientNotFound))
		assert.Equal(t, cliErrors.ErrNotFound, CodeOf(err))
	})
}

func TestService_YearlySummary(t *testing.T) {
	now := time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Ano corrente resume os meses encerrados", func(t *testing.T) {
		svc, m := newTestService(t)

		gomock.InOrder(
			m.invoices.EXPECT().
				ListByPeriod(gomock.Any(), domain.MonthPeriod(2024, time.January, time.UTC), domain.InvoiceStatusPaid).
				Return([]*domain.Invoice{}, nil),
			m.invoices.EXPECT().
				ListByPeriod(gomock.Any(), domain.MonthPeriod(2024, time.February, time.UTC), domain.InvoiceStatusPaid).
				Return(paidFixture(), nil),
			m.fees.EXPECT().
				TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
				Return(paidFixtureFees(), nil),
			m.invoices.EXPECT().
				ListByPeriod(gomock.Any(), domain.MonthPeriod(2024, time.March, time.UTC), domain.InvoiceStatusPaid).
				Return([]*domain.Invoice{}, nil),
		)

		yearly, err := svc.YearlySummary(context.Background(), 2024, now)
		require.NoError(t, err)

		assert.Equal(t, 2024, yearly.Year)
		require.Len(t, yearly.Months, 3)
		assert.Equal(t, "January 2024", yearly.Months[0].Label)
		assertDecimal(t, "315", yearly.Months[1].NetAmount)
		assert.Equal(t, "March 2024", yearly.Months[2].Label)
	})

	t.Run("Ano passado resume os doze meses", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByPeriod(gomock.Any(), gomock.Any(), domain.InvoiceStatusPaid).
			Return([]*domain.Invoice{}, nil).
			Times(12)

		yearly, err := svc.YearlySummary(context.Background(), 2022, now)
		require.NoError(t, err)
		assert.Len(t, yearly.Months, 12)
	})

	t.Run("Falha em um mês interrompe o resumo", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByPeriod(gomock.Any(), gomock.Any(), domain.InvoiceStatusPaid).
			Return(nil, &repository.QueryError{Op: "invoices.list_by_period", Err: errors.New("gone")})

		yearly, err := svc.YearlySummary(context.Background(), 2024, now)
		require.Error(t, err)
		assert.Nil(t, yearly)
		assert.True(t, errors.Is(err, ErrQuery))
	})

	t.Run("Ano futuro", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.YearlySummary(context.Background(), 2030, now)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestService_StatusReport(t *testing.T) {
	svc, m := newTestService(t)
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	invoices := append(paidFixture(),
		invoice(4, domain.InvoiceStatusUnpaid, "40", "2", 30),
		invoice(5, domain.InvoiceStatusUnpaid, "60", "3", 30),
	)

	m.invoices.EXPECT().
		ListStatuses(gomock.Any()).
		Return([]string{"Cancelled", "Paid", "Unpaid"}, nil)
	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, domain.StatusAll).
		Return(invoices, nil)
	m.fees.EXPECT().
		TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
		Return(paidFixtureFees(), nil)

	report, err := svc.StatusReport(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cancelled", "Paid", "Unpaid"}, report.Statuses)
	require.Len(t, report.Items, 3)

	assert.Equal(t, "Cancelled", report.Items[0].Status)
	assert.Equal(t, 0, report.Items[0].Count)
	assertDecimal(t, "0", report.Items[0].Total)

	assert.Equal(t, 3, report.Items[1].Count)
	assertDecimal(t, "7", report.Items[1].Fees)

	assert.Equal(t, 2, report.Items[2].Count)
	assertDecimal(t, "100", report.Items[2].Total)
	assertDecimal(t, "5", report.Items[2].Tax)
	assertDecimal(t, "0", report.Items[2].Fees)
}

func TestService_LookupInvoice(t *testing.T) {
	t.Run("Número vazio", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.LookupInvoice(context.Background(), "  ")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("Fatura paga com taxa e cliente", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByNumber(gomock.Any(), "1042").
			Return([]*domain.Invoice{invoice(1042, domain.InvoiceStatusPaid, "120", "10", 10)}, nil)
		m.fees.EXPECT().
			TotalsByInvoices(gomock.Any(), []int64{1042}).
			Return(map[int64]decimal.Decimal{1042: dec("3.78")}, nil)
		m.clients.EXPECT().
			GetNames(gomock.Any(), []int64{10}).
			Return(map[int64]string{10: "Acme"}, nil)

		lookup, err := svc.LookupInvoice(context.Background(), "1042")
		require.NoError(t, err)

		assert.True(t, lookup.Found())
		assert.Equal(t, "1042", lookup.InvoiceNumber)
		assertDecimal(t, "3.78", lookup.Invoices[0].Fees)
		assert.Equal(t, "Acme", lookup.Invoices[0].ClientName)
	})

	t.Run("Fatura inexistente não é erro", func(t *testing.T) {
		svc, m := newTestService(t)

		m.invoices.EXPECT().
			ListByNumber(gomock.Any(), "INV-404").
			Return([]*domain.Invoice{}, nil)

		lookup, err := svc.LookupInvoice(context.Background(), "INV-404")
		require.NoError(t, err)
		assert.False(t, lookup.Found())
	})
}

func TestService_MonthlyReport(t *testing.T) {
	svc, m := newTestService(t)
	period := domain.MonthPeriod(2024, time.February, time.UTC)

	m.invoices.EXPECT().
		ListStatuses(gomock.Any()).
		Return([]string{"Paid"}, nil)
	m.invoices.EXPECT().
		ListByPeriod(gomock.Any(), period, domain.StatusAll).
		DoAndReturn(func(context.Context, domain.Period, string) ([]*domain.Invoice, error) {
			return paidFixture(), nil
		}).
		Times(2)
	m.fees.EXPECT().
		TotalsByInvoices(gomock.Any(), []int64{1, 2, 3}).
		Return(paidFixtureFees(), nil).
		Times(2)
	m.clients.EXPECT().
		GetNames(gomock.Any(), []int64{10, 20, 10}).
		Return(map[int64]string{10: "Acme", 20: "Globex"}, nil)

	report, err := svc.MonthlyReport(context.Background(), period)
	require.NoError(t, err)

	require.Len(t, report.Statuses.Items, 1)
	assert.Equal(t, 3, report.Statuses.Items[0].Count)
	assert.Equal(t, 3, report.Invoices.Count)
	assertDecimal(t, "315", report.Invoices.Summary.NetAmount)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
	}{
		{"Consulta", &repository.QueryError{Err: errors.New("x")}, ErrQuery, cliErrors.ErrDatabaseOperation},
		{"Cliente", repository.ErrClientNotFound, ErrNotFound, cliErrors.ErrNotFound},
		{"Conexão", sqldb.ErrConnection, ErrConfiguration, cliErrors.ErrConnection},
		{"Timeout", context.DeadlineExceeded, ErrQuery, cliErrors.ErrDatabaseOperation},
		{"Desconhecido", errors.New("???"), ErrInternal, cliErrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(errors.Wrap(tt.err, "contexto"))
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, errors.Is(err, tt.err))
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}

	assert.Nil(t, Classify(nil))

	classified := Classify(repository.ErrClientNotFound)
	assert.Same(t, classified, Classify(classified))
}
