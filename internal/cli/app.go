package cli

import (
	"context"
	"io"
	"time"

	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/infrastructure/repository"
	"github.com/vfg2006/billing-report/internal/config"
	"github.com/vfg2006/billing-report/internal/scheduler"
	"github.com/vfg2006/billing-report/internal/usecases/reporting"
	"github.com/vfg2006/billing-report/pkg/log"
)

// Gate decide se a execução via --cron deve gerar o relatório hoje
type Gate interface {
	ShouldRun(now time.Time) bool
	NextRun(now time.Time) time.Time
}

// App reúne as dependências de uma execução. Connect só é chamado depois que a
// entrada foi validada, então argumentos inválidos nunca abrem conexão.
type App struct {
	Logger   log.Logger
	Location *time.Location
	Timeout  time.Duration
	Gate     Gate
	Connect  func(ctx context.Context) (reporting.Reporter, error)
}

type BuildOptions struct {
	Debug     bool
	LogOutput io.Writer
}

// Builder monta o App a partir da configuração do ambiente
type Builder func(opts BuildOptions) (*App, error)

// DefaultBuilder carrega .env e variáveis de ambiente, cria o logger da execução e
// prepara a conexão com o banco do WHMCS
func DefaultBuilder(opts BuildOptions) (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, reporting.Classify(err)
	}

	logger := log.New(log.Options{
		Level:  cfg.App.LogLevel,
		Debug:  opts.Debug,
		Output: opts.LogOutput,
	})

	gate, err := scheduler.NewMonthlyReportGate(cfg.Report.CronSchedule, logger)
	if err != nil {
		return nil, reporting.Classify(err)
	}

	logger.WithFields(log.Fields{
		"driver":        cfg.Database.Driver,
		"host":          cfg.Database.Host,
		"database":      cfg.Database.Name,
		"timezone":      cfg.Report.Location.String(),
		"cron_schedule": cfg.Report.CronSchedule,
	}).Debug("Configuração carregada")

	return &App{
		Logger:   logger,
		Location: cfg.Report.Location,
		Timeout:  cfg.Report.Timeout,
		Gate:     gate,
		Connect: func(ctx context.Context) (reporting.Reporter, error) {
			return connect(ctx, cfg, logger)
		},
	}, nil
}

func connect(ctx context.Context, cfg *config.Config, logger log.Logger) (reporting.Reporter, error) {
	provider := sqldb.NewProvider(cfg.Database)

	if err := sqldb.Check(ctx, provider); err != nil {
		logger.WithContext(ctx).WithError(err).Error("Falha ao conectar no banco de dados")
		return nil, reporting.Classify(err)
	}

	logger.WithContext(ctx).Info("Conexão com o banco de dados estabelecida")

	invoiceRepository := repository.NewInvoiceRepository(provider, logger, cfg.Report.Location)
	feeRepository := repository.NewFeeRepository(provider, logger)
	clientRepository := repository.NewClientRepository(provider, logger)

	return reporting.NewService(invoiceRepository, feeRepository, clientRepository, logger), nil
}
