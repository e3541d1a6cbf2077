package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vfg2006/billing-report/internal/config"
	"github.com/vfg2006/billing-report/pkg/log"
	"github.com/vfg2006/billing-report/pkg/utils"
)

// MonthlyReportGate decide se uma execução disparada pelo cron do sistema deve gerar o
// relatório. O processo não fica rodando: o cron externo chama a CLI com --cron e o
// relatório só sai nos dias em que a expressão configurada dispara.
type MonthlyReportGate struct {
	expression string
	schedule   cron.Schedule
	logger     log.Logger
}

// NewMonthlyReportGate interpreta a expressão no formato padrão de cinco campos
// (o padrão "0 0 1 * *" é o primeiro dia de cada mês)
func NewMonthlyReportGate(expression string, logger log.Logger) (*MonthlyReportGate, error) {
	schedule, err := cron.ParseStandard(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: REPORT_CRON_SCHEDULE %q: %v", config.ErrInvalidConfig, expression, err)
	}

	if logger == nil {
		logger = log.Discard()
	}

	return &MonthlyReportGate{
		expression: expression,
		schedule:   schedule,
		logger:     logger,
	}, nil
}

// ShouldRun indica se a expressão dispara em algum momento do dia de now
func (g *MonthlyReportGate) ShouldRun(now time.Time) bool {
	dayStart := utils.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	next := g.schedule.Next(dayStart.Add(-time.Second))
	shouldRun := !next.IsZero() && next.Before(dayEnd)

	g.logger.WithFields(log.Fields{
		"cron_schedule": g.expression,
		"today":         dayStart.Format(time.DateOnly),
		"next_run":      next.Format(time.RFC3339),
		"should_run":    shouldRun,
	}).Debug("Verificando agenda do relatório mensal")

	return shouldRun
}

// NextRun retorna o próximo disparo depois de now
func (g *MonthlyReportGate) NextRun(now time.Time) time.Time {
	return g.schedule.Next(now)
}
