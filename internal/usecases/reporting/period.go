package reporting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/billing-report/internal/domain"
	"github.com/vfg2006/billing-report/pkg/cliErrors"
)

// Palavras-chave aceitas no lugar de um mês ou ano
const (
	PeriodLast = "last"
	PeriodThis = "this"
)

// monthLayouts são os formatos de mês aceitos; o nome do mês não diferencia maiúsculas
var monthLayouts = []string{
	"Jan-2006",
	"January-2006",
	"January 2006",
	"Jan 2006",
	"01-2006",
	"2006-01",
}

// ResolvePeriod traduz o argumento da linha de comando na janela do mês.
// Vazio ou "last" é o mês anterior a now, "this" é o mês corrente.
func ResolvePeriod(token string, now time.Time) (domain.Period, error) {
	loc := now.Location()
	token = strings.TrimSpace(token)

	switch strings.ToLower(token) {
	case "", PeriodLast:
		// time.Date normaliza o mês 0 para dezembro do ano anterior
		return domain.MonthPeriod(now.Year(), now.Month()-1, loc), nil
	case PeriodThis:
		return domain.MonthPeriod(now.Year(), now.Month(), loc), nil
	}

	month, err := ParseMonth(token)
	if err != nil {
		return domain.Period{}, err
	}

	return domain.MonthPeriod(month.Year(), month.Month(), loc), nil
}

// ParseMonth interpreta "Aug-2021", "August-2021", "August 2021", "08-2021" ou "2021-08"
func ParseMonth(token string) (time.Time, error) {
	token = strings.TrimSpace(token)
	for _, layout := range monthLayouts {
		t, err := time.Parse(layout, token)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, NewReportError(
		ErrInvalidInput,
		cliErrors.ErrInvalidInput,
		fmt.Sprintf("invalid month %q, use the format 'MMM-YYYY' (e.g. Aug-2021), 'last' or 'this'", token),
	)
}

// ResolveYear aceita vazio ou "this" (ano corrente), "last" (ano anterior)
// ou um ano de quatro dígitos que não esteja no futuro
func ResolveYear(token string, now time.Time) (int, error) {
	token = strings.TrimSpace(token)

	switch strings.ToLower(token) {
	case "", PeriodThis:
		return now.Year(), nil
	case PeriodLast:
		return now.Year() - 1, nil
	}

	invalid := func(reason string) error {
		return NewReportError(ErrInvalidInput, cliErrors.ErrInvalidInput, fmt.Sprintf("invalid year %q: %s", token, reason))
	}

	if len(token) != 4 {
		return 0, invalid("use a four digit year")
	}

	year, err := strconv.Atoi(token)
	if err != nil || year < 1 {
		return 0, invalid("use a four digit year")
	}

	if year > now.Year() {
		return 0, invalid("year is in the future")
	}

	return year, nil
}

// YearPeriods lista as janelas mensais do resumo anual. No ano corrente vai de janeiro
// até o mês anterior ao atual (o mês em andamento fica de fora); anos passados têm os 12 meses.
func YearPeriods(year int, now time.Time) []domain.Period {
	lastMonth := time.December
	if year == now.Year() {
		lastMonth = now.Month() - 1
	} else if year > now.Year() {
		return nil
	}

	periods := make([]domain.Period, 0, int(lastMonth))
	for month := time.January; month <= lastMonth; month++ {
		periods = append(periods, domain.MonthPeriod(year, month, now.Location()))
	}

	return periods
}
