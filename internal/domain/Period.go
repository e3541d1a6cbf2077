package domain

import (
	"fmt"
	"time"
)

// Period é a janela semiaberta [Start, End) de um mês de faturamento
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthPeriod monta a janela do mês; time.Date normaliza o mês 13 para janeiro do ano seguinte
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// Label retorna o rótulo de exibição, por exemplo "August 2021"
func (p Period) Label() string {
	return p.Start.Format("January 2006")
}

func (p Period) String() string {
	return fmt.Sprintf("%s [%s, %s)", p.Label(), p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
}
