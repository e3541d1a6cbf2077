// Package repository contém as implementações dos repositórios para acesso aos dados do WHMCS
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/pkg/log"
	"github.com/vfg2006/billing-report/pkg/utils"
)

// QueryError carrega o SQL e os parâmetros da query que falhou, para diagnóstico.
// A mensagem traz só a operação e a causa; o SQL fica nos campos Query e Args.
type QueryError struct {
	Op    string
	Query string
	Args  []interface{}
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(op, query string, args []interface{}, err error) *QueryError {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		err = fmt.Errorf("erro no banco de dados: %w (código: %s)", err, pqErr.Code)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		err = fmt.Errorf("erro no banco de dados: %w (código: %d)", err, myErr.Number)
	}

	return &QueryError{Op: op, Query: query, Args: args, Err: err}
}

// queryRunner concentra o ciclo abre conexão / executa / fecha usado por todos os repositórios
type queryRunner struct {
	provider sqldb.Provider
	logger   log.Logger
}

func (q queryRunner) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(q.provider.Placeholder())
}

// run executa a query em uma conexão dedicada e chama scan para cada linha
func (q queryRunner) run(ctx context.Context, op string, sqlizer squirrel.Sqlizer, scan func(*sql.Rows) error) error {
	conn, err := q.provider.Open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return q.runWith(ctx, conn, op, sqlizer, scan)
}

// runWith executa a query em uma conexão já aberta pelo chamador
func (q queryRunner) runWith(ctx context.Context, db sqldb.Queryer, op string, sqlizer squirrel.Sqlizer, scan func(*sql.Rows) error) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("%s: erro ao construir a query: %w", op, err)
	}

	traced := q.logger.IsDebug()
	if traced {
		q.logger.WithFields(log.Fields{
			"op":    op,
			"query": query,
			"args":  args,
		}).Debug("Executando query")
	}

	startTime := time.Now()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return newQueryError(op, query, args, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return newQueryError(op, query, args, fmt.Errorf("erro ao escanear linha: %w", err))
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return newQueryError(op, query, args, fmt.Errorf("erro durante a iteração de linhas: %w", err))
	}

	if traced {
		q.logger.WithFields(log.Fields{
			"op":       op,
			"rows":     count,
			"duration": time.Since(startTime).String(),
		}).Debug("Query concluída")
	}

	return nil
}

// dbDate aceita time.Time, texto ou NULL; datas zeradas do MySQL viram nil
type dbDate struct {
	Time *time.Time
	loc  *time.Location
}

func (d *dbDate) Scan(value interface{}) error {
	d.Time = nil

	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() || v.Year() <= 1 {
			return nil
		}
		t := v
		d.Time = &t
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}

	return fmt.Errorf("tipo de data não suportado: %T", value)
}

func (d *dbDate) parse(s string) error {
	t, err := utils.ParseDBDate(s, d.loc)
	if err != nil {
		return fmt.Errorf("data inválida %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// chunk divide os ids em blocos para não estourar o limite de parâmetros do driver
func chunk(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = len(ids)
	}

	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// uniqueIDs remove repetidos mantendo a ordem de chegada
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
