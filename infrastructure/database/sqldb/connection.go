package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/vfg2006/billing-report/internal/config"
	_ "modernc.org/sqlite"
)

// ErrConnection indica que não foi possível abrir ou testar a conexão
var ErrConnection = errors.New("database connection failed")

// Provider abre uma conexão nova a cada chamada. Quem abre fecha.
type Provider interface {
	Open(ctx context.Context) (*Connection, error)
	Placeholder() squirrel.PlaceholderFormat
	Driver() string
}

type Connection struct {
	*sql.DB
}

type provider struct {
	driver string
	dsn    string
}

func NewProvider(cfg config.Database) Provider {
	return &provider{
		driver: cfg.Driver,
		dsn:    cfg.DSN,
	}
}

// Open cria um *sql.DB limitado a uma única conexão física e testa com ping
func (p *provider) Open(ctx context.Context) (*Connection, error) {
	db, err := sql.Open(p.driver, p.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return &Connection{DB: db}, nil
}

func (p *provider) Placeholder() squirrel.PlaceholderFormat {
	return PlaceholderFor(p.driver)
}

func (p *provider) Driver() string {
	return p.driver
}

// PlaceholderFor retorna o formato de parâmetros do driver ($1 no postgres, ? nos demais)
func PlaceholderFor(driver string) squirrel.PlaceholderFormat {
	if driver == config.DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Check abre e fecha uma conexão para validar as credenciais logo no início da execução
func Check(ctx context.Context, p Provider) error {
	conn, err := p.Open(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}
