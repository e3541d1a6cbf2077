package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/billing-report/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-report/pkg/log"
)

const (
	clientsTable = "tblclients c"

	clientChunkSize = 500
)

// ErrClientNotFound indica que o id não existe em tblclients
var ErrClientNotFound = errors.New("client not found")

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

type ClientRepository interface {
	GetName(ctx context.Context, clientID int64) (string, error)
	GetNames(ctx context.Context, clientIDs []int64) (map[int64]string, error)
}

type clientRepository struct {
	q queryRunner
}

func NewClientRepository(provider sqldb.Provider, logger log.Logger) ClientRepository {
	return &clientRepository{
		q: queryRunner{provider: provider, logger: logger},
	}
}

// GetName retorna o nome da empresa do cliente ou ErrClientNotFound
func (r *clientRepository) GetName(ctx context.Context, clientID int64) (string, error) {
	builder := r.q.builder().
		Select("c.companyname").
		From(clientsTable).
		Where(squirrel.Eq{"c.id": clientID})

	found := false
	var name string
	err := r.q.run(ctx, "clients.get_name", builder, func(rows *sql.Rows) error {
		var companyName sql.NullString
		if err := rows.Scan(&companyName); err != nil {
			return err
		}
		name = companyName.String
		found = true
		return nil
	})
	if err != nil {
		return "", err
	}

	if !found {
		return "", fmt.Errorf("%w: id %d", ErrClientNotFound, clientID)
	}

	return name, nil
}

// GetNames resolve vários clientes de uma vez. Qualquer id ausente resulta em ErrClientNotFound.
func (r *clientRepository) GetNames(ctx context.Context, clientIDs []int64) (map[int64]string, error) {
	ids := uniqueIDs(clientIDs)
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	conn, err := r.q.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	for _, block := range chunk(ids, clientChunkSize) {
		builder := r.q.builder().
			Select("c.id", "c.companyname").
			From(clientsTable).
			Where(squirrel.Eq{"c.id": block})

		err := r.q.runWith(ctx, conn, "clients.get_names", builder, func(rows *sql.Rows) error {
			var id int64
			var companyName sql.NullString
			if err := rows.Scan(&id, &companyName); err != nil {
				return err
			}
			names[id] = companyName.String
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return nil, fmt.Errorf("%w: id %d", ErrClientNotFound, id)
		}
	}

	return names, nil
}
