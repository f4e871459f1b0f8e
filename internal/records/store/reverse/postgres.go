package reverse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nameledger/internal/naming"
	"nameledger/pkg/platform/sentinel"
	txcontext "nameledger/pkg/platform/tx"
)

// Postgres is the database/sql reverse store. It honors a transaction from
// context so reverse invalidation shares the record store's transaction.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema for the reverse_entries table.
const Schema = `
CREATE TABLE IF NOT EXISTS reverse_entries (
	address TEXT PRIMARY KEY,
	name    TEXT NOT NULL
);
`

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) conn(ctx context.Context) queryer {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) Get(ctx context.Context, addr naming.Address) (naming.Name, error) {
	var name string
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT name FROM reverse_entries WHERE address = $1`,
		addr.String()).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("scan reverse entry: %w", err)
	}
	return naming.Name(name), nil
}

func (s *Postgres) Put(ctx context.Context, addr naming.Address, name naming.Name) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO reverse_entries (address, name)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET name = EXCLUDED.name`,
		addr.String(), string(name))
	if err != nil {
		return fmt.Errorf("upsert reverse entry: %w", err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, addr naming.Address) error {
	_, err := s.conn(ctx).ExecContext(ctx,
		`DELETE FROM reverse_entries WHERE address = $1`, addr.String())
	if err != nil {
		return fmt.Errorf("delete reverse entry: %w", err)
	}
	return nil
}
