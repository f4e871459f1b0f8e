package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"nameledger/internal/naming"
	"nameledger/internal/records/models"
	"nameledger/pkg/domain"
	"nameledger/pkg/platform/sentinel"
	txcontext "nameledger/pkg/platform/tx"
)

// Postgres is the database/sql record store. When the records service opens a
// transaction it travels in the context, so record writes and reverse-entry
// invalidation commit or roll back together.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema for the name_records table.
const Schema = `
CREATE TABLE IF NOT EXISTS name_records (
	name     TEXT PRIMARY KEY,
	token_id UUID NOT NULL,
	owner    TEXT NOT NULL,
	target   TEXT
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

func (s *Postgres) Get(ctx context.Context, name naming.Name) (*models.NameRecord, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT token_id, owner, target FROM name_records WHERE name = $1`,
		string(name))

	var (
		tokenID uuid.UUID
		owner   string
		target  *string
	)
	if err := row.Scan(&tokenID, &owner, &target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan name record: %w", err)
	}

	record := &models.NameRecord{TokenID: domain.TokenID(tokenID)}
	addr, err := naming.ParseAddress(owner)
	if err != nil {
		return nil, fmt.Errorf("stored owner is malformed: %w", err)
	}
	record.Owner = addr
	if target != nil {
		t, err := naming.ParseAddress(*target)
		if err != nil {
			return nil, fmt.Errorf("stored target is malformed: %w", err)
		}
		record.Target = &t
	}
	return record, nil
}

func (s *Postgres) Put(ctx context.Context, name naming.Name, record *models.NameRecord) error {
	var target *string
	if record.Target != nil {
		t := record.Target.String()
		target = &t
	}
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO name_records (name, token_id, owner, target)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET token_id = EXCLUDED.token_id, owner = EXCLUDED.owner, target = EXCLUDED.target`,
		string(name), uuid.UUID(record.TokenID), record.Owner.String(), target)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("upsert name record: %w", err)
	}
	return nil
}
