package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nameledger/internal/naming"
	"nameledger/internal/registrar/models"
	"nameledger/pkg/platform/sentinel"
)

// Postgres is the pgx-backed registrar store. Claim and Execute run their
// validate callback inside a transaction holding a row lock, so concurrent
// registrations of the same label serialize on the database.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema for the registrations table. Applied by migrations, kept here so the
// store and its DDL stay reviewable together.
const Schema = `
CREATE TABLE IF NOT EXISTS registrations (
	tld      TEXT   NOT NULL,
	label    TEXT   NOT NULL,
	expiry   BIGINT NOT NULL,
	approval TEXT,
	PRIMARY KEY (tld, label)
);
`

func (s *Postgres) Get(ctx context.Context, tld string, label naming.Label) (*models.RegistrationDetail, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT expiry, approval FROM registrations WHERE tld = $1 AND label = $2`,
		tld, string(label))
	return scanDetail(row)
}

func (s *Postgres) Claim(ctx context.Context, tld string, label naming.Label, validate func(existing *models.RegistrationDetail) error, fresh *models.RegistrationDetail) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		existing, err := lockDetail(ctx, tx, tld, label)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return err
		}
		if err := validate(existing); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO registrations (tld, label, expiry, approval)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (tld, label)
			DO UPDATE SET expiry = EXCLUDED.expiry, approval = EXCLUDED.approval`,
			tld, string(label), int64(fresh.Expiry), approvalText(fresh.Approval))
		if err != nil {
			return fmt.Errorf("claim registration: %w", err)
		}
		return nil
	})
}

func (s *Postgres) Execute(ctx context.Context, tld string, label naming.Label, validate func(*models.RegistrationDetail) error, mutate func(*models.RegistrationDetail)) (*models.RegistrationDetail, error) {
	var result *models.RegistrationDetail
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		detail, err := lockDetail(ctx, tx, tld, label)
		if err != nil {
			return err
		}
		if err := validate(detail.Clone()); err != nil {
			return err
		}
		mutate(detail)
		_, err = tx.Exec(ctx,
			`UPDATE registrations SET expiry = $3, approval = $4 WHERE tld = $1 AND label = $2`,
			tld, string(label), int64(detail.Expiry), approvalText(detail.Approval))
		if err != nil {
			return fmt.Errorf("update registration: %w", err)
		}
		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Postgres) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func lockDetail(ctx context.Context, tx pgx.Tx, tld string, label naming.Label) (*models.RegistrationDetail, error) {
	row := tx.QueryRow(ctx,
		`SELECT expiry, approval FROM registrations WHERE tld = $1 AND label = $2 FOR UPDATE`,
		tld, string(label))
	return scanDetail(row)
}

func scanDetail(row pgx.Row) (*models.RegistrationDetail, error) {
	var (
		expiry   int64
		approval *string
	)
	if err := row.Scan(&expiry, &approval); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	detail := &models.RegistrationDetail{Expiry: uint64(expiry)}
	if approval != nil {
		addr, err := naming.ParseAddress(*approval)
		if err != nil {
			return nil, fmt.Errorf("stored approval is malformed: %w", err)
		}
		detail.Approval = &addr
	}
	return detail, nil
}

func approvalText(a *naming.Address) *string {
	if a == nil {
		return nil
	}
	s := a.String()
	return &s
}
