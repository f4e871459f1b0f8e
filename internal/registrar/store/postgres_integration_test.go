//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"nameledger/internal/naming"
	"nameledger/internal/registrar/models"
	"nameledger/internal/registrar/store"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/platform/sentinel"
	"nameledger/pkg/testutil/containers"
)

type PostgresRegistrarSuite struct {
	suite.Suite

	ctx   context.Context
	pool  *pgxpool.Pool
	store *store.Postgres
}

func TestPostgresRegistrarSuite(t *testing.T) {
	suite.Run(t, new(PostgresRegistrarSuite))
}

func (s *PostgresRegistrarSuite) SetupSuite() {
	s.ctx = context.Background()

	pg := containers.NewPostgresContainer(s.T())
	pool, err := pgxpool.New(s.ctx, pg.URL)
	s.Require().NoError(err)
	s.pool = pool

	_, err = pool.Exec(s.ctx, store.Schema)
	s.Require().NoError(err)

	s.store = store.NewPostgres(pool)
}

func (s *PostgresRegistrarSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresRegistrarSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE registrations`)
	s.Require().NoError(err)
}

func (s *PostgresRegistrarSuite) mustLabel(raw string) naming.Label {
	label, err := naming.ParseLabel(raw)
	s.Require().NoError(err)
	return label
}

func (s *PostgresRegistrarSuite) TestClaimAndGet() {
	label := s.mustLabel("eastagile")

	err := s.store.Claim(s.ctx, "sui", label,
		func(existing *models.RegistrationDetail) error {
			s.Nil(existing)
			return nil
		},
		&models.RegistrationDetail{Expiry: 375})
	s.Require().NoError(err)

	detail, err := s.store.Get(s.ctx, "sui", label)
	s.Require().NoError(err)
	s.EqualValues(375, detail.Expiry)
	s.Nil(detail.Approval)
}

func (s *PostgresRegistrarSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "sui", s.mustLabel("ghost"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRegistrarSuite) TestClaimValidateVeto() {
	label := s.mustLabel("taken")

	s.Require().NoError(s.store.Claim(s.ctx, "sui", label,
		func(*models.RegistrationDetail) error { return nil },
		&models.RegistrationDetail{Expiry: 100}))

	err := s.store.Claim(s.ctx, "sui", label,
		func(existing *models.RegistrationDetail) error {
			s.Require().NotNil(existing)
			return dErrors.New(dErrors.CodeLabelUnavailable, "label is not available")
		},
		&models.RegistrationDetail{Expiry: 999})
	s.True(dErrors.HasCode(err, dErrors.CodeLabelUnavailable))

	detail, err := s.store.Get(s.ctx, "sui", label)
	s.Require().NoError(err)
	s.EqualValues(100, detail.Expiry, "vetoed claim must not overwrite")
}

func (s *PostgresRegistrarSuite) TestExecuteMutatesUnderLock() {
	label := s.mustLabel("renewme")

	s.Require().NoError(s.store.Claim(s.ctx, "sui", label,
		func(*models.RegistrationDetail) error { return nil },
		&models.RegistrationDetail{Expiry: 375}))

	detail, err := s.store.Execute(s.ctx, "sui", label,
		func(*models.RegistrationDetail) error { return nil },
		func(d *models.RegistrationDetail) { d.Expiry += 100 })
	s.Require().NoError(err)
	s.EqualValues(475, detail.Expiry)

	stored, err := s.store.Get(s.ctx, "sui", label)
	s.Require().NoError(err)
	s.EqualValues(475, stored.Expiry)
}

func (s *PostgresRegistrarSuite) TestExecuteMissing() {
	_, err := s.store.Execute(s.ctx, "sui", s.mustLabel("ghost"),
		func(*models.RegistrationDetail) error { return nil },
		func(*models.RegistrationDetail) {})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRegistrarSuite) TestTLDPartitioning() {
	label := s.mustLabel("shared")

	s.Require().NoError(s.store.Claim(s.ctx, "sui", label,
		func(*models.RegistrationDetail) error { return nil },
		&models.RegistrationDetail{Expiry: 10}))
	s.Require().NoError(s.store.Claim(s.ctx, "move", label,
		func(existing *models.RegistrationDetail) error {
			s.Nil(existing, "same label under another TLD is independent")
			return nil
		},
		&models.RegistrationDetail{Expiry: 20}))

	sui, err := s.store.Get(s.ctx, "sui", label)
	s.Require().NoError(err)
	s.EqualValues(10, sui.Expiry)

	move, err := s.store.Get(s.ctx, "move", label)
	s.Require().NoError(err)
	s.EqualValues(20, move.Expiry)
}
