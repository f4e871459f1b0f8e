package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"nameledger/internal/naming"
	recordstore "nameledger/internal/records/store/record"
	reversestore "nameledger/internal/records/store/reverse"
	registrarservice "nameledger/internal/registrar/service"
	registrarstore "nameledger/internal/registrar/store"
	"nameledger/internal/token"
	dErrors "nameledger/pkg/domain-errors"
)

const (
	testTLD   = "sui"
	testGrace = uint64(90)
)

type RecordsSuite struct {
	suite.Suite
	registrar *registrarservice.Service
	svc       *Service
	ctx       context.Context
}

func (s *RecordsSuite) SetupTest() {
	s.registrar = registrarservice.New(registrarstore.NewInMemory(), registrarservice.WithGracePeriod(testGrace))
	s.svc = New(recordstore.NewInMemory(), reversestore.NewInMemory(), s.registrar)
	s.ctx = context.Background()
}

func TestRecordsSuite(t *testing.T) {
	suite.Run(t, new(RecordsSuite))
}

func (s *RecordsSuite) addr(fill byte) naming.Address {
	a, err := naming.ParseAddress(strings.Repeat(string([]byte{hexDigit(fill >> 4), hexDigit(fill & 0xf)}), naming.AddressLength))
	s.Require().NoError(err)
	return a
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + v - 10
}

// registerName registers a label and wires the freshly minted token into the
// record store, mirroring the registry's control flow.
func (s *RecordsSuite) registerName(label string, owner naming.Address, duration, now uint64) *token.Token {
	expiry, err := s.registrar.Register(s.ctx, testTLD, label, duration, now)
	s.Require().NoError(err)

	tok := token.Mint(naming.Join(mustLabel(s.T(), label), testTLD), owner, expiry)
	s.Require().NoError(s.svc.Upsert(s.ctx, tok.BoundName, tok.ID, owner, nil))
	return tok
}

func mustLabel(t *testing.T, raw string) naming.Label {
	t.Helper()
	label, err := naming.ParseLabel(raw)
	if err != nil {
		t.Fatalf("parse label %q: %v", raw, err)
	}
	return label
}

func (s *RecordsSuite) TestTargetAddress() {
	s.Run("sets and clears the forward target", func() {
		owner := s.addr(0x11)
		tok := s.registerName("forward", owner, 365, 10)

		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, owner, 20))
		record, err := s.svc.Get(s.ctx, tok.BoundName)
		s.Require().NoError(err)
		s.True(record.TargetEquals(owner))

		s.Require().NoError(s.svc.UnsetTarget(s.ctx, tok, 30))
		record, err = s.svc.Get(s.ctx, tok.BoundName)
		s.Require().NoError(err)
		s.Nil(record.Target)
	})

	s.Run("rejects a token whose lease expired even if the record was never re-keyed", func() {
		owner := s.addr(0x22)
		tok := s.registerName("sleeper", owner, 100, 10)

		// Nobody re-registered, so the record still carries this token's ID.
		// Freshness alone would pass; the live expiry check must not.
		err := s.svc.SetTarget(s.ctx, tok, owner, 111+testGrace)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExpired))
	})
}

func (s *RecordsSuite) TestTokenFreshness() {
	s.Run("re-registration makes the previous token permanently stale", func() {
		alice := s.addr(0x0a)
		bob := s.addr(0x0b)

		oldTok := s.registerName("contested", alice, 100, 10)

		// Lease runs out past grace; bob re-registers and the record is re-keyed.
		expiry, err := s.registrar.Register(s.ctx, testTLD, "contested", 100, 111+testGrace)
		s.Require().NoError(err)
		newTok := token.Mint(oldTok.BoundName, bob, expiry)
		s.Require().NoError(s.svc.Upsert(s.ctx, newTok.BoundName, newTok.ID, bob, nil))

		now := 112 + testGrace
		err = s.svc.SetTarget(s.ctx, oldTok, alice, now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExpired))

		s.Require().NoError(s.svc.SetTarget(s.ctx, newTok, bob, now))

		// Transferring the stale token does not revive it.
		oldTok.Transfer(bob)
		err = s.svc.UnsetTarget(s.ctx, oldTok, now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExpired))
	})
}

func (s *RecordsSuite) TestDefaultDomain() {
	s.Run("requires the record to resolve to the caller", func() {
		owner := s.addr(0x33)
		stranger := s.addr(0x44)
		tok := s.registerName("linked", owner, 365, 10)

		err := s.svc.SetDefaultDomain(s.ctx, tok, owner, 20)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDefaultDomainMismatch))

		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, owner, 20))
		s.Require().NoError(s.svc.SetDefaultDomain(s.ctx, tok, owner, 21))

		name, err := s.svc.DefaultDomain(s.ctx, owner)
		s.Require().NoError(err)
		s.Equal(tok.BoundName, name)

		err = s.svc.SetDefaultDomain(s.ctx, tok, stranger, 22)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDefaultDomainMismatch))
	})

	s.Run("unset is self-service and idempotent", func() {
		addr := s.addr(0x55)
		s.Require().NoError(s.svc.UnsetDefaultDomain(s.ctx, addr))
		s.Require().NoError(s.svc.UnsetDefaultDomain(s.ctx, addr))
	})
}

func (s *RecordsSuite) TestReverseInvalidation() {
	s.Run("moving the target removes the old reverse entry", func() {
		owner := s.addr(0x66)
		other := s.addr(0x77)
		tok := s.registerName("moving", owner, 365, 10)

		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, owner, 20))
		s.Require().NoError(s.svc.SetDefaultDomain(s.ctx, tok, owner, 21))

		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, other, 22))

		_, err := s.svc.DefaultDomain(s.ctx, owner)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("record overwrite on re-registration invalidates the reverse entry", func() {
		alice := s.addr(0x88)
		bob := s.addr(0x99)

		tok := s.registerName("turnover", alice, 100, 10)
		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, alice, 20))
		s.Require().NoError(s.svc.SetDefaultDomain(s.ctx, tok, alice, 21))

		expiry, err := s.registrar.Register(s.ctx, testTLD, "turnover", 100, 111+testGrace)
		s.Require().NoError(err)
		newTok := token.Mint(tok.BoundName, bob, expiry)
		s.Require().NoError(s.svc.Upsert(s.ctx, newTok.BoundName, newTok.ID, bob, nil))

		_, err = s.svc.DefaultDomain(s.ctx, alice)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unrelated names do not disturb each other's reverse entries", func() {
		shared := s.addr(0xaa)
		tokA := s.registerName("first", shared, 365, 10)
		tokB := s.registerName("second", shared, 365, 10)

		// Both names point at the same address; the default belongs to first.
		s.Require().NoError(s.svc.SetTarget(s.ctx, tokA, shared, 20))
		s.Require().NoError(s.svc.SetDefaultDomain(s.ctx, tokA, shared, 21))
		s.Require().NoError(s.svc.SetTarget(s.ctx, tokB, shared, 22))

		// Moving second's target away must not remove first's reverse entry.
		s.Require().NoError(s.svc.SetTarget(s.ctx, tokB, s.addr(0xbb), 23))

		name, err := s.svc.DefaultDomain(s.ctx, shared)
		s.Require().NoError(err)
		s.Equal(tokA.BoundName, name)
	})

	s.Run("re-setting the same target is a no-op for the reverse entry", func() {
		owner := s.addr(0xcc)
		tok := s.registerName("stable", owner, 365, 10)

		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, owner, 20))
		s.Require().NoError(s.svc.SetDefaultDomain(s.ctx, tok, owner, 21))
		s.Require().NoError(s.svc.SetTarget(s.ctx, tok, owner, 22))

		name, err := s.svc.DefaultDomain(s.ctx, owner)
		s.Require().NoError(err)
		s.Equal(tok.BoundName, name)
	})
}

func (s *RecordsSuite) TestReclaim() {
	s.Run("overwrites the owner and nothing else", func() {
		u1 := s.addr(0x01)
		u2 := s.addr(0x02)
		tok := s.registerName("eastagile", u1, 365, 10)

		expiryBefore, err := s.registrar.Expiry(s.ctx, testTLD, "eastagile")
		s.Require().NoError(err)
		s.Equal(uint64(375), expiryBefore)

		s.Require().NoError(s.svc.Reclaim(s.ctx, tok, testTLD, u2, 20))

		record, err := s.svc.Get(s.ctx, tok.BoundName)
		s.Require().NoError(err)
		s.Equal(u2, record.Owner)
		s.Equal(tok.ID, record.TokenID) // no re-mint

		expiryAfter, err := s.registrar.Expiry(s.ctx, testTLD, "eastagile")
		s.Require().NoError(err)
		s.Equal(expiryBefore, expiryAfter)
	})

	s.Run("rejects a token bound under a different TLD", func() {
		owner := s.addr(0x03)
		tok := s.registerName("crosstld", owner, 365, 10)

		err := s.svc.Reclaim(s.ctx, tok, "move", owner, 20)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidBaseNode))
	})

	s.Run("rejects a stale token", func() {
		alice := s.addr(0x04)
		bob := s.addr(0x05)
		oldTok := s.registerName("retaken", alice, 100, 10)

		expiry, err := s.registrar.Register(s.ctx, testTLD, "retaken", 100, 111+testGrace)
		s.Require().NoError(err)
		newTok := token.Mint(oldTok.BoundName, bob, expiry)
		s.Require().NoError(s.svc.Upsert(s.ctx, newTok.BoundName, newTok.ID, bob, nil))

		err = s.svc.Reclaim(s.ctx, oldTok, testTLD, alice, 112+testGrace)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExpired))
	})
}

// txRecorder counts the units of work the service hands to its transactor.
type txRecorder struct {
	units int
}

func (r *txRecorder) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.units++
	return fn(ctx)
}

// failingReverse serves reads from the wrapped store but refuses deletes.
type failingReverse struct {
	ReverseStore
}

func (failingReverse) Delete(context.Context, naming.Address) error {
	return errors.New("reverse store unavailable")
}

func (s *RecordsSuite) TestTransactorScopesPairedWrites() {
	rec := &txRecorder{}
	svc := New(recordstore.NewInMemory(), reversestore.NewInMemory(), s.registrar, WithTransactor(rec))

	owner := s.addr(0xdd)
	expiry, err := s.registrar.Register(s.ctx, testTLD, "atomic", 365, 10)
	s.Require().NoError(err)
	tok := token.Mint(naming.Join(mustLabel(s.T(), "atomic"), testTLD), owner, expiry)

	// Every record write travels through a single transactor unit together
	// with its reverse invalidation.
	s.Require().NoError(svc.Upsert(s.ctx, tok.BoundName, tok.ID, owner, nil))
	s.Equal(1, rec.units)

	s.Require().NoError(svc.SetTarget(s.ctx, tok, owner, 20))
	s.Equal(2, rec.units)

	s.Require().NoError(svc.UnsetTarget(s.ctx, tok, 30))
	s.Equal(3, rec.units)
}

func (s *RecordsSuite) TestReverseDeleteFailureAbortsOperation() {
	svc := New(recordstore.NewInMemory(), failingReverse{reversestore.NewInMemory()}, s.registrar)

	owner := s.addr(0xde)
	other := s.addr(0xdf)
	expiry, err := s.registrar.Register(s.ctx, testTLD, "flaky", 365, 10)
	s.Require().NoError(err)
	tok := token.Mint(naming.Join(mustLabel(s.T(), "flaky"), testTLD), owner, expiry)

	s.Require().NoError(svc.Upsert(s.ctx, tok.BoundName, tok.ID, owner, nil))
	s.Require().NoError(svc.SetTarget(s.ctx, tok, owner, 20))
	s.Require().NoError(svc.SetDefaultDomain(s.ctx, tok, owner, 21))

	// Moving the target requires deleting owner's reverse entry. The failed
	// delete must surface from inside the transactor unit, so a SQL backend
	// rolls the record write back with it.
	err = svc.SetTarget(s.ctx, tok, other, 22)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
