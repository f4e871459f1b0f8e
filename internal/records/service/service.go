// Package service implements the name record store and the reverse registry,
// and enforces the token guards every mutating operation passes through.
//
// The two indexes are mutated together: whenever a forward target address
// changes, the invalidation routine runs inside the same operation, so a
// reverse entry can never dangle behind a moved or overwritten record.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"nameledger/internal/naming"
	recordsmetrics "nameledger/internal/records/metrics"
	"nameledger/internal/records/models"
	"nameledger/internal/token"
	"nameledger/pkg/domain"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/platform/sentinel"
	txcontext "nameledger/pkg/platform/tx"
)

// RecordStore persists name records keyed by fully-qualified name.
type RecordStore interface {
	Get(ctx context.Context, name naming.Name) (*models.NameRecord, error)
	Put(ctx context.Context, name naming.Name, record *models.NameRecord) error
}

// ReverseStore persists the address → default-name index.
type ReverseStore interface {
	Get(ctx context.Context, addr naming.Address) (naming.Name, error)
	Put(ctx context.Context, addr naming.Address, name naming.Name) error
	// Delete must be idempotent.
	Delete(ctx context.Context, addr naming.Address) error
}

// RegistrarReader is the slice of the expiry registrar the token guard needs.
type RegistrarReader interface {
	Expiry(ctx context.Context, tld, label string) (uint64, error)
	ExpiredBeyondGrace(ctx context.Context, tld, label string, now uint64) (bool, error)
}

// Service coordinates the record store and reverse registry.
type Service struct {
	// mu serializes mutating operations across both stores, so no caller
	// observes the record updated but the reverse entry not yet invalidated.
	// On SQL backends the transactor additionally makes the paired writes
	// commit or roll back as one.
	mu        sync.Mutex
	records   RecordStore
	reverse   ReverseStore
	registrar RegistrarReader
	tx        txcontext.Transactor
	logger    *slog.Logger
	metrics   *recordsmetrics.Metrics
}

type serviceConfig struct {
	tx      txcontext.Transactor
	logger  *slog.Logger
	metrics *recordsmetrics.Metrics
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

func WithMetrics(m *recordsmetrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// WithTransactor sets the transactor that wraps every record and reverse
// write pair. SQL deployments pass tx.NewSQL so both writes share one
// database transaction; the in-memory default runs them directly.
func WithTransactor(t txcontext.Transactor) Option {
	return func(c *serviceConfig) { c.tx = t }
}

func New(records RecordStore, reverse ReverseStore, registrar RegistrarReader, opts ...Option) *Service {
	cfg := &serviceConfig{tx: txcontext.Passthrough{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		records:   records,
		reverse:   reverse,
		registrar: registrar,
		tx:        cfg.tx,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}
}

// Get returns the record for a fully-qualified name.
func (s *Service) Get(ctx context.Context, name naming.Name) (*models.NameRecord, error) {
	record, err := s.records.Get(ctx, name)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no record for name")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read record")
	}
	return record, nil
}

// Upsert writes the record for name, overwriting any prior record whole, and
// invalidates the previous target's reverse entry in the same operation.
// Called by the registry on every (re)registration.
func (s *Service) Upsert(ctx context.Context, name naming.Name, tokenID domain.TokenID, owner naming.Address, target *naming.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		var prevTarget *naming.Address
		prev, err := s.records.Get(ctx, name)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read prior record")
		}
		if prev != nil {
			prevTarget = prev.Target
		}

		record := &models.NameRecord{TokenID: tokenID, Owner: owner, Target: target}
		if err := s.records.Put(ctx, name, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write record")
		}
		return s.invalidateReverse(ctx, name, prevTarget, target)
	})
}

// SetTarget points name at a new forward address, gated by the combined
// freshness and expiry guard on tok.
func (s *Service) SetTarget(ctx context.Context, tok *token.Token, target naming.Address, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		record, err := s.guardFresh(ctx, tok, now)
		if err != nil {
			return err
		}

		prevTarget := record.Target
		record.Target = &target
		if err := s.records.Put(ctx, tok.BoundName, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write record")
		}
		return s.invalidateReverse(ctx, tok.BoundName, prevTarget, &target)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "target address set",
		"name", tok.BoundName,
		"target", target,
	)
	s.metrics.IncTargetUpdate()
	return nil
}

// UnsetTarget clears name's forward address under the same guard.
func (s *Service) UnsetTarget(ctx context.Context, tok *token.Token, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		record, err := s.guardFresh(ctx, tok, now)
		if err != nil {
			return err
		}

		prevTarget := record.Target
		record.Target = nil
		if err := s.records.Put(ctx, tok.BoundName, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write record")
		}
		return s.invalidateReverse(ctx, tok.BoundName, prevTarget, nil)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "target address unset", "name", tok.BoundName)
	s.metrics.IncTargetUpdate()
	return nil
}

// SetDefaultDomain records tok.BoundName as caller's default name. The caller
// must prove the linkage: the record's target must currently equal caller.
func (s *Service) SetDefaultDomain(ctx context.Context, tok *token.Token, caller naming.Address, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.guardFresh(ctx, tok, now)
	if err != nil {
		return err
	}
	if !record.TargetEquals(caller) {
		return dErrors.New(dErrors.CodeDefaultDomainMismatch, "name does not resolve to caller")
	}
	if err := s.reverse.Put(ctx, caller, tok.BoundName); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write reverse entry")
	}

	s.logger.InfoContext(ctx, "default domain set",
		"address", caller,
		"name", tok.BoundName,
	)
	return nil
}

// UnsetDefaultDomain removes caller's own reverse entry. Self-service: no
// token required, and redundant calls are safe no-ops.
func (s *Service) UnsetDefaultDomain(ctx context.Context, caller naming.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reverse.Delete(ctx, caller); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete reverse entry")
	}
	return nil
}

// DefaultDomain returns the default name registered for addr.
func (s *Service) DefaultDomain(ctx context.Context, addr naming.Address) (naming.Name, error) {
	name, err := s.reverse.Get(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNotFound, "no default domain for address")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read reverse entry")
	}
	return name, nil
}

// Reclaim overwrites the record's owner reference for tok's bound name. The
// token must be bound under the TLD being reclaimed into, and must pass the
// combined guard. Expiry and the owning token ID are untouched.
func (s *Service) Reclaim(ctx context.Context, tok *token.Token, tld string, newOwner naming.Address, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tok.BoundName.InTLD(tld) {
		return dErrors.New(dErrors.CodeInvalidBaseNode, "token is not bound under this TLD")
	}
	record, err := s.guardFresh(ctx, tok, now)
	if err != nil {
		return err
	}

	record.Owner = newOwner
	if err := s.records.Put(ctx, tok.BoundName, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write record")
	}

	s.logger.InfoContext(ctx, "record reclaimed",
		"name", tok.BoundName,
		"owner", newOwner,
	)
	s.metrics.IncReclaim()
	return nil
}

// GuardFresh exposes the combined guard for collaborators (the authenticated
// update protocol re-uses it after signature validation).
func (s *Service) GuardFresh(ctx context.Context, tok *token.Token, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.guardFresh(ctx, tok, now)
	return err
}

// guardFresh is the combined freshness and expiry check. Freshness alone is
// not enough: if nobody re-registered an expired name the record was never
// re-keyed, so the live registrar expiry is checked as well. Both failures
// surface as token_expired.
func (s *Service) guardFresh(ctx context.Context, tok *token.Token, now uint64) (*models.NameRecord, error) {
	record, err := s.records.Get(ctx, tok.BoundName)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncStaleTokenRejection()
		return nil, dErrors.New(dErrors.CodeTokenExpired, "no record for the token's bound name")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read record")
	}
	if record.TokenID != tok.ID {
		s.metrics.IncStaleTokenRejection()
		return nil, dErrors.New(dErrors.CodeTokenExpired, "token is no longer current for this name")
	}

	label, tld, err := naming.Split(tok.BoundName)
	if err != nil {
		return nil, err
	}
	expired, err := s.registrar.ExpiredBeyondGrace(ctx, tld, label.String(), now)
	if err != nil {
		return nil, err
	}
	if expired {
		s.metrics.IncStaleTokenRejection()
		return nil, dErrors.New(dErrors.CodeTokenExpired, "lease expired beyond the grace period")
	}
	return record, nil
}

// invalidateReverse removes old's reverse entry when, and only when, it
// pointed at the name whose forward mapping just changed. Unrelated names
// sharing no relation must not disturb each other's reverse entries.
func (s *Service) invalidateReverse(ctx context.Context, name naming.Name, old, updated *naming.Address) error {
	if old == nil {
		return nil
	}
	if updated != nil && *old == *updated {
		return nil
	}
	current, err := s.reverse.Get(ctx, *old)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read reverse entry")
	}
	if current != name {
		return nil
	}
	if err := s.reverse.Delete(ctx, *old); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete reverse entry")
	}

	s.logger.InfoContext(ctx, "reverse entry invalidated",
		"address", *old,
		"name", name,
	)
	s.metrics.IncReverseInvalidation()
	return nil
}
