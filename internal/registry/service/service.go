// Package service implements the registry orchestrator: the single entry
// point that threads a register call through label validation, the expiry
// registrar, token minting, and the record store, and that gates every
// application-level mutation behind the authorization flags.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"nameledger/internal/events"
	"nameledger/internal/naming"
	"nameledger/internal/records/models"
	registrymetrics "nameledger/internal/registry/metrics"
	"nameledger/internal/token"
	"nameledger/pkg/domain"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/platform/sentinel"
)

// Registrar is the slice of the expiry registrar the orchestrator drives.
type Registrar interface {
	Available(ctx context.Context, tld, label string, now uint64) (bool, error)
	Register(ctx context.Context, tld, label string, duration, now uint64) (uint64, error)
	Renew(ctx context.Context, tld, label string, duration, now uint64) (uint64, error)
	Expiry(ctx context.Context, tld, label string) (uint64, error)
}

// Records is the record store and reverse registry surface.
type Records interface {
	Get(ctx context.Context, name naming.Name) (*models.NameRecord, error)
	Upsert(ctx context.Context, name naming.Name, tokenID domain.TokenID, owner naming.Address, target *naming.Address) error
	SetTarget(ctx context.Context, tok *token.Token, target naming.Address, now uint64) error
	UnsetTarget(ctx context.Context, tok *token.Token, now uint64) error
	SetDefaultDomain(ctx context.Context, tok *token.Token, caller naming.Address, now uint64) error
	UnsetDefaultDomain(ctx context.Context, caller naming.Address) error
	DefaultDomain(ctx context.Context, addr naming.Address) (naming.Name, error)
	Reclaim(ctx context.Context, tok *token.Token, tld string, newOwner naming.Address, now uint64) error
	GuardFresh(ctx context.Context, tok *token.Token, now uint64) error
}

// TokenStore resolves and mutates minted tokens by identity.
type TokenStore interface {
	Get(ctx context.Context, id domain.TokenID) (*token.Token, error)
	Put(ctx context.Context, tok *token.Token) error
	Execute(ctx context.Context, id domain.TokenID, mutate func(*token.Token)) (*token.Token, error)
}

// KeyVerifier validates signed update messages against the configured key.
type KeyVerifier interface {
	Verify(signature, digest, raw []byte) (*Message, error)
	SetPublicKey(key []byte)
}

// Message mirrors verifier.Message so the orchestrator does not import the
// crypto package directly.
type Message struct {
	Payload string
	Owner   naming.Address
	Expiry  uint64
}

// Service is the registry orchestrator.
type Service struct {
	registrar Registrar
	records   Records
	tokens    TokenStore
	verifier  KeyVerifier
	events    events.Publisher
	logger    *slog.Logger
	metrics   *registrymetrics.Metrics
	tracer    trace.Tracer

	// mu guards the capability sets and the treasury balance.
	mu      sync.Mutex
	admins  map[naming.Address]struct{}
	apps    map[string]struct{}
	tlds    map[string]struct{}
	balance uint64
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *registrymetrics.Metrics
	events  events.Publisher
	admins  []naming.Address
	tlds    []string
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

func WithEvents(p events.Publisher) Option {
	return func(c *serviceConfig) { c.events = p }
}

// WithAdmins seeds the admin capability holders.
func WithAdmins(admins ...naming.Address) Option {
	return func(c *serviceConfig) { c.admins = admins }
}

// WithTLDs seeds the top-level domains available at startup.
func WithTLDs(tlds ...string) Option {
	return func(c *serviceConfig) { c.tlds = tlds }
}

func New(registrar Registrar, records Records, tokens TokenStore, verifier KeyVerifier, opts ...Option) *Service {
	cfg := &serviceConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	s := &Service{
		registrar: registrar,
		records:   records,
		tokens:    tokens,
		verifier:  verifier,
		events:    cfg.events,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		tracer:    otel.Tracer("nameledger/registry"),
		admins:    make(map[naming.Address]struct{}),
		apps:      make(map[string]struct{}),
		tlds:      make(map[string]struct{}),
	}
	for _, admin := range cfg.admins {
		s.admins[admin] = struct{}{}
	}
	for _, tld := range cfg.tlds {
		s.tlds[tld] = struct{}{}
	}
	return s
}

// -----------------------------------------------------------------------------
// Application-level operations
// -----------------------------------------------------------------------------

// RegisterName leases label under tld for owner. Control flow: app gate,
// label validation and availability inside the registrar, token mint, record
// upsert (which invalidates a displaced reverse entry), payment banked.
func (s *Service) RegisterName(ctx context.Context, app, tld, label string, owner naming.Address, duration, payment, now uint64) (tok *token.Token, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.RegisterName")
	defer span.End()
	defer s.observe("register", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return nil, err
	}
	if err = s.requireTLD(tld); err != nil {
		return nil, err
	}

	expiry, err := s.registrar.Register(ctx, tld, label, duration, now)
	if err != nil {
		return nil, err
	}

	parsed, err := naming.ParseLabel(label)
	if err != nil {
		return nil, err
	}
	name := naming.Join(parsed, tld)
	tok = token.Mint(name, owner, expiry)
	if err = s.tokens.Put(ctx, tok); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store token")
	}
	if err = s.records.Upsert(ctx, name, tok.ID, owner, nil); err != nil {
		return nil, err
	}

	s.bank(payment)
	s.emit(ctx, events.Event{
		Type:   events.TypeNameRegistered,
		Name:   name.String(),
		Owner:  owner.String(),
		Expiry: expiry,
		Tick:   now,
	})
	return tok, nil
}

// RenewName extends the lease behind a token. Owner-gated: the token must
// pass the combined freshness and expiry guard at call time.
func (s *Service) RenewName(ctx context.Context, app string, tokenID domain.TokenID, duration, payment, now uint64) (expiry uint64, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.RenewName")
	defer span.End()
	defer s.observe("renew", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return 0, err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return 0, err
	}
	if err = s.records.GuardFresh(ctx, tok, now); err != nil {
		return 0, err
	}

	label, tld, err := naming.Split(tok.BoundName)
	if err != nil {
		return 0, err
	}
	expiry, err = s.registrar.Renew(ctx, tld, label.String(), duration, now)
	if err != nil {
		return 0, err
	}

	s.bank(payment)
	s.emit(ctx, events.Event{
		Type:   events.TypeNameRenewed,
		Name:   tok.BoundName.String(),
		Expiry: expiry,
		Tick:   now,
	})
	return expiry, nil
}

// ReclaimName reassigns the record owner for the token's bound name. The
// lease and the owning token are untouched.
func (s *Service) ReclaimName(ctx context.Context, app string, tokenID domain.TokenID, tld string, newOwner naming.Address, now uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.ReclaimName")
	defer span.End()
	defer s.observe("reclaim", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return err
	}
	if err = s.records.Reclaim(ctx, tok, tld, newOwner, now); err != nil {
		return err
	}

	s.emit(ctx, events.Event{
		Type:  events.TypeRecordReclaimed,
		Name:  tok.BoundName.String(),
		Owner: newOwner.String(),
		Tick:  now,
	})
	return nil
}

// SetTarget points the token's bound name at a new forward address.
func (s *Service) SetTarget(ctx context.Context, app string, tokenID domain.TokenID, target naming.Address, now uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.SetTarget")
	defer span.End()
	defer s.observe("set_target", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return err
	}
	if err = s.records.SetTarget(ctx, tok, target, now); err != nil {
		return err
	}

	s.emit(ctx, events.Event{
		Type:  events.TypeTargetChanged,
		Name:  tok.BoundName.String(),
		Owner: target.String(),
		Tick:  now,
	})
	return nil
}

// UnsetTarget clears the forward address for the token's bound name.
func (s *Service) UnsetTarget(ctx context.Context, app string, tokenID domain.TokenID, now uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.UnsetTarget")
	defer span.End()
	defer s.observe("unset_target", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return err
	}
	if err = s.records.UnsetTarget(ctx, tok, now); err != nil {
		return err
	}

	s.emit(ctx, events.Event{
		Type: events.TypeTargetChanged,
		Name: tok.BoundName.String(),
		Tick: now,
	})
	return nil
}

// SetDefaultDomain makes the token's bound name the caller's default name.
func (s *Service) SetDefaultDomain(ctx context.Context, app string, tokenID domain.TokenID, caller naming.Address, now uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.SetDefaultDomain")
	defer span.End()
	defer s.observe("set_default_domain", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return err
	}
	return s.records.SetDefaultDomain(ctx, tok, caller, now)
}

// UnsetDefaultDomain removes the caller's own reverse entry. Idempotent.
func (s *Service) UnsetDefaultDomain(ctx context.Context, app string, caller naming.Address) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.UnsetDefaultDomain")
	defer span.End()
	defer s.observe("unset_default_domain", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	return s.records.UnsetDefaultDomain(ctx, caller)
}

// Transfer hands a token to a new holder. Staleness is unaffected.
func (s *Service) Transfer(ctx context.Context, app string, tokenID domain.TokenID, to naming.Address) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.Transfer")
	defer span.End()
	defer s.observe("transfer", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	_, err = s.tokens.Execute(ctx, tokenID, func(t *token.Token) {
		t.Transfer(to)
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "unknown token")
	}
	return err
}

// UpdateImage applies a signed off-chain display update. Authorization is
// re-derived from stored truth: the message's expiry must equal the live
// registrar expiry (a renewal invalidates older signed messages), its owner
// must equal the token's current holder, and the token itself must pass the
// combined guard even when the signature is perfectly valid.
func (s *Service) UpdateImage(ctx context.Context, app string, tokenID domain.TokenID, signature, digest, raw []byte, now uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, "registry.UpdateImage")
	defer span.End()
	defer s.observe("update_image", time.Now(), &err)

	if err = s.requireApp(app); err != nil {
		return err
	}
	tok, err := s.token(ctx, tokenID)
	if err != nil {
		return err
	}

	msg, err := s.verifier.Verify(signature, digest, raw)
	if err != nil {
		return err
	}

	label, tld, err := naming.Split(tok.BoundName)
	if err != nil {
		return err
	}
	expiry, err := s.registrar.Expiry(ctx, tld, label.String())
	if err != nil {
		return err
	}
	if msg.Expiry != expiry {
		return dErrors.New(dErrors.CodeInvalidMessage, "message expiry does not match the current lease")
	}
	if msg.Owner != tok.Holder {
		return dErrors.New(dErrors.CodeInvalidMessage, "message owner does not match the token holder")
	}
	if err = s.records.GuardFresh(ctx, tok, now); err != nil {
		return err
	}

	if _, err = s.tokens.Execute(ctx, tokenID, func(t *token.Token) {
		t.ImageURL = msg.Payload
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update token display")
	}

	s.emit(ctx, events.Event{
		Type: events.TypeImageUpdated,
		Name: tok.BoundName.String(),
		Tick: now,
	})
	return nil
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Token resolves a token by identity.
func (s *Service) Token(ctx context.Context, tokenID domain.TokenID) (*token.Token, error) {
	return s.token(ctx, tokenID)
}

// Lookup returns the record and live expiry for a fully-qualified name.
func (s *Service) Lookup(ctx context.Context, name naming.Name) (*models.NameRecord, uint64, error) {
	record, err := s.records.Get(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	label, tld, err := naming.Split(name)
	if err != nil {
		return nil, 0, err
	}
	expiry, err := s.registrar.Expiry(ctx, tld, label.String())
	if err != nil {
		return nil, 0, err
	}
	return record, expiry, nil
}

// Available reports whether label may be registered under tld at now.
func (s *Service) Available(ctx context.Context, tld, label string, now uint64) (bool, error) {
	if err := s.requireTLD(tld); err != nil {
		return false, err
	}
	return s.registrar.Available(ctx, tld, label, now)
}

// DefaultDomain returns the default name for an address.
func (s *Service) DefaultDomain(ctx context.Context, addr naming.Address) (naming.Name, error) {
	return s.records.DefaultDomain(ctx, addr)
}

// -----------------------------------------------------------------------------
// Administrative operations
// -----------------------------------------------------------------------------

// SetPublicKey replaces the deployment's verification key.
func (s *Service) SetPublicKey(ctx context.Context, caller naming.Address, key []byte) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	s.verifier.SetPublicKey(key)
	s.logger.InfoContext(ctx, "verification key rotated", "admin", caller)
	return nil
}

// CreateTLD opens a new top-level domain for registration.
func (s *Service) CreateTLD(ctx context.Context, caller naming.Address, tld string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tlds[tld]; exists {
		return dErrors.New(dErrors.CodeConflict, "TLD already exists")
	}
	s.tlds[tld] = struct{}{}
	s.logger.InfoContext(ctx, "TLD created", "tld", tld, "admin", caller)
	return nil
}

// AuthorizeApp grants an application the mutation flag.
func (s *Service) AuthorizeApp(ctx context.Context, caller naming.Address, app string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app] = struct{}{}
	s.logger.InfoContext(ctx, "application authorized", "app", app, "admin", caller)
	return nil
}

// DeauthorizeApp revokes an application's mutation flag. Idempotent.
func (s *Service) DeauthorizeApp(ctx context.Context, caller naming.Address, app string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.apps, app)
	s.logger.InfoContext(ctx, "application deauthorized", "app", app, "admin", caller)
	return nil
}

// Withdraw drains the accumulated registration payments.
func (s *Service) Withdraw(ctx context.Context, caller naming.Address) (uint64, error) {
	if err := s.requireAdmin(caller); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance == 0 {
		return 0, dErrors.New(dErrors.CodeNoProfits, "nothing to withdraw")
	}
	amount := s.balance
	s.balance = 0
	s.logger.InfoContext(ctx, "profits withdrawn", "amount", amount, "admin", caller)
	return amount, nil
}

// -----------------------------------------------------------------------------
// Internal helpers
// -----------------------------------------------------------------------------

func (s *Service) token(ctx context.Context, tokenID domain.TokenID) (*token.Token, error) {
	tok, err := s.tokens.Get(ctx, tokenID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown token")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve token")
	}
	return tok, nil
}

func (s *Service) requireApp(app string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app]; !ok {
		return dErrors.New(dErrors.CodeAppNotAuthorized, "application is not authorized")
	}
	return nil
}

func (s *Service) requireAdmin(caller naming.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[caller]; !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "admin capability required")
	}
	return nil
}

func (s *Service) requireTLD(tld string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tlds[tld]; !ok {
		return dErrors.New(dErrors.CodeInvalidBaseNode, "unknown TLD")
	}
	return nil
}

func (s *Service) bank(payment uint64) {
	if payment == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance += payment
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	event.EmittedAt = time.Now()
	if err := s.events.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event emission failed",
			"type", event.Type,
			"name", event.Name,
			"error", err,
		)
	}
}

func (s *Service) observe(op string, start time.Time, err *error) {
	code := "ok"
	if *err != nil {
		code = string(dErrors.CodeOf(*err))
	}
	s.metrics.Observe(op, code, time.Since(start).Seconds())
}
