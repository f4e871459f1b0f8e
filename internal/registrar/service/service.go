// Package service implements the expiry registrar: the authoritative lease
// state machine for labels inside one deployment's TLDs.
//
// Every operation takes the clock tick supplied by the caller; the registrar
// never reads a wall clock. Boundary semantics around the grace window are
// deliberate and asymmetric-looking: a label is available to third parties
// only when expiry+grace < now, and renewable by its holder exactly while
// expiry+grace >= now.
package service

import (
	"context"
	"errors"
	"log/slog"

	"nameledger/internal/naming"
	registrarmetrics "nameledger/internal/registrar/metrics"
	"nameledger/internal/registrar/models"
	dErrors "nameledger/pkg/domain-errors"
	"nameledger/pkg/platform/sentinel"
)

// DefaultGracePeriod is the post-expiry window, in epoch-millisecond ticks,
// during which the prior holder may still renew (30 days).
const DefaultGracePeriod uint64 = 30 * 24 * 3600 * 1000

// Store persists registration details keyed by (tld, label).
type Store interface {
	Get(ctx context.Context, tld string, label naming.Label) (*models.RegistrationDetail, error)
	// Claim atomically validates the current detail (nil when absent) and
	// overwrites it with fresh.
	Claim(ctx context.Context, tld string, label naming.Label, validate func(existing *models.RegistrationDetail) error, fresh *models.RegistrationDetail) error
	// Execute atomically validates then mutates an existing detail.
	Execute(ctx context.Context, tld string, label naming.Label, validate func(*models.RegistrationDetail) error, mutate func(*models.RegistrationDetail)) (*models.RegistrationDetail, error)
}

// Service owns the lease-expiry state machine.
type Service struct {
	store   Store
	grace   uint64
	logger  *slog.Logger
	metrics *registrarmetrics.Metrics
}

type serviceConfig struct {
	grace   uint64
	logger  *slog.Logger
	metrics *registrarmetrics.Metrics
}

type Option func(*serviceConfig)

// WithGracePeriod overrides the grace window, in the same unit as expiry ticks.
func WithGracePeriod(grace uint64) Option {
	return func(c *serviceConfig) { c.grace = grace }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

func WithMetrics(m *registrarmetrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

func New(store Store, opts ...Option) *Service {
	cfg := &serviceConfig{grace: DefaultGracePeriod, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Service{
		store:   store,
		grace:   cfg.grace,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// GracePeriod returns the configured grace window.
func (s *Service) GracePeriod() uint64 { return s.grace }

// Available reports whether the label may be registered at the given tick:
// true when no entry exists or the entry is expired beyond grace. Pure read.
func (s *Service) Available(ctx context.Context, tld, rawLabel string, now uint64) (bool, error) {
	label, err := naming.ParseLabel(rawLabel)
	if err != nil {
		return false, err
	}
	detail, err := s.store.Get(ctx, tld, label)
	if errors.Is(err, sentinel.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read registration")
	}
	return detail.ExpiredBeyondGrace(s.grace, now), nil
}

// Register leases the label for duration ticks starting at now. The previous
// detail, if any, is overwritten whole: approval resets, expiry is replaced.
func (s *Service) Register(ctx context.Context, tld, rawLabel string, duration, now uint64) (uint64, error) {
	label, err := naming.ParseLabel(rawLabel)
	if err != nil {
		s.metrics.IncFailure(string(dErrors.CodeInvalidLabel))
		return 0, err
	}
	if duration == 0 {
		s.metrics.IncFailure(string(dErrors.CodeInvalidDuration))
		return 0, dErrors.New(dErrors.CodeInvalidDuration, "duration must be positive")
	}

	fresh := &models.RegistrationDetail{Expiry: now + duration}
	err = s.store.Claim(ctx, tld, label,
		func(existing *models.RegistrationDetail) error {
			if existing != nil && !existing.ExpiredBeyondGrace(s.grace, now) {
				return dErrors.New(dErrors.CodeLabelUnavailable, "label is not available")
			}
			return nil
		},
		fresh,
	)
	if err != nil {
		s.metrics.IncFailure(string(dErrors.CodeOf(err)))
		return 0, err
	}

	s.logger.InfoContext(ctx, "label registered",
		"tld", tld,
		"label", rawLabel,
		"expiry", fresh.Expiry,
	)
	s.metrics.IncRegistration(tld)
	return fresh.Expiry, nil
}

// Renew extends an active or in-grace lease by duration ticks. Renewal is
// additive on the current expiry, not a reset from now. Past the grace window
// renewal is refused; the label must be re-registered instead.
func (s *Service) Renew(ctx context.Context, tld, rawLabel string, duration, now uint64) (uint64, error) {
	label, err := naming.ParseLabel(rawLabel)
	if err != nil {
		s.metrics.IncFailure(string(dErrors.CodeInvalidLabel))
		return 0, err
	}

	detail, err := s.store.Execute(ctx, tld, label,
		func(d *models.RegistrationDetail) error {
			if d.ExpiredBeyondGrace(s.grace, now) {
				return dErrors.New(dErrors.CodeLabelExpired, "label expired beyond the grace period")
			}
			return nil
		},
		func(d *models.RegistrationDetail) {
			d.Expiry += duration
		},
	)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncFailure(string(dErrors.CodeLabelNotExists))
		return 0, dErrors.New(dErrors.CodeLabelNotExists, "label is not registered")
	}
	if err != nil {
		s.metrics.IncFailure(string(dErrors.CodeOf(err)))
		return 0, err
	}

	s.logger.InfoContext(ctx, "label renewed",
		"tld", tld,
		"label", rawLabel,
		"expiry", detail.Expiry,
	)
	s.metrics.IncRenewal(tld)
	return detail.Expiry, nil
}

// Expiry returns the current lease deadline for the label.
func (s *Service) Expiry(ctx context.Context, tld, rawLabel string) (uint64, error) {
	label, err := naming.ParseLabel(rawLabel)
	if err != nil {
		return 0, err
	}
	detail, err := s.store.Get(ctx, tld, label)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, dErrors.New(dErrors.CodeLabelNotExists, "label is not registered")
	}
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read registration")
	}
	return detail.Expiry, nil
}

// ExpiredBeyondGrace reports whether the label's lease has passed
// expiry+grace at the given tick. Used by the combined token guard where the
// record may not have been re-keyed yet.
func (s *Service) ExpiredBeyondGrace(ctx context.Context, tld, rawLabel string, now uint64) (bool, error) {
	expiry, err := s.Expiry(ctx, tld, rawLabel)
	if err != nil {
		return false, err
	}
	return expiry+s.grace < now, nil
}
