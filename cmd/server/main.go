package main

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"nameledger/internal/events"
	"nameledger/internal/events/kafka"
	jwttoken "nameledger/internal/jwt_token"
	"nameledger/internal/naming"
	"nameledger/internal/platform/config"
	"nameledger/internal/platform/httpserver"
	"nameledger/internal/platform/logger"
	"nameledger/internal/platform/middleware"
	platformredis "nameledger/internal/platform/redis"
	recordsmetrics "nameledger/internal/records/metrics"
	recordsservice "nameledger/internal/records/service"
	recordstore "nameledger/internal/records/store/record"
	reversestore "nameledger/internal/records/store/reverse"
	registrarmetrics "nameledger/internal/registrar/metrics"
	registrarservice "nameledger/internal/registrar/service"
	registrarstore "nameledger/internal/registrar/store"
	"nameledger/internal/registry/adapters"
	"nameledger/internal/registry/handler"
	registrymetrics "nameledger/internal/registry/metrics"
	registryservice "nameledger/internal/registry/service"
	tokenstore "nameledger/internal/token/store"
	"nameledger/internal/verifier"
	txcontext "nameledger/pkg/platform/tx"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		registrarStore registrarservice.Store
		recordStore    recordsservice.RecordStore
		reverseStore   recordsservice.ReverseStore
		recordsOpts    []recordsservice.Option
		healthChecks   []func(context.Context) error
	)

	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect registrar pool: %w", err)
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, registrarstore.Schema); err != nil {
			return fmt.Errorf("apply registrations schema: %w", err)
		}
		registrarStore = registrarstore.NewPostgres(pool)
		healthChecks = append(healthChecks, pool.Ping)

		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect records db: %w", err)
		}
		defer db.Close()
		if _, err := db.ExecContext(ctx, recordstore.Schema); err != nil {
			return fmt.Errorf("apply name_records schema: %w", err)
		}
		if _, err := db.ExecContext(ctx, reversestore.Schema); err != nil {
			return fmt.Errorf("apply reverse_entries schema: %w", err)
		}
		recordStore = recordstore.NewPostgres(db)
		reverseStore = reversestore.NewPostgres(db)
		recordsOpts = append(recordsOpts, recordsservice.WithTransactor(txcontext.NewSQL(db)))
		healthChecks = append(healthChecks, db.PingContext)
	} else {
		registrarStore = registrarstore.NewInMemory()
		recordStore = recordstore.NewInMemory()
		reverseStore = reversestore.NewInMemory()
	}

	// Redis, when configured, takes over the reverse index from whichever
	// store was selected above.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		reverseStore = reversestore.NewRedis(redisClient.Client)
		healthChecks = append(healthChecks, redisClient.Health)
	}

	registrarOpts := []registrarservice.Option{
		registrarservice.WithLogger(log),
		registrarservice.WithMetrics(registrarmetrics.New()),
	}
	if cfg.GracePeriodMillis > 0 {
		registrarOpts = append(registrarOpts, registrarservice.WithGracePeriod(cfg.GracePeriodMillis))
	}
	registrarSvc := registrarservice.New(registrarStore, registrarOpts...)

	recordsOpts = append(recordsOpts,
		recordsservice.WithLogger(log),
		recordsservice.WithMetrics(recordsmetrics.New()),
	)
	recordsSvc := recordsservice.New(recordStore, reverseStore, registrarSvc, recordsOpts...)

	var verifyKey []byte
	if cfg.VerifyKeyHex != "" {
		verifyKey, err = hex.DecodeString(cfg.VerifyKeyHex)
		if err != nil {
			return fmt.Errorf("decode verify key: %w", err)
		}
	}
	keyVerifier := adapters.NewVerifier(verifier.New(verifyKey))

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	admins := make([]naming.Address, 0, len(cfg.Admins))
	for _, raw := range cfg.Admins {
		addr, err := naming.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("admin address %q: %w", raw, err)
		}
		admins = append(admins, addr)
	}

	registryOpts := []registryservice.Option{
		registryservice.WithLogger(log),
		registryservice.WithMetrics(registrymetrics.New()),
		registryservice.WithAdmins(admins...),
		registryservice.WithTLDs(cfg.TLDs...),
	}
	if publisher != nil {
		registryOpts = append(registryOpts, registryservice.WithEvents(publisher))
	}
	registrySvc := registryservice.New(registrarSvc, recordsSvc, tokenstore.NewInMemory(), keyVerifier, registryOpts...)

	jwtSvc := jwttoken.NewJWTService(cfg.JWTSigningKey, "nameledger", "nameledger-api")

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestMetadata)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(healthChecks))

	handler.New(registrySvc, log).Register(router, middleware.RequireAuth(jwtSvc, log))

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting nameledger", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func healthz(checks []func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
