package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	strutil "nameledger/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// PostgresURL selects the SQL-backed stores when set; empty means the
	// in-memory stores, which is what tests and local development use.
	PostgresURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// VerifyKeyHex is the initial off-chain signing public key (Ed25519,
	// hex). An admin can rotate it at runtime.
	VerifyKeyHex string

	// Admins are canonical hex addresses allowed on admin routes.
	Admins []string

	// TLDs seeded at startup; admins can add more.
	TLDs []string

	// GracePeriodMillis overrides the default post-expiry grace window when
	// nonzero.
	GracePeriodMillis uint64
}

// RedisConfig holds connection settings for the reverse-index store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the lifecycle event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("NAMELEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		PostgresURL:   os.Getenv("NAMELEDGER_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("NAMELEDGER_REDIS_URL"),
			PoolSize:     envInt("NAMELEDGER_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("NAMELEDGER_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: envList("NAMELEDGER_KAFKA_BROKERS"),
			Topic:   os.Getenv("NAMELEDGER_KAFKA_TOPIC"),
		},
		VerifyKeyHex:      os.Getenv("NAMELEDGER_VERIFY_KEY"),
		Admins:            envList("NAMELEDGER_ADMINS"),
		TLDs:              envList("NAMELEDGER_TLDS"),
		GracePeriodMillis: envUint("NAMELEDGER_GRACE_PERIOD_MS", 0),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	out := strutil.DedupeAndTrim(strings.Split(v, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
