package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. Values come from
// the environment so main stays lean.
type Config struct {
	Addr string

	// DatabaseURL selects the postgres store; empty means in-memory.
	DatabaseURL string

	// RedisURL enables the group-definition cache; empty disables it.
	RedisURL string
	CacheTTL time.Duration

	// KafkaBrokers enables the audit pipeline; empty disables it.
	KafkaBrokers []string
	KafkaTopic   string

	// EncryptionKey is a 64-char hex AES-256 key. When unset,
	// EncryptionPassphrase (plus salt) is used instead; when both are
	// empty, values are stored in plaintext (dev only).
	EncryptionKey        string
	EncryptionPassphrase string
	EncryptionSalt       string

	JWTSigningKey string

	LocaleDir     string
	DefaultLocale string

	// DevMode lifts the non-editable field restriction.
	DevMode bool
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:                 getenv("FIELDHUB_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("FIELDHUB_DATABASE_URL"),
		RedisURL:             os.Getenv("FIELDHUB_REDIS_URL"),
		CacheTTL:             time.Minute,
		KafkaTopic:           getenv("FIELDHUB_KAFKA_TOPIC", "fieldhub.audit"),
		EncryptionKey:        os.Getenv("FIELDHUB_ENCRYPTION_KEY"),
		EncryptionPassphrase: os.Getenv("FIELDHUB_ENCRYPTION_PASSPHRASE"),
		EncryptionSalt:       getenv("FIELDHUB_ENCRYPTION_SALT", "fieldhub"),
		JWTSigningKey:        getenv("FIELDHUB_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LocaleDir:            os.Getenv("FIELDHUB_LOCALE_DIR"),
		DefaultLocale:        getenv("FIELDHUB_LOCALE", "en"),
		DevMode:              os.Getenv("FIELDHUB_DEV_MODE") == "true",
	}

	if ttl := os.Getenv("FIELDHUB_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	if brokers := os.Getenv("FIELDHUB_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
