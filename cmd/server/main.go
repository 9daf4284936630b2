// Command server runs the fieldhub HTTP service.
//
// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"fieldhub/internal/audit"
	"fieldhub/internal/crypto"
	"fieldhub/internal/customfields"
	"fieldhub/internal/i18n"
	jwttoken "fieldhub/internal/jwt_token"
	"fieldhub/internal/platform/config"
	"fieldhub/internal/platform/httpserver"
	"fieldhub/internal/platform/logger"
	"fieldhub/internal/platform/metrics"
	platformredis "fieldhub/internal/platform/redis"
	"fieldhub/internal/render"
	httptransport "fieldhub/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(cfg, log)
	if err != nil {
		return err
	}

	cryptoSvc, err := buildCrypto(cfg, log)
	if err != nil {
		return err
	}

	translator, err := buildTranslator(cfg)
	if err != nil {
		return err
	}

	auditPub, queue, kafkaClose := buildAudit(cfg, log)
	defer kafkaClose()

	service := customfields.NewService(
		store,
		cryptoSvc,
		render.New(),
		translator,
		auditPub,
		metrics.New(),
		log,
		customfields.Config{DevMode: cfg.DevMode},
	)

	validator := jwttoken.NewService(cfg.JWTSigningKey, "fieldhub")
	handler := httptransport.NewHandler(service, log)
	adminHandler := httptransport.NewAdminHandler(store, log)
	router := httptransport.NewRouter(handler, adminHandler, validator, log)
	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	if queue != nil {
		group.Go(func() error {
			if err := queue.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	group.Go(func() error {
		log.Info("starting fieldhub", "addr", cfg.Addr, "dev_mode", cfg.DevMode)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildStore(cfg config.Config, log *slog.Logger) (customfields.Store, error) {
	var store customfields.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		store = customfields.NewPostgresStore(db)
	} else {
		log.Warn("no database configured, using in-memory store")
		store = customfields.NewMemoryStore()
	}

	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		store = customfields.NewCachedStore(store, rdb, cfg.CacheTTL)
	}
	return store, nil
}

func buildCrypto(cfg config.Config, log *slog.Logger) (crypto.Service, error) {
	switch {
	case cfg.EncryptionKey != "":
		return crypto.NewAESGCM(cfg.EncryptionKey)
	case cfg.EncryptionPassphrase != "":
		return crypto.NewAESGCMFromPassphrase(cfg.EncryptionPassphrase, cfg.EncryptionSalt)
	default:
		log.Warn("no encryption key configured, storing values in plaintext")
		return crypto.Noop{}, nil
	}
}

func buildTranslator(cfg config.Config) (*i18n.Translator, error) {
	if cfg.LocaleDir == "" {
		return i18n.NewStatic(cfg.DefaultLocale, nil), nil
	}
	return i18n.Load(cfg.LocaleDir, cfg.DefaultLocale)
}

// buildAudit returns the publisher the service should use, the queue to run
// (nil when auditing is disabled) and a close function for the kafka client.
func buildAudit(cfg config.Config, log *slog.Logger) (audit.Publisher, *audit.Queue, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.Nop{}, nil, func() {}
	}
	kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Error("audit pipeline unavailable, events will be dropped", "error", err)
		return audit.Nop{}, nil, func() {}
	}
	queue := audit.NewQueue(kafka, log, 256)
	return queue, queue, kafka.Close
}
