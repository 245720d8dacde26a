// main wires configuration, stores, services, and the HTTP router, then owns
// the server lifecycle. Business logic lives in the internal packages.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/message"
	"swiftscreen/internal/platform/config"
	"swiftscreen/internal/platform/httpserver"
	"swiftscreen/internal/platform/logger"
	"swiftscreen/internal/platform/metrics"
	platformredis "swiftscreen/internal/platform/redis"
	"swiftscreen/internal/screening"
	screeningmetrics "swiftscreen/internal/screening/metrics"
	"swiftscreen/internal/token"
	httptransport "swiftscreen/internal/transport/http"
	"swiftscreen/internal/watchlist"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		db             *sql.DB
		messageStore   message.Store
		blacklistStore blacklist.Store
	)
	if cfg.Postgres.DSN != "" {
		var err error
		db, err = sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}

		blacklistPg := blacklist.NewPostgres(db)
		if err := blacklistPg.EnsureSchema(ctx); err != nil {
			return err
		}
		messagePg := message.NewPostgres(db)
		if err := messagePg.EnsureSchema(ctx); err != nil {
			return err
		}
		blacklistStore = blacklistPg
		messageStore = messagePg
		log.Info("using postgres stores")
	} else {
		blacklistStore = blacklist.NewMemoryStore()
		messageStore = message.NewMemoryStore()
		log.Warn("no postgres DSN configured, using in-memory stores")
	}

	// Optional Redis snapshot cache.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var loaderOpts []watchlist.LoaderOption
	loaderOpts = append(loaderOpts, watchlist.WithLoaderLogger(log))
	if redisClient != nil {
		defer redisClient.Close()
		loaderOpts = append(loaderOpts,
			watchlist.WithSnapshotCache(watchlist.NewSnapshotCache(redisClient.Client, cfg.SnapshotTTL)))
		log.Info("watchlist snapshot cache enabled")
	}
	loader := watchlist.NewLoader(watchlist.NewFileSource(cfg.WatchlistPath), loaderOpts...)

	// Optional Kafka audit trail.
	var auditor *audit.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := audit.NewKafkaClient(ctx, cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer kafkaClient.Close()

		auditor = audit.NewPublisher(audit.WithPublisherLogger(log))
		worker := audit.NewWorker(kafkaClient, auditor.Inbox(), log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		log.Info("audit publishing enabled", "brokers", cfg.Kafka.Brokers)
	}

	// Services.
	var blOpts []blacklist.Option
	blOpts = append(blOpts, blacklist.WithLogger(log))
	if auditor != nil {
		blOpts = append(blOpts, blacklist.WithAuditor(auditor))
	}
	blacklistSvc, err := blacklist.NewService(blacklistStore, blOpts...)
	if err != nil {
		return err
	}

	screener := screening.NewService(loader,
		screening.WithLogger(log),
		screening.WithMetrics(screeningmetrics.New()),
	)

	var msgOpts []message.Option
	msgOpts = append(msgOpts, message.WithLogger(log))
	if auditor != nil {
		msgOpts = append(msgOpts, message.WithAuditor(auditor))
	}
	messageSvc, err := message.NewService(messageStore, screener, blacklistSvc, msgOpts...)
	if err != nil {
		return err
	}

	tokens := token.NewService(cfg.JWTSigningKey, "swiftscreen", "swiftscreen")

	deps := httptransport.Deps{
		Screener:  screener,
		Messages:  messageSvc,
		Blacklist: blacklistSvc,
		Watchlist: loader,
		Validator: token.NewServiceAdapter(tokens),
		Logger:    log,
		Metrics:   metrics.New(),
		Health: func(ctx context.Context) error {
			if db != nil {
				if err := db.PingContext(ctx); err != nil {
					return err
				}
			}
			if redisClient != nil {
				if err := redisClient.Health(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	}
	if auditor != nil {
		deps.Auditor = auditor
	}
	router := httptransport.NewRouter(deps)

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting swiftscreen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
