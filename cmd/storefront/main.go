package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/frocone/internal/catalog"
	"github.com/fjod/frocone/internal/config"
	"github.com/fjod/frocone/internal/content"
	h "github.com/fjod/frocone/internal/http"
	"github.com/fjod/frocone/internal/inquiry"
	"github.com/fjod/frocone/internal/logger"
	"github.com/fjod/frocone/internal/orders"
	"github.com/fjod/frocone/internal/publisher"
	"github.com/fjod/frocone/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadServer()
	log := logger.Init(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog and content share one SQLite file.
	sqliteDB, err := storage.OpenSQLite(cfg.CatalogDBPath)
	if err != nil {
		fatal(log, "failed to open catalog database", err)
	}
	defer sqliteDB.Close()

	catalogRepo := catalog.NewRepository(sqliteDB)
	if err := catalogRepo.RunMigrations(); err != nil {
		fatal(log, "failed to migrate catalog", err)
	}
	contentRepo := content.NewRepository(sqliteDB)
	if err := contentRepo.RunMigrations(); err != nil {
		fatal(log, "failed to migrate content", err)
	}

	var productCache catalog.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			c := catalog.NewRedisCache(rdb)
			if err := c.Flush(ctx); err != nil {
				log.Warn("failed to flush catalog cache", "error", err)
			}
			productCache = c
		}
	}
	catalogSvc := catalog.NewService(catalogRepo, productCache, log)

	pg, err := storage.OpenPostgres(cfg.Postgres)
	if err != nil {
		fatal(log, "failed to connect to postgres", err)
	}
	defer pg.Close()

	ordersRepo := orders.NewRepository(pg)
	if err := ordersRepo.RunMigrations(); err != nil {
		fatal(log, "failed to migrate orders", err)
	}
	ordersSvc := orders.NewService(ordersRepo, log)

	if len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(ordersRepo, log.With("component", "outbox"), cfg.KafkaBrokers...)
		go poller.Run(ctx)
		log.Info("outbox publisher started", "brokers", cfg.KafkaBrokers, "topic", publisher.Topic)
	} else {
		log.Info("no kafka brokers configured, outbox publisher disabled")
	}

	mongoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	mdb, err := storage.ConnectMongoDB(mongoCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		fatal(log, "failed to connect to mongodb", err)
	}
	defer func() { _ = mdb.Client().Disconnect(context.Background()) }()

	inquiryRepo := inquiry.NewMongoRepository(mdb)
	if err := inquiryRepo.CreateIndexes(ctx); err != nil {
		log.Warn("failed to create inquiry indexes", "error", err)
	}
	var notifier inquiry.Notifier
	if cfg.SendGridAPIKey != "" && cfg.MailTo != "" {
		notifier = inquiry.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailTo)
	}
	inquirySvc := inquiry.NewService(inquiryRepo, notifier, log)

	router := h.NewRouter(h.Handlers{
		Products: h.NewProductHandler(catalogSvc, cfg.RequestTimeout),
		Orders:   h.NewOrderHandler(ordersSvc, cfg.RequestTimeout),
		Contact:  h.NewContactHandler(inquirySvc, cfg.RequestTimeout),
		Content:  h.NewContentHandler(contentRepo, cfg.RequestTimeout),
	}, h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
