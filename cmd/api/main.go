package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/milsabores/storefront/internal/account"
	"github.com/milsabores/storefront/internal/cart"
	"github.com/milsabores/storefront/internal/catalog"
	"github.com/milsabores/storefront/internal/config"
	"github.com/milsabores/storefront/internal/httpx"
	kafkax "github.com/milsabores/storefront/internal/kafka"
	"github.com/milsabores/storefront/internal/orders"
	"github.com/milsabores/storefront/internal/postgres"
	"github.com/milsabores/storefront/internal/redisx"
	"github.com/milsabores/storefront/internal/session"
	"github.com/milsabores/storefront/internal/upstream"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("db migrate", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(log, cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Upstream + catalog
	client := upstream.New(cfg.UpstreamAPIURL)
	catalogStore := &catalog.Store{DB: db}
	catalogCache := &catalog.Cache{Redis: rdb}
	refresher := &catalog.Refresher{Source: client, Store: catalogStore, Cache: catalogCache, Log: log}
	{
		// single attempt at startup; a dead upstream still leaves us the
		// fallback-seeded catalog
		rctx, rcancel := context.WithTimeout(ctx, 15*time.Second)
		if err := refresher.Refresh(rctx); err != nil {
			log.Warn("startup catalog refresh", zap.Error(err))
		}
		rcancel()
	}

	// Services
	sessions := &session.Manager{Redis: rdb, Secret: []byte(cfg.SessionSecret), TTL: cfg.SessionTTL}
	carts := &cart.Repo{DB: db}
	users := &account.Repo{DB: db}
	accounts := &account.Service{Remote: client, Users: users, Sessions: sessions, Log: log}
	orderRepo := &orders.Repo{DB: db, Carts: carts}
	orderSvc := &orders.Service{
		Carts:       carts,
		Store:       orderRepo,
		Producer:    prod,
		ServiceName: cfg.ServiceName,
		Log:         log,
	}

	// Router
	router := httpx.NewRouter()
	router.Use(httpx.Auth(sessions))
	(&httpx.CatalogHandler{Store: catalogStore, Refresher: refresher, Cache: catalogCache, Log: log}).Register(router)
	(&httpx.CartHandler{Carts: carts, Products: catalogStore, Log: log}).Register(router)
	(&httpx.AccountHandler{Accounts: accounts, Log: log}).Register(router)
	(&httpx.OrdersHandler{Service: orderSvc, Store: orderRepo, Redis: rdb, Log: log}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // stop intake, flush what is buffered
	cancel()
	prod.WaitClosed()
}
