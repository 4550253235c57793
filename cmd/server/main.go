// Package main is the entry point for the API server
//
//	@title			Creme Menu API
//	@version		1.0
//	@description	Main menu rendering and menu configuration for Creme.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in						header
//	@name					Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"creme-menu/internal/apps"
	"creme-menu/internal/config"
	"creme-menu/internal/db"
	"creme-menu/internal/esx"
	"creme-menu/internal/httpx"
	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/logx"
	"creme-menu/internal/menuconfig"
	"creme-menu/internal/metric"
	"creme-menu/internal/mqx"
	"creme-menu/internal/redisx"
	"creme-menu/internal/server"
	"creme-menu/pkg"

	_ "creme-menu/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load config (env first; optional Apollo override)
	cfg, store, apClose, err := config.Load()
	if err != nil {
		panic(err)
	}
	if apClose != nil {
		defer apClose()
	}

	logx.Init(cfg.Log.Level, cfg.Log.Format)
	mainLogger := logx.GetScope("main")
	mainLogger.Info("config loaded",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.Server.Addr),
		zap.String("db.driver", cfg.DB.Driver),
		zap.String("log.level", cfg.Log.Level),
	)

	drv, closeDB, err := db.Open(cfg)
	if err != nil {
		mainLogger.Sugar().Errorw("open db error", "err", err)
		panic(err)
	}
	defer closeDB()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, drv); err != nil {
		mainLogger.Sugar().Errorw("migrate error", "err", err)
		panic(err)
	}

	catalog, err := apps.Bootstrap()
	if err != nil {
		mainLogger.Sugar().Errorw("menu catalogue error", "err", err)
		panic(err)
	}

	// Optional deps: Redis, MQ, ES
	metrics := metric.New()
	notifiers := menuconfig.Notifiers{
		menuconfig.NotifierFunc(func(_ context.Context, ev menuconfig.ChangeEvent) {
			metrics.ConfigChanges.Increment(string(ev.Action))
		}),
	}
	opts := []menuconfig.Option{}
	providers := httpx.Providers{Config: store.Get, Forms: catalog.Forms, Metrics: metrics}

	rdb, redisClose, err := redisx.Open(cfg)
	if err != nil {
		mainLogger.Sugar().Warnw("redis init failed", "err", err)
	} else {
		defer redisClose()
	}
	if rdb != nil {
		opts = append(opts, menuconfig.WithCache(menuconfig.NewRedisCache(rdb, func() time.Duration { return store.Get().CacheTTL() })))
		providers.Recent = redisx.NewRecentStore(rdb, func() int { return store.Get().Menu.RecentMax })
		providers.Limiter = redis.Scripter(rdb)
	}

	if cfg.MQ.URL != "" {
		if pub, err := mqx.NewRabbitPublisher(cfg.MQ.URL, cfg.MQ.Exchange); err != nil {
			mainLogger.Sugar().Warnw("mq init failed", "err", err)
		} else {
			defer func() { _ = pub.Close() }()
			notifiers = append(notifiers, menuconfig.MQNotifier{Publisher: pub})
		}
	}

	esClient, esClose, err := esx.Open(cfg)
	if err != nil {
		mainLogger.Sugar().Warnw("es init failed", "err", err)
	} else {
		defer esClose()
	}
	if esClient != nil {
		providers.ES = esClient
		providers.Trash = esx.TrashCounter{ES: esClient, Index: cfg.ES.EntitiesIndex}
	}

	svc := menuconfig.NewService(drv, catalog.Registry, append(opts, menuconfig.WithNotifier(notifiers))...)
	providers.Service = svc

	// Seeding and indexing are independent; both must finish before serving.
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seeded, err := svc.Seed(gctx, apps.DefaultMenu())
		if seeded {
			mainLogger.Info("default menu stored")
		}
		return err
	})
	g.Go(func() error {
		if err := esx.IndexEntries(gctx, esClient, cfg.ES.EntriesIndex, esx.EntryDocs(catalog.Registry.Classes())); err != nil {
			mainLogger.Warn("index menu entries", zap.Error(err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		mainLogger.Sugar().Errorw("startup error", "err", err)
		panic(err)
	}
	mainLogger.Info("startup tasks done", zap.String("took", pkg.FormatDuration(time.Since(start))))

	app := fiber.New(fiber.Config{ErrorHandler: kit.ErrorHandler()})
	httpx.RegisterCommonMiddlewares(app, metrics)
	httpx.Register(app, providers)

	// Validators: rollback strategy for invalid config
	store.AddValidator(config.ValidateBasics)
	store.AddValidator(func(newCfg *config.Config, changed map[string]bool) error {
		if changed["db.url"] && newCfg.DB.URL == "" {
			return fmt.Errorf("DB_URL cannot be emptied at runtime")
		}
		return nil
	})

	store.Watch(func(newCfg *config.Config, changed map[string]bool) {
		if changed["db.max_open"] || changed["db.max_idle"] {
			db.UpdatePool(newCfg.DB.MaxOpenConns, newCfg.DB.MaxIdleConns)
			mainLogger.Info("db pool updated",
				zap.Int("max_open", newCfg.DB.MaxOpenConns),
				zap.Int("max_idle", newCfg.DB.MaxIdleConns),
			)
		}
		if changed["menu.cache_ttl_sec"] {
			mainLogger.Info("menu cache ttl updated", zap.String("ttl", pkg.FormatDuration(newCfg.CacheTTL())))
		}
		if changed["menu.recent_max"] {
			mainLogger.Info("recent entities limit updated", zap.Int("max", newCfg.Menu.RecentMax))
		}
		for _, key := range []string{"db.url", "server.addr", "redis.addr", "mq.url", "es.addrs"} {
			if changed[key] {
				mainLogger.Warn("setting changed; restart required", zap.String("key", key))
			}
		}
		if changed["log.level"] || changed["log.format"] {
			logx.Init(newCfg.Log.Level, newCfg.Log.Format)
			mainLogger.Info("logger reconfigured",
				zap.String("level", newCfg.Log.Level),
				zap.String("format", newCfg.Log.Format),
			)
		}
	})

	// Graceful shutdown
	go func() {
		ln, err := server.GetListener(cfg.Server.Addr)
		if err != nil {
			mainLogger.Sugar().Errorf("listener error: %v", err)
			return
		}
		if err := app.Listener(ln); err != nil {
			mainLogger.Sugar().Infof("fiber exit: %v", err)
		}
	}()
	mainLogger.Sugar().Infof("server started on %s", cfg.Server.Addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	mainLogger.Sugar().Info("shutting down...")
	_ = app.Shutdown()
}
