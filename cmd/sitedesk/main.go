package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitedesk/internal/config"
	httpapi "sitedesk/internal/http"
	"sitedesk/internal/logger"
	"sitedesk/internal/repository"
	"sitedesk/internal/service"
	"sitedesk/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "sitedesk")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	kv := openKV(cfg, log)
	st := repository.NewStore(kv, log)
	if cfg.SeedSample {
		st.InitIfEmpty(context.Background())
	}

	assignSvc := service.NewAssignService(st, log)
	searchSvc := service.NewSearchService(st, log)
	exportSvc := service.NewExportService(st, assignSvc, log)

	router := httpapi.NewRouter(log)
	router.RegisterSiteRoutes(httpapi.NewSitesHandler(st, assignSvc, log))
	router.RegisterStaffRoutes(httpapi.NewStaffHandler(st, assignSvc, log))
	router.RegisterScheduleRoutes(httpapi.NewSchedulesHandler(st, log))
	router.RegisterAssignRoutes(httpapi.NewAssignHandler(assignSvc, log))
	router.RegisterSearchRoutes(httpapi.NewSearchHandler(searchSvc, log))
	router.RegisterExportRoutes(httpapi.NewExportHandler(exportSvc, log))
	router.RegisterAdminRoutes(httpapi.NewAdminHandler(st, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.Warn("HTTP server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// openKV selects the persistence backend. Redis/Postgres fall back to the
// file backend when unreachable, so a plain `go run` always comes up.
func openKV(cfg *config.Config, log *zap.Logger) store.KV {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Info("using in-memory store")
		return store.NewMemoryKV()
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err == nil {
			log.Info("using redis store", zap.String("addr", cfg.Redis.Addr))
			return store.NewRedisKV(client)
		} else {
			log.Warn("redis unreachable, falling back to file store", zap.Error(err))
		}
	case config.BackendPostgres:
		if kv, err := store.NewPostgresKV(cfg.PostgresDSN()); err == nil {
			log.Info("using postgres store", zap.String("db", cfg.Database.Database))
			return kv
		} else {
			log.Warn("postgres unreachable, falling back to file store", zap.Error(err))
		}
	}

	kv, err := store.NewFileKV(cfg.Store.DataDir)
	if err != nil {
		log.Warn("file store unavailable, using in-memory store", zap.Error(err))
		return store.NewMemoryKV()
	}
	log.Info("using file store", zap.String("dir", cfg.Store.DataDir))
	return kv
}
