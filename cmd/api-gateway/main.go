package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/noah-isme/classroom-dashboard-api/internal/handler"
	"github.com/noah-isme/classroom-dashboard-api/internal/repository"
	"github.com/noah-isme/classroom-dashboard-api/internal/service"
	"github.com/noah-isme/classroom-dashboard-api/pkg/cache"
	"github.com/noah-isme/classroom-dashboard-api/pkg/config"
	"github.com/noah-isme/classroom-dashboard-api/pkg/database"
	"github.com/noah-isme/classroom-dashboard-api/pkg/jobs"
	"github.com/noah-isme/classroom-dashboard-api/pkg/logger"
)

// @title Classroom Dashboard API
// @version 1.0.0
// @description Aggregated submission progress over Google Classroom courses
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	store, checks, closeStore, err := newCacheStore(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init cache store", "driver", cfg.Cache.Driver, "error", err)
	}
	defer closeStore()
	cacheSvc := service.NewCacheService(store, metrics, cfg.Cache.TTL, logr, true)

	sessions := repository.NewSessionStore(context.Background(), &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       cfg.Google.Scopes,
		Endpoint:     google.Endpoint,
	})
	if cfg.Google.RefreshToken != "" {
		sessions.Set(&oauth2.Token{RefreshToken: cfg.Google.RefreshToken})
		logr.Info("classroom session seeded from refresh token")
	}

	source := repository.NewClassroomRepository(repository.ClassroomRepositoryParams{
		Sessions: sessions,
		Endpoint: cfg.Classroom.Endpoint,
		Timeout:  cfg.Classroom.FetchTimeout,
		Metrics:  metrics,
		Logger:   logr,
	})

	classroomSvc := service.NewClassroomService(service.ClassroomServiceParams{
		Source:    source,
		Cache:     cacheSvc,
		Validator: validator.New(),
		Logger:    logr,
		Config: service.ClassroomServiceConfig{
			PageSize:        cfg.Classroom.DefaultPageSize,
			CacheTTL:        cfg.Cache.TTL,
			CollationLocale: cfg.Classroom.CollationLocale,
		},
	})
	sessionSvc := service.NewSessionService(sessions, cacheSvc, logr)
	warmupSvc := service.NewWarmupService(cacheSvc, classroomSvc, logr)

	if cfg.Warmup.Enabled {
		queue := jobs.NewQueue("cache-warmup", warmupSvc.Handle, jobs.QueueConfig{
			Workers:    cfg.Warmup.Workers,
			MaxRetries: cfg.Warmup.MaxRetries,
			RetryDelay: cfg.Warmup.RetryDelay,
			Timeout:    cfg.Warmup.Timeout,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		warmupSvc.SetQueue(queue)
	}

	router := newRouter(routerDeps{
		cfg:       cfg,
		logger:    logr,
		metrics:   metrics,
		sessions:  sessionSvc,
		classroom: handler.NewClassroomHandler(classroomSvc),
		session:   handler.NewSessionHandler(sessionSvc, warmupSvc),
		health:    handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "cache_driver", cfg.Cache.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCacheStore builds the configured cache backend together with its
// readiness checks and a close function.
func newCacheStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.CacheRepository, map[string]handler.ReadinessCheck, func(), error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := map[string]handler.ReadinessCheck{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		store := repository.NewRedisCacheRepository(client, cfg.Redis.KeyPrefix, logr)
		return store, checks, func() { _ = store.Close() }, nil
	case config.CacheDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		store := repository.NewPostgresCacheRepository(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
		return store, checks, func() { _ = db.Close() }, nil
	case config.CacheDriverMemory, "":
		return repository.NewMemoryCacheRepository(), map[string]handler.ReadinessCheck{}, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
