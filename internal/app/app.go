package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/sidenav/internal/config"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
	"github.com/MrSnakeDoc/sidenav/internal/redis"
	"github.com/MrSnakeDoc/sidenav/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
	"github.com/MrSnakeDoc/sidenav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	revisions   *index.RevisionIndex
	reloader    *scheduler.NavReloader
	gc          *scheduler.GarbageCollector
}

func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	m := metrics.New(version.Version, version.GoVersion)
	revisions := index.NewRevisionIndex(cfg.MaxRevisions)

	// Redis is optional: without it, revisions live in memory only.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisEnabled() {
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		store = redisstore.NewStore(client)

		// Restore the last-known-good revision before touching the file
		syncer := scheduler.NewRedisSyncer(store, revisions, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to restore from redis, will load from file",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, snapshots disabled")
	}

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewNavReloader(
		cfg.NavFile,
		store,
		revisions,
		m,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		store,
		revisions,
		m,
		loggerClient,
		cfg.GCInterval,
		cfg.RevisionRetention,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		NavFile:       cfg.NavFile,
		RedisClient:   redisClient,
		Index:         revisions,
		Metrics:       m,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		revisions:   revisions,
		reloader:    reloader,
		gc:          gc,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the file once, then refresh periodically
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reloader: %w", err)
	}
	a.logger.Info("reloader started",
		logger.String("file", a.cfg.NavFile),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if err := a.gc.Start(ctx); err != nil {
		a.reloader.Stop()
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.reloader.Stop()
		a.gc.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		if cerr := a.redisClient.Close(); cerr != nil {
			a.logger.Warnf("failed to close redis: %v", cerr)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}
	_ = a.logger.Sync()

	if err != nil {
		return err
	}
	a.logger.Info("✅ sidenav stopped cleanly")
	return nil
}
