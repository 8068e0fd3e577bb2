package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/config"
	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/draft"
	"github.com/youlearn/youlearn/internal/httpserver"
	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
	"github.com/youlearn/youlearn/internal/redis"
	"github.com/youlearn/youlearn/internal/search"
	"github.com/youlearn/youlearn/internal/sources/seed"
	redisstore "github.com/youlearn/youlearn/internal/store/redis"
	"github.com/youlearn/youlearn/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	catalog     *catalog.Catalog
	draft       *draft.Controller
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without it the catalog runs as a memory-only
	// session and loses durability, which /infra reports.
	var redisClient *goredis.Client
	var snapshot catalog.Snapshot = catalog.NewMemorySnapshot()
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
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
			loggerClient.Warn("Redis unavailable, falling back to memory-only catalog",
				logger.Error(err))
		} else {
			loggerClient.Info("Redis initialized successfully")
			redisClient = client
			snapshot = redisstore.NewStore(client)
		}
	} else {
		loggerClient.Info("no Redis address configured, catalog is memory-only")
	}

	cat := catalog.New(snapshot, loggerClient)
	if err := cat.Load(context.Background()); err != nil {
		loggerClient.Warn("failed to load catalog snapshot", logger.Error(err))
	}

	// Seed an empty catalog from a YAML file when configured.
	if cfg.SeedFile != "" && cat.Len() == 0 {
		importSeed(cfg.SeedFile, cat, loggerClient)
	}

	searchClient := search.NewClient(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey,
		cfg.SearchTimeout, cfg.SearchCacheTTL, loggerClient)

	draftCtl := draft.NewController(searchClient, cat,
		cfg.SearchDebounce, cfg.SearchTimeout, loggerClient)

	placeholder := domain.Video{
		ID:          "placeholder",
		Title:       cfg.PlaceholderTitle,
		Description: cfg.PlaceholderDescription,
		URL:         cfg.PlaceholderURL,
	}
	selection := catalog.NewSelection(cat,
		catalog.FallbackPolicy(cfg.FallbackPolicy), placeholder)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedOrigins: cfg.AllowedOrigins,
		RedisClient:    redisClient,
		Catalog:        cat,
		Selection:      selection,
		Draft:          draftCtl,
		Search:         searchClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		catalog:     cat,
		draft:       draftCtl,
	}
}

func importSeed(path string, cat *catalog.Catalog, log logger.Logger) {
	file, err := seed.NewLoader(path).Load()
	if err != nil {
		log.Warn("failed to load seed file", logger.String("file", path), logger.Error(err))
		return
	}
	videos, skipped := seed.NewMapper().Map(file)
	imported := 0
	for _, v := range videos {
		if err := cat.Append(context.Background(), v); err != nil {
			log.Warn("failed to import seed entry",
				logger.String("title", v.Title), logger.Error(err))
			continue
		}
		imported++
	}
	log.Info("seed import complete",
		logger.String("file", path),
		logger.Int("imported", imported),
		logger.Int("skipped", skipped))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting YouLearn v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("YouLearn %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop any pending debounced search before shutting down the server.
	a.draft.Cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ YouLearn stopped cleanly")
	return nil
}
