package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shinydollop/core/internal/config"
	"github.com/shinydollop/core/internal/database"
	"github.com/shinydollop/core/internal/middleware"
	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
	pkgredis "github.com/shinydollop/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	store  *catalog.Store
	stats  analytics.Provider
	rc     *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
}

// New initializes the application: config → catalog source → store → routes.
// The database and Redis are optional depending on the configured source.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	var db *gorm.DB
	if cfg.Source == config.SourceDatabase {
		var err error
		db, err = database.Connect(cfg, true)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, response caching disabled", zap.Error(err))
			rc = nil
		}
	}

	loader, err := buildLoader(cfg, db)
	if err != nil {
		return nil, err
	}

	var stats analytics.Provider
	storeOpts := []catalog.StoreOption{
		catalog.WithTTL(cfg.SnapshotTTL),
		catalog.WithFallback(&catalog.StaticLoader{}),
		catalog.WithStoreLogger(logger),
	}
	if db != nil {
		dbStats := analytics.NewDB(db, logger)
		stats = dbStats
		storeOpts = append(storeOpts, catalog.WithOnReload(func(*catalog.Snapshot) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := dbStats.Refresh(ctx); err != nil {
				logger.Warn("failed to refresh gallery stats", zap.Error(err))
			}
		}))
	} else {
		stats = analytics.NewStatic(nil)
	}
	store := catalog.NewStore(loader, storeOpts...)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length", "x-sd-cache"},
	}))

	// Warm the snapshot in the background so the first request does not pay
	// the initial load.
	ctx, cancel := context.WithCancel(context.Background())
	go store.Snapshot(ctx)

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		store:  store,
		stats:  stats,
		rc:     rc,
		logger: logger,
		cancel: cancel,
	}
	app.registerRoutes()

	return app, nil
}

func buildLoader(cfg *config.AppConfig, db *gorm.DB) (catalog.Loader, error) {
	switch cfg.Source {
	case config.SourceMarkdown:
		return &catalog.MarkdownLoader{Dir: cfg.DataDir}, nil
	case config.SourceStatic:
		return &catalog.StaticLoader{}, nil
	case config.SourceDatabase:
		return &catalog.DatabaseLoader{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Store exposes the catalog store for maintenance hooks.
func (a *App) Store() *catalog.Store { return a.store }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
