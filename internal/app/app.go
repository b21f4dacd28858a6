package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/cache"
	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/favorites"
	"github.com/bobmcallan/wealth-portal/internal/handlers"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
	"github.com/bobmcallan/wealth-portal/internal/loader"
	"github.com/bobmcallan/wealth-portal/internal/mcp"
	"github.com/bobmcallan/wealth-portal/internal/storage"
)

// storageConnectTimeout bounds backend connection checks at startup.
const storageConnectTimeout = 5 * time.Second

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage   interfaces.StorageManager
	Library   *catalog.Library
	Engine    *catalog.Engine
	Favorites *favorites.Manager
	Cache     *cache.ResponseCache
	Load      catalog.LoadFunc

	// HTTP handlers
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	ProductsHandler  *handlers.ProductsHandler
	FavoritesHandler *handlers.FavoritesHandler
	CyclesHandler    *handlers.CyclesHandler
	ReloadHandler    *handlers.ReloadHandler
	MCPHandler       *mcp.Handler

	stopRefresh context.CancelFunc
}

// New initializes the application with all dependencies and performs the
// first data load. A failed first load leaves the product lists empty.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageConnectTimeout)
	defer cancel()
	mgr, err := storage.NewStorageManager(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.Storage = mgr

	src, err := loader.NewSource(&cfg.Data)
	if err != nil {
		mgr.Close()
		return nil, err
	}
	a.Load = loader.Func(src)

	a.Library = catalog.NewLibrary(logger)
	a.Engine = catalog.NewEngine(cfg.Data.Locale)
	a.Favorites = favorites.NewManager(mgr.KeyValueStorage(), logger)
	a.Cache = cache.New(cfg.Cache.GetTTL(), cfg.Cache.MaxEntries)
	a.Library.OnReplace(a.Cache.Clear)

	a.initHandlers()

	logger.Info().Str("source", src.String()).Msg("loading data")
	_ = a.Library.Reload(context.Background(), a.Load)

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	baseURL := a.Config.BaseURL()

	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Library)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ProductsHandler = handlers.NewProductsHandler(a.Logger, a.Library, a.Engine, a.Favorites, a.Cache, baseURL)
	a.FavoritesHandler = handlers.NewFavoritesHandler(a.Logger, a.Favorites, a.Cache)
	a.CyclesHandler = handlers.NewCyclesHandler(a.Logger, a.Library)
	a.ReloadHandler = handlers.NewReloadHandler(a.Logger, a.Library, a.Load)

	a.MCPHandler = mcp.NewHandler(mcp.Deps{
		Library:   a.Library,
		Engine:    a.Engine,
		Favorites: a.Favorites,
		Cache:     a.Cache,
		BaseURL:   baseURL,
	}, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// StartRefresh reloads the data every data.refresh_interval until Close.
// It does nothing when no interval is configured.
func (a *App) StartRefresh() {
	interval := a.Config.Data.GetRefreshInterval()
	if interval <= 0 || a.stopRefresh != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopRefresh = cancel
	a.Logger.Info().Str("interval", interval.String()).Msg("periodic data refresh enabled")
	go a.Library.RefreshEvery(ctx, interval, a.Load)
}

// Close stops background work and closes storage.
func (a *App) Close() error {
	if a.stopRefresh != nil {
		a.stopRefresh()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
