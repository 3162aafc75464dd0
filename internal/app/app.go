// internal/app/app.go
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/your-org/agrimart-client/internal/api"
	"github.com/your-org/agrimart-client/internal/config"
	"github.com/your-org/agrimart-client/internal/domain/cart"
	"github.com/your-org/agrimart-client/internal/domain/catalog"
	"github.com/your-org/agrimart-client/internal/domain/order"
	"github.com/your-org/agrimart-client/internal/domain/session"
	"github.com/your-org/agrimart-client/internal/domain/translation"
	"github.com/your-org/agrimart-client/internal/domain/weather"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
	"github.com/your-org/agrimart-client/internal/pkg/logger"
	"github.com/your-org/agrimart-client/internal/pkg/receipt"
)

// App is the explicit application context handed to screens and
// handlers: one place that owns the store, the backend client and
// every service, with a clear init and teardown instead of ambient
// singletons.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Store  localstore.Store

	API        *api.Client
	Sessions   *session.Manager
	Cart       *cart.Manager
	Orders     *order.OverrideStore
	Translator *translation.Translator
	Catalog    *catalog.Service
	Weather    *weather.Service
	Receipts   *receipt.Service

	redisStore *localstore.RedisStore
}

// New builds the application context against the redis-backed local
// store configured in cfg.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(cfg)

	store, err := localstore.NewRedisStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a := build(cfg, store, log)
	a.redisStore = store
	return a, nil
}

// NewWithStore builds the application context on a caller-supplied
// store. Tests use it with the in-memory store.
func NewWithStore(cfg *config.Config, store localstore.Store, log *logrus.Logger) *App {
	return build(cfg, store, log)
}

func build(cfg *config.Config, store localstore.Store, log *logrus.Logger) *App {
	sessions := session.NewManager(store, cfg, log)
	client := api.NewClient(cfg, sessions, log)

	return &App{
		Config:     cfg,
		Log:        log,
		Store:      store,
		API:        client,
		Sessions:   sessions,
		Cart:       cart.NewManager(store, client, sessions, log),
		Orders:     order.NewOverrideStore(store, client, log),
		Translator: translation.NewTranslator(store, client, cfg, log),
		Catalog:    catalog.NewService(store, client, log),
		Weather:    weather.NewService(cfg, log),
		Receipts:   receipt.NewService(cfg),
	}
}

// Close releases the store connection
func (a *App) Close() error {
	if a.redisStore != nil {
		return a.redisStore.Close()
	}
	return nil
}
