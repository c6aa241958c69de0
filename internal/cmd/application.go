package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/pencil-api/internal/adapters/credentials"
	httpadapter "github.com/jsamuelsen/pencil-api/internal/adapters/http"
	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/adapters/idgen"
	"github.com/jsamuelsen/pencil-api/internal/adapters/persistence/jsonfile"
	"github.com/jsamuelsen/pencil-api/internal/app"
	"github.com/jsamuelsen/pencil-api/internal/platform/config"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// Application is the wired service: repository, loaded store, credential
// vault and health registry.
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Repository *jsonfile.Repository
	Vault      *credentials.Vault
	Store      *app.Store
	Health     *ports.DefaultHealthRegistry
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.Config) *slog.Logger {
	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}

// NewRepository creates the JSON file repository. reg may be nil.
func NewRepository(cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) *jsonfile.Repository {
	return jsonfile.New(jsonfile.Config{
		Dir:             cfg.Storage.DataDir,
		QuotesFile:      cfg.Storage.QuotesFile,
		UsersFile:       cfg.Storage.UsersFile,
		CollectionsFile: cfg.Storage.CollectionsFile,
	}, jsonfile.NewMetrics(reg), logger)
}

// NewApplication loads every container from disk and opens the credential
// vault. Any load failure is returned; the service must not start on
// partial data.
func NewApplication(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) (*Application, error) {
	repo := NewRepository(cfg, reg, logger)

	store := app.NewStore(app.StoreConfig{
		IDs:        idgen.New(),
		Repository: repo,
		RandomSeed: cfg.Storage.RandomSeed,
		Logger:     logger,
	})

	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	vault, err := credentials.Open(cfg.Storage.CredentialsPath(), cfg.Credentials.BcryptCost, logger)
	if err != nil {
		return nil, fmt.Errorf("opening credentials: %w", err)
	}

	health := ports.NewHealthRegistry()

	for _, checker := range []ports.HealthChecker{repo, vault} {
		if err := health.Register(checker); err != nil {
			return nil, fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Repository: repo,
		Vault:      vault,
		Store:      store,
		Health:     health,
	}, nil
}

// Routes installs middleware and every route on engine.
func (a *Application) Routes(engine *gin.Engine, build handlers.BuildInfo) {
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		AppConfig:         &a.Config.App,
		HealthHandler:     handlers.NewHealthHandler(a.Health, build, a.Store),
		QuoteHandler:      handlers.NewQuoteHandler(a.Store),
		UserHandler:       handlers.NewUserHandler(a.Store, a.Vault),
		CollectionHandler: handlers.NewCollectionHandler(a.Store),
		Timeout:           a.Config.Server.RequestTimeout,
	})
}
