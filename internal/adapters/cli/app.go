package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andrescamacho/containeryard-go/internal/adapters/api"
	"github.com/andrescamacho/containeryard-go/internal/adapters/events"
	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/adapters/persistence"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	appLogging "github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/setup"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/database"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/logging"
)

// App is the wired application: database, event publisher and a mediator
// with every handler registered
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	DB        *gorm.DB
	Layout    yard.Layout
	UoW       common.UnitOfWork
	Publisher events.Publisher
	Mediator  mediator.Mediator

	logCloser io.Closer
}

// OpenApp connects to the database, migrates it when asked and builds the mediator.
// The caller must Close the returned app.
func OpenApp(cfg *config.Config, migrate bool) (*App, error) {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	layout, err := cfg.Yard.ToLayout()
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if migrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			_ = logCloser.Close()
			return nil, err
		}
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Layout:    layout,
		Publisher: events.NewPublisher(cfg.Events, logger),
		logCloser: logCloser,
	}

	middleware := []mediator.Middleware{appLogging.Middleware(logger)}
	if cfg.Metrics.Enabled {
		collector, err := metrics.Setup()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		middleware = append(middleware, metrics.PrometheusMiddleware(collector))
	}

	clock := shared.NewRealClock()
	app.UoW = persistence.NewGormUnitOfWork(db, clock)
	registry := setup.NewHandlerRegistry(app.UoW, layout, clock, app.Publisher)
	app.Mediator, err = registry.CreateConfiguredMediator(middleware...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return app, nil
}

// Router builds the HTTP API over the app's mediator
func (a *App) Router() *gin.Engine {
	opts := api.RouterOptions{
		Logger: a.Logger,
		Server: a.Config.Server,
		Ready:  a.ping,
	}
	if a.Config.Metrics.Enabled {
		opts.MetricsHandler = metrics.Handler()
		opts.MetricsPath = a.Config.Metrics.Path
	}
	return api.NewRouter(a.Mediator, opts)
}

// Serve runs the HTTP API until ctx is cancelled
func (a *App) Serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	return api.NewServer(a.Config.Server, a.Router(), a.Logger).Run(ctx)
}

func (a *App) ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the publisher, the database and the log output
func (a *App) Close() {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			a.Logger.Warn("failed to close database", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
