package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mindgraphix/platform/internal"
	"github.com/mindgraphix/platform/internal/auth"
	authPostgres "github.com/mindgraphix/platform/internal/auth/postgres"
	"github.com/mindgraphix/platform/internal/catalog"
	catalogPostgres "github.com/mindgraphix/platform/internal/catalog/postgres"
	"github.com/mindgraphix/platform/internal/contact"
	contactPostgres "github.com/mindgraphix/platform/internal/contact/postgres"
	"github.com/mindgraphix/platform/internal/core/events"
	"github.com/mindgraphix/platform/internal/project"
	projectPostgres "github.com/mindgraphix/platform/internal/project/postgres"
	"github.com/mindgraphix/platform/internal/transport"
	"github.com/mindgraphix/platform/internal/transport/rest"
	"github.com/mindgraphix/platform/internal/user"
	userPostgres "github.com/mindgraphix/platform/internal/user/postgres"
	"github.com/mindgraphix/platform/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that serves the platform API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)
	registerEventHandlers(deps.EventBus, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(ctx); err != nil {
			deps.Logger.Warn("event handlers did not finish in time", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	baseHandler := transport.NewBaseHandler(deps.Logger)

	authRepo := authPostgres.NewRepository(deps.GormDB)
	tokens := auth.NewTokenGenerator(deps.Config.Security)
	authService := auth.NewService(authRepo, tokens, deps.Config.Security.BCryptCost, deps.EventBus)
	authHandler := auth.NewHandler(authService)
	gate := auth.NewGate(authService, deps.Logger)

	userService := user.NewService(userPostgres.NewProfileRepository(deps.GormDB), deps.Logger)
	projectService := project.NewService(projectPostgres.NewProjectRepository(deps.GormDB), deps.Logger)
	catalogService := catalog.NewService(catalogPostgres.NewOfferingRepository(deps.GormDB), deps.Logger)
	contactService := contact.NewService(contactPostgres.NewMessageRepository(deps.GormDB), deps.EventBus, deps.Logger)

	rest.RegisterAllRoutes(deps.Router, rest.RouterDeps{
		DB:             deps.DB.DB,
		AuthHandler:    authHandler,
		Gate:           gate,
		UserHandler:    user.NewHandler(baseHandler, userService),
		ProjectHandler: project.NewHandler(baseHandler, projectService),
		CatalogHandler: catalog.NewHandler(baseHandler, catalogService),
		ContactHandler: contact.NewHandler(baseHandler, contactService),
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		Logger:         deps.Logger,
	})
}

// registerEventHandlers subscribes the in-process notification handlers.
// Delivery is best-effort; for now the handlers just record the event.
func registerEventHandlers(bus *events.EventBus, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) error {
		lg.Info("new user registered",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventTypeContactReceived, func(ctx context.Context, event events.Event) error {
		lg.Info("contact message received",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		EventBus: events.NewEventBus(lg),
	}, nil
}

// initDB opens the shared pgx connection pool. The gorm session reuses this
// pool instead of opening its own.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
