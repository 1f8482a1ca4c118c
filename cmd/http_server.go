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

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/candidate"
	"github.com/frahmantamala/hr-management/internal/contract"
	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/dashboard"
	"github.com/frahmantamala/hr-management/internal/egreso"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/notify"
	"github.com/frahmantamala/hr-management/internal/organization"
	"github.com/frahmantamala/hr-management/internal/probation"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/frahmantamala/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	Store     *Store
	EventBus  *events.EventBus
	Forwarder *notify.Forwarder
	Router    *chi.Mux
	Logger    *slog.Logger
}

func (d *Dependencies) Close() {
	if d.Forwarder != nil {
		if err := d.Forwarder.Close(); err != nil {
			d.Logger.Error("Notify forwarder close error", "error", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		deps.Close()
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Close()
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	repo := deps.Store.Repo

	composer := relations.NewComposer(repo, lg)
	base := transport.NewBaseHandler(lg)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	// one lock table so contract, probation, egreso and employee writes
	// serialize per employee
	locks := keylock.New()
	promoter := employee.NewEventHandler(repo, lg)
	promoter.Locks = locks
	promoter.RegisterEventHandlers(deps.EventBus)

	employeeSvc := employee.NewService(repo, composer, deps.EventBus, lg)
	employeeSvc.Locks = locks
	contractSvc := contract.NewService(repo, composer, lg)
	contractSvc.Locks = locks
	probationSvc := probation.NewService(repo, composer, deps.EventBus, lg)
	probationSvc.Locks = locks
	egresoSvc := egreso.NewService(repo, deps.EventBus, lg)
	egresoSvc.Locks = locks

	var pinger rest.Pinger
	if deps.Store.SQL != nil {
		pinger = deps.Store.SQL
	}

	handlers := rest.Handlers{
		Health:       rest.NewHealthHandler(pinger, cfg.Database.Driver),
		Auth:         auth.NewHandler(base, auth.NewService(repo, composer, tokens, cfg.Security.BCryptCost, lg)),
		RBAC:         auth.NewRBACAuthorization(lg),
		User:         user.NewHandler(base, user.NewService(repo, auth.Hasher(cfg.Security.BCryptCost), lg)),
		Organization: organization.NewHandler(base, organization.NewService(repo, lg)),
		Employee:     employee.NewHandler(base, employeeSvc),
		Contract:     contract.NewHandler(base, contractSvc),
		Probation:    probation.NewHandler(base, probationSvc),
		Candidate:    candidate.NewHandler(base, candidate.NewService(repo, composer, deps.EventBus, lg)),
		Egreso:       egreso.NewHandler(base, egresoSvc),
		Dashboard:    dashboard.NewHandler(base, dashboard.NewService(repo, composer, lg)),
	}

	opts := rest.Options{OpenAPISpec: cfg.Server.OpenAPISpec}
	if cfg.Server.OpenAPISpec != "" && cfg.Server.ValidateRequests {
		doc, err := middleware.LoadOpenAPI(context.Background(), cfg.Server.OpenAPISpec)
		if err != nil {
			return err
		}
		validator, err := middleware.OpenAPIValidator(doc, lg)
		if err != nil {
			return err
		}
		opts.Validator = validator
	}

	rest.RegisterAllRoutes(deps.Router, handlers, opts, lg)
	return nil
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(logger.Options{
		Env:    config.Env,
		Level:  config.Observability.Logging.Level,
		Format: config.Observability.Logging.Format,
	})
	lg := logger.LoggerWrapper()

	store, err := openStore(ctx, config, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	bus := events.NewEventBus(lg)
	deps := &Dependencies{
		Config:   config,
		Store:    store,
		EventBus: bus,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}

	if config.Notify.Enabled {
		fwd, err := notify.Dial(config.Notify.AMQPURL, config.Notify.Exchange, lg)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect notify broker: %w", err)
		}
		fwd.Attach(bus)
		deps.Forwarder = fwd
	}

	return deps, nil
}
