package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vilkasoft/backoffice/internal"
	"github.com/vilkasoft/backoffice/internal/auth"
	authPostgres "github.com/vilkasoft/backoffice/internal/auth/postgres"
	"github.com/vilkasoft/backoffice/internal/core/events"
	"github.com/vilkasoft/backoffice/internal/destination"
	destinationPostgres "github.com/vilkasoft/backoffice/internal/destination/postgres"
	"github.com/vilkasoft/backoffice/internal/driver"
	driverPostgres "github.com/vilkasoft/backoffice/internal/driver/postgres"
	"github.com/vilkasoft/backoffice/internal/rbac"
	rbacPostgres "github.com/vilkasoft/backoffice/internal/rbac/postgres"
	"github.com/vilkasoft/backoffice/internal/transport/rest"
	"github.com/vilkasoft/backoffice/internal/trip"
	tripPostgres "github.com/vilkasoft/backoffice/internal/trip/postgres"
	"github.com/vilkasoft/backoffice/internal/user"
	userPostgres "github.com/vilkasoft/backoffice/internal/user/postgres"
	"github.com/vilkasoft/backoffice/internal/vehicle"
	vehiclePostgres "github.com/vilkasoft/backoffice/internal/vehicle/postgres"
	"github.com/vilkasoft/backoffice/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	origins := strings.Split(deps.Config.Server.AllowedOrigins, ",")
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, origins, deps.Logger)

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

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerAuditSubscribers(bus, lg)

	rbacRepo := rbacPostgres.NewRBACRepository(gormDB)
	rbacService := rbac.NewService(rbacRepo, bus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, rbacService, tokenGen)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, rbacService)

	vehicleRepo := vehiclePostgres.NewVehicleRepository(gormDB)
	vehicleService := vehicle.NewService(vehicleRepo, lg)

	driverRepo := driverPostgres.NewDriverRepository(gormDB)
	driverService := driver.NewService(driverRepo, lg)

	destinationRepo := destinationPostgres.NewDestinationRepository(gormDB)
	destinationService := destination.NewService(destinationRepo, lg)

	tripRepo := tripPostgres.NewTripLogRepository(gormDB)
	tripService := trip.NewService(vehicleRepo, vehicleRepo, destinationRepo, driverRepo,
		tripRepo, trip.NewGenerator(nil), bus, lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		User:        user.NewHandler(userService),
		RBAC:        rbac.NewHandler(rbacService),
		Vehicle:     vehicle.NewHandler(vehicleService),
		Driver:      driver.NewHandler(driverService),
		Destination: destination.NewHandler(destinationService),
		Trip:        trip.NewHandler(tripService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// registerAuditSubscribers writes every role and trip-log change to the audit
// log. Delivery is asynchronous; a slow sink never blocks the request path.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventTypeRoleCreated,
		events.EventTypeRoleUpdated,
		events.EventTypeRoleDeleted,
		events.EventTypeTripLogGenerated,
		events.EventTypeTripLogSaved,
	} {
		bus.Subscribe(eventType, audit)
	}
}

// initDB opens the raw connection used for health pings and the gorm layer.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driverName = "pgx"

	dbConn, err := sqlx.Connect(driverName, cfg.Source)
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
