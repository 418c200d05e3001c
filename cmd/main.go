package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-account-auth/docs"
	"github.com/sbilibin2017/gw-account-auth/internal/db"
	"github.com/sbilibin2017/gw-account-auth/internal/handlers"
	"github.com/sbilibin2017/gw-account-auth/internal/hasher"
	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/middlewares"
	"github.com/sbilibin2017/gw-account-auth/internal/probes"
	"github.com/sbilibin2017/gw-account-auth/internal/repositories"
	"github.com/sbilibin2017/gw-account-auth/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	DatabaseURL     string
	DBSkipTLSVerify bool
	PGMaxOpenConns  int
	PGMaxIdleConns  int
	DBAutoMigrate   bool

	BcryptRounds int
	HashWorkers  int

	GRPCHealthPort     string
	StoreProbeInterval time.Duration
}

// @title gw-account-auth API
// @version 1.0.0
// @description Account registration and login backend
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, hashing, and health probe configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key string, defaultValue int) (int, error) {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getBool := func(key string, defaultValue bool) (bool, error) {
		v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "0.0.0.0")
	cfg.AppPort = getEnv("PORT", "3000")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DBSkipTLSVerify, err = getBool("DB_TLS_SKIP_VERIFY", false); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", 16); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", 8); err != nil {
		return
	}
	if cfg.DBAutoMigrate, err = getBool("DB_AUTO_MIGRATE", true); err != nil {
		return
	}

	// Password hashing config
	if cfg.BcryptRounds, err = getInt("BCRYPT_ROUNDS", hasher.DefaultCost); err != nil {
		return
	}
	if cfg.HashWorkers, err = getInt("HASH_WORKERS", runtime.NumCPU()); err != nil {
		return
	}

	// gRPC health config
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "")
	probeSeconds, err := getInt("STORE_PROBE_INTERVAL_SECOND", 15)
	if err != nil {
		return
	}
	if probeSeconds <= 0 {
		err = fmt.Errorf("STORE_PROBE_INTERVAL_SECOND: must be positive, got %d", probeSeconds)
		return
	}
	cfg.StoreProbeInterval = time.Duration(probeSeconds) * time.Second

	return
}

// openStore opens the connection pool when a DATABASE_URL is configured.
// An unreachable store is logged but not fatal; a nil pool means "not configured".
func openStore(ctx context.Context, cfg config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		logger.Log.Warn("DATABASE_URL is not set, account store is disabled")
		return nil, nil
	}

	pool, err := db.Open(db.Options{
		DSN:           cfg.DatabaseURL,
		SkipTLSVerify: cfg.DBSkipTLSVerify,
		MaxOpenConns:  cfg.PGMaxOpenConns,
		MaxIdleConns:  cfg.PGMaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	if cfg.DBSkipTLSVerify {
		logger.Log.Warn("store TLS certificate verification is disabled")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed, continuing without migrations", "error", err)
		return pool, nil
	}
	logger.Log.Info("Connected to PostgreSQL")

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Log.Info("Database migrations applied")
	}

	return pool, nil
}

// newRouter builds the HTTP routes.
func newRouter(authService *services.AuthService, clock *repositories.StoreClockRepository) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(authService))
		r.Post("/login", handlers.NewLoginHandler(authService))
	})

	r.Get("/health", handlers.NewHealthHandler())
	r.Get("/test-db", handlers.NewStoreTimeHandler(clock))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// run initializes the logger, store, hasher, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	pool, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if pool != nil {
		defer func() {
			if err := pool.Close(); err != nil {
				logger.Log.Errorw("failed to close store connections", "error", err)
			}
			logger.Log.Info("Store connections closed")
		}()
	}

	passwordHasher, err := hasher.New(cfg.BcryptRounds, cfg.HashWorkers)
	if err != nil {
		return err
	}
	logger.Log.Infow("Password hasher ready", "bcrypt_cost", passwordHasher.Cost(), "workers", cfg.HashWorkers)

	// Initialize repositories
	accountReadRepo := repositories.NewAccountReadRepository(pool)
	accountWriteRepo := repositories.NewAccountWriteRepository(pool)
	clockRepo := repositories.NewStoreClockRepository(pool)

	// Initialize services
	authService := services.NewAuthService(accountReadRepo, accountWriteRepo, passwordHasher)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(authService, clockRepo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	errChan := make(chan error, 2)

	// Optional gRPC health endpoint
	if cfg.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort))
		if err != nil {
			return fmt.Errorf("gRPC health listener: %w", err)
		}
		probe := probes.NewServer(clockRepo, cfg.StoreProbeInterval)
		defer probe.Stop()

		go probe.Watch(ctxShutdown)
		go func() {
			logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
			if err := probe.Serve(lis); err != nil {
				errChan <- fmt.Errorf("gRPC health server failed: %w", err)
			}
		}()
	}

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
