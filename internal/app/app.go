package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"github.com/listworks/todo-service/internal/config"
	"github.com/listworks/todo-service/internal/handler"
	"github.com/listworks/todo-service/internal/logging"
	"github.com/listworks/todo-service/internal/metrics"
	"github.com/listworks/todo-service/internal/migrations"
	"github.com/listworks/todo-service/internal/todo"
)

// Startup policy is fail-fast-with-retry: three connect attempts one second
// apart, then the process exits. The retry count excludes the first attempt.
const (
	dbConnectRetries = 2
	dbConnectDelay   = 1 * time.Second
)

func Run() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize logger and metrics
	logger := logging.New(cfg.LogLevel).With().Str("service", "todo-service").Logger()
	metrics.Init(cfg.MetricsAddr)
	logger.Info().Msgf("metrics server listening on %s", cfg.MetricsAddr)

	// Connect to postgres and bring the schema up to date
	db, err := connectDB(context.Background(), cfg.DatabaseDSN, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migrate(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	repo := todo.NewPostgresRepository(db)
	r := NewRouter(repo, &logger, cfg.AllowedOrigin)

	logger.Info().Msgf("todo-service listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// connectDB opens the shared database handle and pings until it answers or
// the retry budget runs out.
func connectDB(ctx context.Context, dsn string, logger *logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(dbConnectRetries, retry.NewConstant(dbConnectDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn().Err(err).Msg("database not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// NewRouter assembles the full middleware stack and route table. Kept apart
// from Run so tests can drive the exact surface the server exposes.
func NewRouter(repo todo.Repository, logger *logging.Logger, allowedOrigin string) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodDelete,
			http.MethodPut, http.MethodPatch, http.MethodOptions,
		},
	}))
	r.Use(jsonContentType)

	// Routes
	r.Get("/health", handler.Health())
	r.Route("/api", func(r chi.Router) {
		r.Get("/todos", handler.ListTodos(repo, logger))
		r.Post("/todos", handler.CreateTodo(repo, logger))
		r.Delete("/todos/{id}", handler.DeleteTodo(repo, logger))
		r.Delete("/todos", handler.DeleteAllTodos(repo, logger))
	})

	// Error handlers
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
		logger.Warn().Str("path", r.URL.Path).Msg("404 not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		logger.Warn().Str("path", r.URL.Path).Msg("405 method not allowed")
	})

	return r
}

// Forces JSON Content-Type for all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Writes a structured JSON error
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
