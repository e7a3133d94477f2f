package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker-server/src/api"
	"finance-tracker-server/src/cache"
	"finance-tracker-server/src/config"
	"finance-tracker-server/src/db"
	sqldb "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/handlers"
	"finance-tracker-server/src/logging"
	"finance-tracker-server/src/quotes"
	"finance-tracker-server/src/store"

	"github.com/google/subcommands"
)

type serveCmd struct {
	migrate bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "runs the HTTP API" }
func (*serveCmd) Usage() string {
	return `serve [-migrate]

Starts the finance tracker API on $PORT. Configuration comes from the
environment, a .env file and the TOML file named by $CONFIG_FILE.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.migrate, "migrate", true, "Apply the database schema before serving.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "console").Error().Err(err).Msg("Invalid configuration")
		return subcommands.ExitFailure
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("DB connection failed")
		return subcommands.ExitFailure
	}
	defer pool.Close()

	if c.migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Error().Err(err).Msg("Migration failed")
			return subcommands.ExitFailure
		}
	}

	quoteCache, err := cache.New()
	if err != nil {
		logger.Error().Err(err).Msg("Cache initialization failed")
		return subcommands.ExitFailure
	}
	defer quoteCache.Close()

	env := &handlers.Env{
		Remotes: func(userID int64) store.Remote {
			return sqldb.NewRemote(pool, userID)
		},
		Users:       sqldb.Users{Pool: pool},
		Cache:       quoteCache,
		Logger:      logger,
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.GetTokenExpiry(),
		Currency:    cfg.Currency,
	}
	if cfg.QuotesEnabled() {
		env.Quotes = quotes.NewClient(cfg.Quotes.APIKey,
			quotes.WithBaseURL(cfg.Quotes.BaseURL),
			quotes.WithDefaultExchange(cfg.Quotes.Exchange),
			quotes.WithRateLimit(cfg.Quotes.RateLimit),
			quotes.WithCache(quoteCache, cfg.QuoteCacheTTL()),
			quotes.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("EODHD_API_KEY not set, price refresh disabled")
	}

	router := api.NewRouter(env, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		DemoMode:       cfg.DemoMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Bool("demo_mode", cfg.DemoMode).Msg("API server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Graceful shutdown failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
