package main

import (
	"context"
	"flag"

	"finance-tracker-server/src/config"
	"finance-tracker-server/src/db"
	"finance-tracker-server/src/logging"

	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "creates the database tables" }
func (*migrateCmd) Usage() string {
	return `migrate

Applies the embedded schema to $DATABASE_URL. Existing tables are left alone,
so running it twice is harmless.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "console").Error().Err(err).Msg("Invalid configuration")
		return subcommands.ExitFailure
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("DB connection failed")
		return subcommands.ExitFailure
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error().Err(err).Msg("Migration failed")
		return subcommands.ExitFailure
	}
	logger.Info().Msg("Schema applied")
	return subcommands.ExitSuccess
}
