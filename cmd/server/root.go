package main

import (
	"database/sql"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pka-index-backend/internal/config"
	"pka-index-backend/internal/database"
	"pka-index-backend/internal/logging"
	"pka-index-backend/internal/repository"
	"pka-index-backend/internal/services"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pka-index",
		Short:         "Episode catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// setup loads config and configures logging. It is the one place the
// environment is read.
func setup() (*config.Config, error) {
	cfg := config.Load()
	if err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// storage is whichever backend DATABASE_URL selected.
type storage struct {
	pool  *pgxpool.Pool
	db    *sql.DB
	store services.EpisodeStore
}

func openStorage(cfg *config.Config) (*storage, error) {
	dialect, dsn, err := database.ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case database.Postgres:
		pool, err := database.NewPostgresPool(dsn, int32(cfg.DBMaxConns))
		if err != nil {
			return nil, err
		}
		return &storage{pool: pool, store: repository.NewEpisodeRepo(pool)}, nil
	case database.SQLite:
		db, err := database.NewSQLiteDB(dsn, cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}
		return &storage{db: db, store: repository.NewSQLiteEpisodeRepo(db)}, nil
	default:
		return nil, errors.Errorf("unsupported database dialect %q", dialect)
	}
}

func (s *storage) migrate(migrationsPath string) error {
	if s.pool != nil {
		return database.RunMigrations(s.pool, filepath.Join(migrationsPath, string(database.Postgres)))
	}
	return database.RunSQLiteMigrations(s.db, filepath.Join(migrationsPath, string(database.SQLite)))
}

func (s *storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.WithError(err).Warn("failed to close sqlite database")
		}
	}
}
