package catalog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	stdlog "log"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m1k1o/go-vodcat/internal/utils"
)

const (
	sqlDriver     = "sqlite3"
	migrationsDir = "migrations"

	filmTable    = "film"
	episodeTable = "episode"
	settingTable = "setting"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store keeps films, episodes and settings in a SQLite database.
type Store struct {
	logger zerolog.Logger
	db     *sql.DB
	sq     sq.StatementBuilderType
}

// Open opens the database file and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	logger := log.With().Str("module", "catalog").Logger()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to migrate database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("database opened")

	return &Store{
		logger: logger,
		db:     db,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(stdlog.New(utils.LogWriter(logger, zerolog.DebugLevel), "", 0))

	if err := goose.SetDialect(sqlDriver); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, migrationsDir)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func notFound(what string, id interface{}) error {
	return fmt.Errorf("%s %v %w", what, id, ErrNotFound)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func affected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(what, id)
	}
	return nil
}
