package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"gamereviews/internal/config"
	"gamereviews/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB bundles the gorm handle with the resources that must be released on shutdown.
type DB struct {
	Gorm *gorm.DB
	pool *pgxpool.Pool
	sql  *sql.DB
}

// ConnectDB opens the configured store, verifies it and migrates the schema.
func ConnectDB(ctx context.Context, cfg *config.Config, log *slog.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.DBDriver {
	case "postgres":
		db, err = openPostgres(ctx, cfg, log)
	case "sqlite":
		db, err = OpenSQLite(cfg.DatabaseURL, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	// Verify the connection
	if err := db.sql.PingContext(ctx); err != nil {
		// close the handle if ping fails to avoid resource leak
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db.Gorm); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connected to the database successfully", slog.String("driver", cfg.DBDriver))
	return db, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// gorm runs on top of the pgx pool through database/sql
	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(log))
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &DB{Gorm: gdb, pool: pool, sql: sqlDB}, nil
}

// OpenSQLite opens an embedded database at path (":memory:" for a throwaway one).
// It does not migrate.
func OpenSQLite(path string, log *slog.Logger) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// sqlite serializes writers; one connection also keeps ":memory:" a single database
	sqlDB.SetMaxOpenConns(1)

	return &DB{Gorm: gdb, sql: sqlDB}, nil
}

// Migrate creates or updates the four tables.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Review{},
		&models.Comment{},
	)
}

// Ping checks the store is reachable, used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

func (db *DB) Close() error {
	err := db.sql.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

func gormConfig(log *slog.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
		Logger: logger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true, // not found is a normal outcome for lookups
				Colorful:                  false,
			},
		),
	}
}
