package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store is an opened repository plus the handles the server needs around it.
type Store struct {
	Repo storage.Repository
	// SQL is nil for the memory driver.
	SQL  *sqlx.DB
	Gorm *gorm.DB
}

func (s *Store) Close() error {
	if s.SQL == nil {
		return nil
	}
	return s.SQL.Close()
}

func storeOptions(cfg internal.StorageConfig) []storage.Option {
	return []storage.Option{
		storage.WithWindows(storage.Windows{
			Contracts: cfg.ContractWindow,
			Probation: cfg.ProbationWindow,
		}),
	}
}

// openStore builds the repository for the configured driver. The memory
// driver is seeded from the fixture when one is configured.
func openStore(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (*Store, error) {
	opts := storeOptions(cfg.Storage)

	if cfg.Database.Driver == internal.DriverMemory {
		if cfg.Storage.SeedFixture == "" {
			return &Store{Repo: memory.New(opts...)}, nil
		}
		fixture, err := storage.LoadFixture(cfg.Storage.SeedFixture)
		if err != nil {
			return nil, err
		}
		repo, err := memory.NewFromFixture(ctx, fixture, auth.Hasher(cfg.Security.BCryptCost), opts...)
		if err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		logger.Info("memory store seeded", "fixture", cfg.Storage.SeedFixture)
		return &Store{Repo: repo}, nil
	}

	gdb, sqlDB, err := initDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.AutoMigrate(gdb); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return &Store{Repo: postgres.New(gdb, opts...), SQL: sqlDB, Gorm: gdb}, nil
}

// initDB opens the SQL connection pool and hands it to GORM.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	}

	switch cfg.Driver {
	case internal.DriverPostgres:
		const driver = "pgx"
		dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		tunePool(dbConn, cfg)
		gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), gormCfg)
		if err != nil {
			_ = dbConn.Close()
			return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return gdb, dbConn, nil

	case internal.DriverMySQL, internal.DriverSQLite:
		var dialector gorm.Dialector
		if cfg.Driver == internal.DriverMySQL {
			dialector = mysql.Open(cfg.GetDSN())
		} else {
			dialector = sqlite.Open(cfg.GetDSN())
		}
		gdb, err := gorm.Open(dialector, gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", cfg.Driver, err)
		}
		raw, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		dbConn := sqlx.NewDb(raw, cfg.Driver)
		tunePool(dbConn, cfg)
		if err := dbConn.Ping(); err != nil {
			_ = dbConn.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return gdb, dbConn, nil
	}

	return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func tunePool(db *sqlx.DB, cfg internal.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}
