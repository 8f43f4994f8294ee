// Package postgres implements the repository interfaces on gorm. The package
// name reflects the production driver; the sqlite dialect is supported for
// local development and tests through the same entry point.
package postgres

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bizcomply/bizcomply/internal/config"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// DBConnection manages the gorm database handle and its pool settings.
type DBConnection struct {
	db     *gorm.DB
	config *config.DatabaseConfig
	logger logger.Logger
}

// NewDBConnection opens the configured database and verifies connectivity.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error(ctx, "failed to open database", err, logger.String("driver", cfg.Driver))
		return nil, apperrors.NewStorage("open", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.NewStorage("open", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	conn := &DBConnection{db: db, config: cfg, logger: log}
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	log.Info(ctx, "database connection established",
		logger.String("driver", cfg.Driver),
		logger.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return conn, nil
}

// DB returns the gorm handle for repository construction.
func (c *DBConnection) DB() *gorm.DB {
	return c.db
}

// Ping verifies the database is reachable.
func (c *DBConnection) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return apperrors.NewStorage("ping", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		c.logger.Error(ctx, "database ping failed", err)
		return apperrors.NewStorage("ping", err)
	}
	return nil
}

// Migrate creates or updates the schema for all persisted record types.
func (c *DBConnection) Migrate(ctx context.Context) error {
	c.logger.Info(ctx, "running database migrations")

	err := c.db.WithContext(ctx).AutoMigrate(
		&BusinessRecord{},
		&RegulationRecord{},
		&PenaltyRecord{},
		&RequirementRecord{},
		&ExemptionRecord{},
		&ApplicabilityRecord{},
		&ComplianceCheckRecord{},
		&BusinessRegulationRecord{},
	)
	if err != nil {
		c.logger.Error(ctx, "database migration failed", err)
		return apperrors.NewStorage("migrate", err)
	}

	c.logger.Info(ctx, "database migrations complete")
	return nil
}

// Close releases the underlying connection pool.
func (c *DBConnection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.logger.Info(context.Background(), "closing database connection")
	return sqlDB.Close()
}
