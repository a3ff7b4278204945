package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/todozero/todozero/internal/config"
	"github.com/todozero/todozero/internal/logging"
	"github.com/todozero/todozero/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.URL), nil
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg.URL)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ConnectDatabase opens the configured database. gorm's own SQL logging is
// only enabled at debug level.
func ConnectDatabase(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	d, err := dialector(cfg)

	if err != nil {
		return nil, err
	}

	level := gormLogger.Silent
	if logging.ParseLevel(logLevel) == slog.LevelDebug {
		level = gormLogger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
	})

	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

func MigrateDatabase(db *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Todo{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	return nil
}

// Ping checks that the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// SQLiteURL builds a file DSN for path with the pragmas sqliteDSN applies.
func SQLiteURL(path string) string {
	return sqliteDSN("file:" + path)
}

// sqliteDSN turns on foreign keys and a busy timeout for every pooled
// connection unless dsn already sets them. sqlite ignores foreign keys unless
// asked.
func sqliteDSN(dsn string) string {
	for _, pragma := range []string{"foreign_keys(1)", "busy_timeout(5000)"} {
		name := pragma[:strings.Index(pragma, "(")]
		if strings.Contains(dsn, name) {
			continue
		}

		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=" + pragma
	}

	return dsn
}
