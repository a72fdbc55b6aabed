package store

import (
	"context"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boomiis-api/config"
	"boomiis-api/models"
)

// Dialector picks the gorm driver for cfg: postgres:// and postgresql:// URLs use
// the postgres driver, mysql:// URLs the mysql driver, anything else is a SQLite
// path (defaulting to <name>.db).
func Dialector(cfg config.Database) gorm.Dialector {
	url := strings.TrimSpace(cfg.URL)

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url)
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(strings.TrimPrefix(url, "mysql://"))
	case url != "":
		return sqlite.Open(url)
	default:
		return sqlite.Open(cfg.Name + ".db")
	}
}

// Open connects to the configured database and migrates every collection.
func Open(cfg config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(cfg), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates all collections.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	for _, c := range models.Collections() {
		if err := db.AutoMigrate(c.Model); err != nil {
			return errors.Wrapf(err, "failed to migrate %s", c.Name)
		}
	}

	return nil
}

// Ping checks connectivity of the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "database handle")
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "ping database")
}

// Tables lists the tables present in the database.
func Tables(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}

	return tables, nil
}
