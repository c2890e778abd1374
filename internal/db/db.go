package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ballotbox/internal/model"
)

// New returns a connected GORM DB instance for the given driver.
// TranslateError is enabled so unique violations surface as gorm.ErrDuplicatedKey.
func New(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Election{},
		&model.Candidate{},
		&model.VoteRecord{},
	}
}

// Migrate creates or updates the schema. When reset is true all tables are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		models := Models()
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
