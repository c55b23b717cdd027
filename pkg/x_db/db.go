// file:artkv/pkg/x_db/db.go
package x_db

import (
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//---------------------
// Database Initialization
//---------------------

// Open connects to the configured database and migrates the entry table.
// Empty fields fall back to a local sqlite file.
func Open(cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	typ, err := ParseType(string(cfg.Type))
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		cfg.DSN = defaultConfig.DSN
	}

	var dialector gorm.Dialector
	switch typ {
	case DbPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogAdapter(log, gormLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}

	log.Debug().Str("driver", string(typ)).Msg("database opened")
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
