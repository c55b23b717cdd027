// file:artkv/pkg/x_db/config.go
package x_db

import (
	"fmt"
	"strings"

	"gorm.io/gorm/logger"
)

//---------------------
// Database Config
//---------------------

type DbType string

const (
	DbSqlite   DbType = "sqlite"
	DbPostgres DbType = "postgres"
)

// Config selects the driver and connection string.
type Config struct {
	Type     DbType `json:"type"`
	DSN      string `json:"dsn"`
	LogLevel string `json:"log_level"` // silent, error, warn, info
}

var defaultConfig = Config{
	Type:     DbSqlite,
	DSN:      "art.db",
	LogLevel: "warn",
}

// ParseType validates a driver name.
func ParseType(s string) (DbType, error) {
	switch t := DbType(strings.ToLower(strings.TrimSpace(s))); t {
	case DbSqlite, DbPostgres:
		return t, nil
	case "":
		return defaultConfig.Type, nil
	default:
		return "", fmt.Errorf("x_db: unsupported driver %q", s)
	}
}

func gormLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
