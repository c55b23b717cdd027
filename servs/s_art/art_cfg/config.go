// file:artkv/servs/s_art/art_cfg/config.go
package art_cfg

import (
	"time"

	"github.com/rskv-p/artkv/pkg/x_log"
)

// ArtConfig holds everything the art service needs at startup.
type ArtConfig struct {
	HTTPAddress string `mapstructure:"http_address" json:"http_address"` // REST and websocket listener

	// Auth
	AuthEnabled   bool          `mapstructure:"auth_enabled" json:"auth_enabled"`
	JwtSecret     string        `mapstructure:"jwt_secret" json:"jwt_secret"`
	AdminUser     string        `mapstructure:"admin_user" json:"admin_user"`
	AdminPassword string        `mapstructure:"admin_password" json:"admin_password"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" json:"token_ttl"`

	// Tree limits, zero means unlimited
	MaxNodes  int `mapstructure:"max_nodes" json:"max_nodes"`
	MaxKeyLen int `mapstructure:"max_key_len" json:"max_key_len"`

	// NATS request/reply
	NatsURL      string        `mapstructure:"nats_url" json:"nats_url"`
	NatsPrefix   string        `mapstructure:"nats_prefix" json:"nats_prefix"`
	NatsEmbedded bool          `mapstructure:"nats_embedded" json:"nats_embedded"`
	NatsPort     int           `mapstructure:"nats_port" json:"nats_port"`
	NatsTimeout  time.Duration `mapstructure:"nats_timeout" json:"nats_timeout"`

	// Snapshot database
	DBType string `mapstructure:"db_type" json:"db_type"` // sqlite, postgres
	DBDSN  string `mapstructure:"db_dsn" json:"db_dsn"`
	// Persist mirrors every mutation into the database between snapshots
	Persist bool `mapstructure:"persist" json:"persist"`

	Logger x_log.Config `mapstructure:"logger" json:"logger"`
}

var defaultConfig = ArtConfig{
	HTTPAddress:   ":8089",
	AuthEnabled:   true,
	JwtSecret:     "change_me",
	AdminUser:     "admin",
	AdminPassword: "admin",
	TokenTTL:      12 * time.Hour,
	NatsPrefix:    "art",
	NatsPort:      4222,
	NatsTimeout:   2 * time.Second,
	DBType:        "sqlite",
	DBDSN:         "art.db",
	Logger:        x_log.DefaultConfig(),
}

var config = defaultConfig

// C returns the loaded configuration.
func C() ArtConfig { return config }

// Default returns the built-in configuration.
func Default() ArtConfig { return defaultConfig }
