package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Query    QueryConfig    `mapstructure:"query" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// QueryConfig bounds the task listing endpoint.
type QueryConfig struct {
	// DefaultLimit is the page size used when a list request does not
	// specify one.
	DefaultLimit int `mapstructure:"default_limit" validate:"required,gt=0"`

	// MaxLimit caps the page size server-side to prevent unbounded scans.
	MaxLimit int `mapstructure:"max_limit" validate:"required,gtefield=DefaultLimit"`
}
