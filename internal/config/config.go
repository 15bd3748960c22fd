package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cron     CronConfig     `mapstructure:"cron"     validate:"required"`
	Push     PushConfig     `mapstructure:"push"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenTTLMinutes is the lifetime of issued access tokens.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" validate:"required,gt=0"`
}

// CronConfig contains the shared secret that authenticates the external
// scheduler to the machine endpoints.
type CronConfig struct {
	Secret string `mapstructure:"secret" validate:"required,min=16"`
}

// PushConfig contains the Web Push (VAPID) delivery settings.
type PushConfig struct {
	VAPIDPublicKey  string `mapstructure:"vapid_public_key"  validate:"required"`
	VAPIDPrivateKey string `mapstructure:"vapid_private_key" validate:"required"`

	// Subscriber is the administrative contact (mailto: or https: URL)
	// required by the Web Push protocol.
	Subscriber string `mapstructure:"subscriber" validate:"required"`

	// TimeoutSeconds bounds each outbound delivery attempt so one slow
	// push endpoint cannot stall a daily run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
