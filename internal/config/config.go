package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Task     TaskConfig     `mapstructure:"task"`
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

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// EngineConfig overrides the engine's default policy parameters.
// Zero values keep the built-in defaults.
type EngineConfig struct {
	MinSessionSeconds         int     `mapstructure:"min_session_seconds" validate:"omitempty,gt=0"`
	OverrideDailyLimit        int     `mapstructure:"override_daily_limit" validate:"omitempty,gt=0"`
	OverrideWeeklyLimit       int     `mapstructure:"override_weekly_limit" validate:"omitempty,gt=0"`
	OverridePenalty           float64 `mapstructure:"override_penalty" validate:"omitempty,gt=0"`
	MinMeaningfulXPFraction   float64 `mapstructure:"min_meaningful_xp_fraction" validate:"omitempty,gt=0,lte=1"`
	DifficultyCeilingRecovery float64 `mapstructure:"difficulty_ceiling_recovery" validate:"omitempty,gt=0,lte=100"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount          int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
	StaleSessionHours    int `mapstructure:"stale_session_hours" validate:"omitempty,gt=0"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"omitempty,gt=0"`
}
