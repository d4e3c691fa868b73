package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownSessionBackend       = errors.New("unknown session backend")
)

// Session backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`       // current application environment (local, development, production)
	LogLevel string   `mapstructure:"log_level"` // debug, info, warn or error
	HTTP     HTTP     `mapstructure:"http"`      // HTTP server section
	DB       DB       `mapstructure:"database"`  // database configuration section
	Session  Session  `mapstructure:"session"`   // session store section
	Security Security `mapstructure:"security"`  // password hashing and lockout
	Admin    Admin    `mapstructure:"admin"`     // bootstrap administrator
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "local" || c.Env == "development"
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`   // set the Secure flag on identity cookies
	AllowedOrigins  []string      `mapstructure:"allowed_origins"` // CORS origins allowed to send credentials
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // apply the bootstrap schema on start
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Session configures where sessions live and how long.
type Session struct {
	Backend       string        `mapstructure:"backend"`        // memory or postgres
	TTL           time.Duration `mapstructure:"ttl"`            // 0 keeps sessions until logout
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron expression for purging expired sessions
}

type Security struct {
	BcryptCost        int           `mapstructure:"bcrypt_cost"`
	MaxFailedAttempts int           `mapstructure:"max_failed_attempts"`
	LockoutDuration   time.Duration `mapstructure:"lockout_duration"`
}

type Admin struct {
	Username string `mapstructure:"username"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file if there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("admin.username", "ADMIN_USERNAME")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.cookie_secure", false)
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.sweep_schedule", "*/5 * * * *")

	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("security.max_failed_attempts", 5)
	v.SetDefault("security.lockout_duration", "5m")

	v.SetDefault("admin.username", "")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionBackend, cfg.Session.Backend)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
