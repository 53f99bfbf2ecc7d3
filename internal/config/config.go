package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Bootstrap BootstrapConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// BootstrapConfig describes the three pipeline steps. Defaults match a
// conventional Django deployment; every piece is overridable so the
// tool can drive other manage.py-style frameworks.
type BootstrapConfig struct {
	Workdir          string
	InstallerBin     string
	RequirementsFile string
	ManageBin        string
	ManageScript     string
	StaticRoot       string
	StepTimeout      time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MigrationsTable string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("BOOTSTRAP_WORKDIR", ".")
	v.SetDefault("BOOTSTRAP_INSTALLER_BIN", "pip")
	v.SetDefault("BOOTSTRAP_REQUIREMENTS_FILE", "requirements.txt")
	v.SetDefault("BOOTSTRAP_MANAGE_BIN", "python")
	v.SetDefault("BOOTSTRAP_MANAGE_SCRIPT", "manage.py")
	v.SetDefault("BOOTSTRAP_STATIC_ROOT", "staticfiles")
	v.SetDefault("BOOTSTRAP_STEP_TIMEOUT", "30m")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "app")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MIGRATIONS_TABLE", "django_migrations")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 4)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 1)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	stepTimeout, err := time.ParseDuration(v.GetString("BOOTSTRAP_STEP_TIMEOUT"))
	if err != nil {
		stepTimeout = 30 * time.Minute
	}
	connLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 5 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Bootstrap: BootstrapConfig{
			Workdir:          v.GetString("BOOTSTRAP_WORKDIR"),
			InstallerBin:     v.GetString("BOOTSTRAP_INSTALLER_BIN"),
			RequirementsFile: v.GetString("BOOTSTRAP_REQUIREMENTS_FILE"),
			ManageBin:        v.GetString("BOOTSTRAP_MANAGE_BIN"),
			ManageScript:     v.GetString("BOOTSTRAP_MANAGE_SCRIPT"),
			StaticRoot:       v.GetString("BOOTSTRAP_STATIC_ROOT"),
			StepTimeout:      stepTimeout,
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MigrationsTable: v.GetString("DATABASE_MIGRATIONS_TABLE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
