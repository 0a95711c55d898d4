package config

import (
	"errors"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names the environment variable that points at an optional YAML config file.
const ConfigFileEnv = "LEDGER_CONFIG_FILE"

type Config struct {
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	DatabaseDriver   string `koanf:"database_driver"`

	HTTPPort        string `koanf:"http_port"`
	JWTSecret       string `koanf:"jwt_secret"`
	TokenTTLSeconds int    `koanf:"token_ttl_seconds"`
	BcryptCost      int    `koanf:"bcrypt_cost"`

	OperatorWorkers int `koanf:"operator_workers"`
	LastLoginWaitMS int `koanf:"last_login_wait_ms"`

	LogLevel string `koanf:"log_level"`
}

// In all cases the default behavior should be for the docker compose setup
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"postgres_address":   "localhost",
		"postgres_port":      "5433",
		"postgres_db":        "postgres",
		"postgres_username":  "postgres",
		"postgres_password":  "testpassword",
		"database_driver":    "postgres",
		"http_port":          "9446",
		"jwt_secret":         "",
		"token_ttl_seconds":  360000,
		"bcrypt_cost":        10,
		"operator_workers":   4,
		"last_login_wait_ms": 250,
		"log_level":          "info",
	}
}

func ProcessEnvironmentVariables() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessDatabaseVariables loads the configuration without requiring the server-only
// settings. Used by the migration script.
func ProcessDatabaseVariables() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.DatabaseDriver != "postgres" && c.DatabaseDriver != "pgx" {
		return errors.New("DATABASE_DRIVER must be postgres or pgx")
	}
	return nil
}

// ConnectionString builds the postgres URL shared by the server and the migration script.
func (c *Config) ConnectionString() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresAddress, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c *Config) LastLoginWait() time.Duration {
	return time.Duration(c.LastLoginWaitMS) * time.Millisecond
}
