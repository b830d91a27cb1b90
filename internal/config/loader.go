package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rpattn/marvel/internal/db"
)

// Storage drivers understood by the server.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database db.Config
	LogLevel string
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// StorageConfig selects where characters are loaded from.
type StorageConfig struct {
	Driver   string
	SeedFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: StorageConfig{
			Driver:   StorageMemory,
			SeedFile: "characters.yaml",
		},
		Database: db.DefaultConfig(),
		LogLevel: "info",
	}
}

// Load reads config.yaml from configPath (if present) and environment
// variables prefixed with MARVEL_, e.g. MARVEL_DATABASE_HOST.
func Load(configPath string) (Config, bool, error) {
	// Start with default
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.SetEnvPrefix("MARVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"server.addr",
		"server.allowed_origins",
		"storage.driver",
		"storage.seed_file",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_conns",
		"log.level",
	} {
		if err := v.BindEnv(key); err != nil {
			return cfg, false, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	loadedFile := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, false, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found? Use defaults + env
		loadedFile = false
	}

	// Override defaults if values exist
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = splitList(v.GetStringSlice("server.allowed_origins"))
	}
	if v.IsSet("storage.driver") {
		cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString("storage.driver")))
	}
	if v.IsSet("storage.seed_file") {
		cfg.Storage.SeedFile = v.GetString("storage.seed_file")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("database.max_conns") {
		cfg.Database.MaxConns = v.GetInt32("database.max_conns")
	}
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, loadedFile, err
	}
	return cfg, loadedFile, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
