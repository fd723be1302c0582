// Package config loads the server configuration from a yaml file with
// environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config represents the application configuration
type Config struct {
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `yaml:"addr"`
}

// Storage selects the repository backend. Path is used by the sqlite driver,
// DSN by the mysql driver; the memory driver needs neither.
type Storage struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// Log configures slog. File is optional; empty means stderr.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Server:  Server{Addr: ":3000"},
		Storage: Storage{Driver: DriverSQLite, Path: filepath.Join(home, ".lista", "todos.db")},
		Log:     Log{Level: "info"},
	}
}

// Load reads the config file at path, falling back to LISTA_CONFIG and then
// the default location, and returns defaults if no file exists. A .env file
// in the working directory is loaded best-effort before env overrides are
// applied.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("LISTA_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No file is fine; run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	switch cfg.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

// defaultConfigPath returns ~/.config/lista/config.yaml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lista", "config.yaml")
}

func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("LISTA_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if driver := os.Getenv("LISTA_DB_DRIVER"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if path := os.Getenv("LISTA_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if dsn := os.Getenv("LISTA_DB_DSN"); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if level := os.Getenv("LISTA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}
