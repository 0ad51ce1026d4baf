package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SITELEDGER_"

// Config defines application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	MCP      MCPConfig      `yaml:"mcp"`
	Client   ClientConfig   `yaml:"client"`
	Workflow WorkflowConfig `yaml:"workflow"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// MCPConfig controls the MCP surface. When HTTPEnabled is set the REST
// server also mounts the streamable MCP endpoint at /mcp.
type MCPConfig struct {
	HTTPEnabled bool `yaml:"http_enabled"`
}

// ClientConfig points the dashboard command at a running server.
type ClientConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// WorkflowConfig holds the behavior switches for open business rules.
type WorkflowConfig struct {
	StrictRequestTransitions bool   `yaml:"strict_request_transitions"`
	LinkStockConsumption     bool   `yaml:"link_stock_consumption"`
	DeriveMaterialStatus     bool   `yaml:"derive_material_status"`
	DefaultUnit              string `yaml:"default_unit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "siteledger.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   10 * time.Second,
		},
		Workflow: WorkflowConfig{
			DefaultUnit: "Nos",
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv(EnvPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv(EnvPrefix + "SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv(EnvPrefix + "SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %sSERVER_PORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv(EnvPrefix + "DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if url := os.Getenv(EnvPrefix + "SERVER_URL"); url != "" {
		cfg.Client.ServerURL = url
	}
	if raw := os.Getenv(EnvPrefix + "CLIENT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %sCLIENT_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Client.Timeout = d
	}
	if unit := os.Getenv(EnvPrefix + "DEFAULT_UNIT"); unit != "" {
		cfg.Workflow.DefaultUnit = unit
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"MCP_HTTP_ENABLED", &cfg.MCP.HTTPEnabled},
		{"STRICT_REQUEST_TRANSITIONS", &cfg.Workflow.StrictRequestTransitions},
		{"LINK_STOCK_CONSUMPTION", &cfg.Workflow.LinkStockConsumption},
		{"DERIVE_MATERIAL_STATUS", &cfg.Workflow.DeriveMaterialStatus},
	}
	for _, f := range flags {
		raw := os.Getenv(EnvPrefix + f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, f.name, err)
		}
		*f.dst = v
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
