package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig aggregates every section the daemon needs. Values are resolved
// in three layers: built-in defaults, then an optional TOML settings file,
// then environment variables. The environment always wins.
type AppConfig struct {
	DebugMode bool             `toml:"debug_mode"`
	Server    *ServerConfig    `toml:"server"`
	Status    *StatusConfig    `toml:"status"`
	Observer  *ObserverConfig  `toml:"observer"`
	Sesame    *SesameConfig    `toml:"sesame"`
	Horizons  *HorizonsConfig  `toml:"horizons"`
	Redis     *RedisConfig     `toml:"redis"`
	CatalogDB *CatalogDBConfig `toml:"catalog_db"`
	Output    *OutputConfig    `toml:"output"`
}

// NewSystemConfig resolves configuration from defaults and the environment.
func NewSystemConfig() *AppConfig {
	cfg := defaultConfig()
	cfg.applyEnv()
	return cfg
}

// NewSystemConfigFromFile resolves configuration from defaults, the TOML
// file at path, and the environment. An empty path skips the file layer.
func NewSystemConfigFromFile(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server:    NewServerConfig(),
		Status:    NewStatusConfig(),
		Observer:  NewObserverConfig(),
		Sesame:    NewSesameConfig(),
		Horizons:  NewHorizonsConfig(),
		Redis:     NewRedisConfig(),
		CatalogDB: NewCatalogDBConfig(),
		Output:    NewOutputConfig(),
	}
}

func (c *AppConfig) applyEnv() {
	c.DebugMode = getEnvBool("DEBUG_MODE", c.DebugMode)
	c.Server.applyEnv()
	c.Status.applyEnv()
	c.Observer.applyEnv()
	c.Sesame.applyEnv()
	c.Horizons.applyEnv()
	c.Redis.applyEnv()
	c.CatalogDB.applyEnv()
	c.Output.applyEnv()
}
