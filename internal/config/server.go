package config

// ServerConfig covers the pointing protocol listener.
type ServerConfig struct {
	Address string `toml:"address"`
	// MaxConnections bounds concurrent client connections; the accept loop
	// blocks once the bound is reached.
	MaxConnections int `toml:"max_connections"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:        ":6060",
		MaxConnections: 64,
	}
}

func (c *ServerConfig) applyEnv() {
	c.Address = getEnv("TCP_ADDRESS", c.Address)
	c.MaxConnections = getEnvInt("MAX_CONNECTIONS", c.MaxConnections)
}
