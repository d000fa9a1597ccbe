package config

// StatusConfig covers the HTTP status and metrics endpoint.
type StatusConfig struct {
	Port        int    `toml:"port"`
	ServiceName string `toml:"service_name"`
}

func NewStatusConfig() *StatusConfig {
	return &StatusConfig{
		Port:        6061,
		ServiceName: "rt2ephem",
	}
}

func (c *StatusConfig) applyEnv() {
	c.Port = getEnvInt("STATUS_PORT", c.Port)
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
}
