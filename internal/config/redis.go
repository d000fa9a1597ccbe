package config

// RedisConfig covers the optional coordinate cache in front of the catalog
// resolver. Disabled by default; the server runs fine without redis.
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	DB          int    `toml:"db"`
	Url         string `toml:"url"`
	Password    string `toml:"password"`
	CacheTTLSec int    `toml:"cache_ttl_sec"`
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		Enabled:     false,
		DB:          0,
		Url:         "localhost:6379",
		Password:    "",
		CacheTTLSec: 3600,
	}
}

func (c *RedisConfig) applyEnv() {
	c.Enabled = getEnvBool("REDIS_ENABLED", c.Enabled)
	c.DB = getEnvInt("REDIS_DB", c.DB)
	c.Url = getEnv("REDIS_URL", c.Url)
	c.Password = getEnv("REDIS_PASSWORD", c.Password)
	c.CacheTTLSec = getEnvInt("COORD_CACHE_TTL_SEC", c.CacheTTLSec)
}
