package config

// OutputConfig covers generated pointing files.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir: ".",
	}
}

func (c *OutputConfig) applyEnv() {
	c.Dir = getEnv("OUTPUT_DIR", c.Dir)
}
