package config

// SesameConfig covers the CDS Sesame name resolver.
type SesameConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

func NewSesameConfig() *SesameConfig {
	return &SesameConfig{
		BaseURL:    "https://cds.unistra.fr/cgi-bin/nph-sesame",
		TimeoutSec: 20,
	}
}

func (c *SesameConfig) applyEnv() {
	c.BaseURL = getEnv("SESAME_BASE_URL", c.BaseURL)
	c.TimeoutSec = getEnvInt("SESAME_TIMEOUT_SEC", c.TimeoutSec)
}

// HorizonsConfig covers the JPL Horizons ephemeris service. SiteCode is the
// IAU observatory code the ephemerides are computed for; MaxSamples caps how
// many samples one request asks Horizons for.
type HorizonsConfig struct {
	BaseURL    string `toml:"base_url"`
	SiteCode   string `toml:"site_code"`
	MaxSamples int    `toml:"max_samples"`
	TimeoutSec int    `toml:"timeout_sec"`
}

func NewHorizonsConfig() *HorizonsConfig {
	return &HorizonsConfig{
		BaseURL:    "https://ssd.jpl.nasa.gov/api/horizons.api",
		SiteCode:   "557",
		MaxSamples: 4000,
		TimeoutSec: 60,
	}
}

func (c *HorizonsConfig) applyEnv() {
	c.BaseURL = getEnv("HORIZONS_BASE_URL", c.BaseURL)
	c.SiteCode = getEnv("HORIZONS_SITE_CODE", c.SiteCode)
	c.MaxSamples = getEnvInt("HORIZONS_MAX_SAMPLES", c.MaxSamples)
	c.TimeoutSec = getEnvInt("HORIZONS_TIMEOUT_SEC", c.TimeoutSec)
}
