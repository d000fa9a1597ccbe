package config

// ObserverConfig is the telescope site. Defaults are the Ondrejov RT2 dish.
// Longitude is positive east.
type ObserverConfig struct {
	LatitudeDeg  float64 `toml:"latitude_deg"`
	LongitudeDeg float64 `toml:"longitude_deg"`
	AltitudeM    float64 `toml:"altitude_m"`
}

func NewObserverConfig() *ObserverConfig {
	return &ObserverConfig{
		LatitudeDeg:  49.90859805061835,
		LongitudeDeg: 14.779752713599184,
		AltitudeM:    512,
	}
}

func (c *ObserverConfig) applyEnv() {
	c.LatitudeDeg = getEnvFloat("OBSERVER_LAT_DEG", c.LatitudeDeg)
	c.LongitudeDeg = getEnvFloat("OBSERVER_LON_DEG", c.LongitudeDeg)
	c.AltitudeM = getEnvFloat("OBSERVER_ALT_M", c.AltitudeM)
}
