package domain

// ObserverLocation is the geodetic position of the telescope. Longitude is
// positive east of Greenwich.
type ObserverLocation struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64
}
