package domain

import "strconv"

// SkyCoordinates is an ICRS equatorial position in decimal degrees.
type SkyCoordinates struct {
	RADeg  float64
	DecDeg float64
}

// CatalogObject is a named catalog entry as stored in the local catalog table.
type CatalogObject struct {
	Name   string  `db:"name"`
	RADeg  float64 `db:"ra_degrees"`
	DecDeg float64 `db:"dec_degrees"`
}

// FormatDegrees renders a coordinate the way it travels on the wire and into
// output files: shortest decimal form that round-trips, never scientific
// notation.
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
