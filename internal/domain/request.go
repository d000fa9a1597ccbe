package domain

// ObjectIDType classifies how an object name is looked up in the ephemeris
// service. Solar-system resolution walks IDTypes in order until one matches.
type ObjectIDType string

const (
	IDTypeMajorBody    ObjectIDType = "majorbody"
	IDTypeSmallBody    ObjectIDType = "smallbody"
	IDTypeDesignation  ObjectIDType = "designation"
	IDTypeName         ObjectIDType = "name"
	IDTypeAsteroidName ObjectIDType = "asteroid_name"
	IDTypeCometName    ObjectIDType = "comet_name"
)

// IDTypes is the classification ladder, in the order it is tried.
var IDTypes = []ObjectIDType{
	IDTypeMajorBody,
	IDTypeSmallBody,
	IDTypeDesignation,
	IDTypeName,
	IDTypeAsteroidName,
	IDTypeCometName,
}

// ObjectID identifies a solar-system body for an ephemeris query.
type ObjectID struct {
	Name string
	Type ObjectIDType
}

// ResolveRequest asks for the position of a named object over a window.
type ResolveRequest struct {
	Name        string
	Window      TimeWindow
	SolarSystem bool
}

// ConvertRequest asks for a pointing file for a fixed equatorial position.
// Name labels the output file; when empty a label is derived from the
// coordinates.
type ConvertRequest struct {
	Coordinates SkyCoordinates
	Window      TimeWindow
	Name        string
}
