package domain

// ResultKind says which of the two resolution outcomes a result carries.
type ResultKind int

const (
	// ResultOutfile means a pointing file was generated for a solar-system
	// object; OutFile holds its name.
	ResultOutfile ResultKind = iota
	// ResultCoordinates means a catalog object was resolved to a fixed
	// equatorial position; Coordinates holds it.
	ResultCoordinates
)

// ResolutionResult is the outcome of a resolve request.
type ResolutionResult struct {
	Kind        ResultKind
	OutFile     string
	Coordinates *SkyCoordinates
}
