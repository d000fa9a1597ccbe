package conversion

import (
	"context"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// IConversionService turns fixed equatorial coordinates into a pointing
// file over an observation window.
type IConversionService interface {
	// Convert writes the per-second az/el track and returns the generated
	// file name.
	Convert(ctx context.Context, req domain.ConvertRequest) (string, error)
}
