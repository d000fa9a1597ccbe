package resolution

import (
	"context"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// IResolutionService resolves a named sky object into pointing data.
type IResolutionService interface {
	// Resolve produces a generated az/el file for a solar-system body, or
	// fixed equatorial coordinates for a catalog object.
	Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.ResolutionResult, error)
}
