package secondary

import (
	"context"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// CatalogResolver turns a deep-sky object name into fixed equatorial
// coordinates. Implementations return errs.ErrNameNotResolved when the
// lookup succeeds but no catalog carries the name; any other error means the
// lookup itself failed.
type CatalogResolver interface {
	ResolveName(ctx context.Context, name string) (*domain.SkyCoordinates, error)
}
