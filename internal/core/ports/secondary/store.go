package secondary

import (
	"context"
	"time"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// SeriesStore persists a pointing series and returns the file name the
// client is told about. Writes are atomic: a failed write leaves no partial
// file behind.
type SeriesStore interface {
	WriteSeries(ctx context.Context, name string, start time.Time, series *domain.SampleSeries) (string, error)
}

// CatalogStore is the local catalog table behind the postgres resolver
// backend. Seeding writes through it.
type CatalogStore interface {
	CatalogResolver
	EnsureSchema(ctx context.Context) error
	SaveObject(ctx context.Context, obj *domain.CatalogObject) error
	SaveBatch(ctx context.Context, objs []*domain.CatalogObject) (int, error)
}
