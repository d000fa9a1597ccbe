// package catalogrepo contains the PostgreSQL implementation of the local
// object catalog
package catalogrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

var _ secondary.CatalogStore = (*CatalogRepository)(nil)

// CatalogRepository implements the CatalogStore interface with PostgreSQL
type CatalogRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(db *sqlx.DB, logger primary.Logger, schema string) *CatalogRepository {
	return &CatalogRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// EnsureSchema creates the catalog table if it does not exist yet.
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.catalog_objects (
			name        TEXT PRIMARY KEY,
			ra_degrees  DOUBLE PRECISION NOT NULL,
			dec_degrees DOUBLE PRECISION NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, r.schema)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to ensure catalog schema", "error", err)
		return fmt.Errorf("failed to ensure catalog schema: %w", err)
	}
	return nil
}

// ResolveName implements the CatalogResolver interface against the local
// catalog table. Lookups are case-insensitive.
func (r *CatalogRepository) ResolveName(ctx context.Context, name string) (*domain.SkyCoordinates, error) {
	query := fmt.Sprintf(`
		SELECT name, ra_degrees, dec_degrees
		FROM %s.catalog_objects
		WHERE lower(name) = lower($1)
	`, r.schema)

	var obj domain.CatalogObject
	err := r.db.GetContext(ctx, &obj, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", errs.ErrNameNotResolved, name)
	}
	if err != nil {
		r.logger.Error("Failed to query catalog", "name", name, "error", err)
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	return &domain.SkyCoordinates{RADeg: obj.RADeg, DecDeg: obj.DecDeg}, nil
}

// SaveObject upserts one catalog entry.
func (r *CatalogRepository) SaveObject(ctx context.Context, obj *domain.CatalogObject) error {
	if _, err := r.db.ExecContext(ctx, r.upsertQuery(), obj.Name, obj.RADeg, obj.DecDeg); err != nil {
		r.logger.Error("Failed to save catalog object", "name", obj.Name, "error", err)
		return fmt.Errorf("failed to save catalog object %q: %w", obj.Name, err)
	}
	return nil
}

// SaveBatch upserts objects inside one transaction and returns how many were
// written. A single bad entry rolls back the whole batch.
func (r *CatalogRepository) SaveBatch(ctx context.Context, objs []*domain.CatalogObject) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if the transaction is committed

	query := r.upsertQuery()
	count := 0
	for _, obj := range objs {
		if _, err := tx.ExecContext(ctx, query, obj.Name, obj.RADeg, obj.DecDeg); err != nil {
			r.logger.Error("Failed to save catalog object", "name", obj.Name, "error", err)
			return 0, fmt.Errorf("failed to save catalog object %q: %w", obj.Name, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit catalog batch", "error", err)
		return 0, fmt.Errorf("failed to commit catalog batch: %w", err)
	}

	r.logger.Info("Saved catalog objects", "count", count)
	return count, nil
}

func (r *CatalogRepository) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s.catalog_objects (name, ra_degrees, dec_degrees, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE SET
			ra_degrees = EXCLUDED.ra_degrees,
			dec_degrees = EXCLUDED.dec_degrees,
			updated_at = NOW()
	`, r.schema)
}
