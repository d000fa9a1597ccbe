package resolution

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

var _ IResolutionService = (*ResolutionService)(nil)

// ResolutionService implements IResolutionService on top of the catalog,
// ephemeris, interpolation and store ports.
type ResolutionService struct {
	catalog    secondary.CatalogResolver
	ephemeris  secondary.EphemerisProvider
	interp     secondary.Interpolator
	store      secondary.SeriesStore
	maxSamples int
	logger     primary.Logger
}

// NewResolutionService creates a new resolution service. maxSamples caps how
// many samples a single ephemeris query asks the provider for.
func NewResolutionService(
	catalog secondary.CatalogResolver,
	ephemeris secondary.EphemerisProvider,
	interp secondary.Interpolator,
	store secondary.SeriesStore,
	maxSamples int,
	logger primary.Logger,
) *ResolutionService {
	return &ResolutionService{
		catalog:    catalog,
		ephemeris:  ephemeris,
		interp:     interp,
		store:      store,
		maxSamples: maxSamples,
		logger:     logger,
	}
}

// Resolve handles one resolve request end to end.
func (s *ResolutionService) Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.ResolutionResult, error) {
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}
	if req.SolarSystem {
		return s.resolveSolarSystem(ctx, req)
	}
	return s.resolveCatalog(ctx, req)
}

func (s *ResolutionService) resolveCatalog(ctx context.Context, req domain.ResolveRequest) (*domain.ResolutionResult, error) {
	coords, err := s.catalog.ResolveName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", req.Name, err)
	}

	s.logger.Info("Resolved catalog object",
		"name", req.Name,
		"ra", coords.RADeg,
		"dec", coords.DecDeg)

	return &domain.ResolutionResult{Kind: domain.ResultCoordinates, Coordinates: coords}, nil
}

func (s *ResolutionService) resolveSolarSystem(ctx context.Context, req domain.ResolveRequest) (*domain.ResolutionResult, error) {
	sparse, err := s.fetchSeries(ctx, req)
	if err != nil {
		return nil, err
	}

	// interpolate before touching the store so a failed resample never
	// leaves a file behind
	grid := req.Window.Grid()
	az, err := s.interp.Resample(ctx, sparse.Times(), sparse.Azimuths(), grid)
	if err != nil {
		return nil, fmt.Errorf("failed to resample azimuth: %w", err)
	}
	el, err := s.interp.Resample(ctx, sparse.Times(), sparse.Elevations(), grid)
	if err != nil {
		return nil, fmt.Errorf("failed to resample elevation: %w", err)
	}

	dense, err := domain.NewSeriesFromColumns(grid, az, el)
	if err != nil {
		return nil, err
	}

	outFile, err := s.store.WriteSeries(ctx, req.Name, req.Window.Start, dense)
	if err != nil {
		return nil, fmt.Errorf("failed to write pointing file: %w", err)
	}

	s.logger.Info("Generated pointing file",
		"name", req.Name,
		"file", outFile,
		"samples", dense.Len())

	return &domain.ResolutionResult{Kind: domain.ResultOutfile, OutFile: outFile}, nil
}

// fetchSeries walks the id classification ladder until the ephemeris service
// recognizes the object under one of the classifications.
func (s *ResolutionService) fetchSeries(ctx context.Context, req domain.ResolveRequest) (*domain.SampleSeries, error) {
	samples := s.sampleBudget(req.Window)
	for _, idType := range domain.IDTypes {
		object := domain.ObjectID{Name: req.Name, Type: idType}
		series, err := s.ephemeris.FetchSeries(ctx, object, req.Window, samples)
		if err == nil {
			s.logger.Debug("Ephemeris query matched",
				"name", req.Name,
				"idType", idType,
				"samples", series.Len())
			return series, nil
		}
		if errors.Is(err, errs.ErrUnknownIDType) {
			continue
		}
		return nil, fmt.Errorf("failed to fetch ephemeris for %q: %w", req.Name, err)
	}
	return nil, fmt.Errorf("%w: %q matched no id type", errs.ErrNameNotResolved, req.Name)
}

// sampleBudget collapses the provider cap to one sample per second for
// windows shorter than the cap.
func (s *ResolutionService) sampleBudget(w domain.TimeWindow) int {
	budget := s.maxSamples
	if d := w.SampleCount(); d < budget {
		budget = d
	}
	return budget
}
