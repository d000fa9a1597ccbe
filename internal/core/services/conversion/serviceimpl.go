package conversion

import (
	"context"
	"fmt"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
)

var _ IConversionService = (*ConversionService)(nil)

// ConversionService implements IConversionService with a frame transformer
// and a series store. The observer location is fixed at construction; every
// conversion is computed for the same dish.
type ConversionService struct {
	frames   secondary.FrameTransformer
	store    secondary.SeriesStore
	observer domain.ObserverLocation
	logger   primary.Logger
}

// NewConversionService creates a new conversion service.
func NewConversionService(
	frames secondary.FrameTransformer,
	store secondary.SeriesStore,
	observer domain.ObserverLocation,
	logger primary.Logger,
) *ConversionService {
	return &ConversionService{
		frames:   frames,
		store:    store,
		observer: observer,
		logger:   logger,
	}
}

// Convert handles one coordinate push end to end.
func (s *ConversionService) Convert(ctx context.Context, req domain.ConvertRequest) (string, error) {
	if err := req.Window.Validate(); err != nil {
		return "", err
	}

	grid := req.Window.Grid()
	az, el, err := s.frames.ToHorizontal(ctx, req.Coordinates, grid, s.observer)
	if err != nil {
		return "", fmt.Errorf("failed to transform coordinates: %w", err)
	}

	series, err := domain.NewSeriesFromColumns(grid, az, el)
	if err != nil {
		return "", err
	}

	name := req.Name
	if name == "" {
		name = domain.FormatDegrees(req.Coordinates.RADeg) + "_" + domain.FormatDegrees(req.Coordinates.DecDeg)
	}

	outFile, err := s.store.WriteSeries(ctx, name, req.Window.Start, series)
	if err != nil {
		return "", fmt.Errorf("failed to write pointing file: %w", err)
	}

	s.logger.Info("Generated pointing file",
		"name", name,
		"file", outFile,
		"samples", series.Len())

	return outFile, nil
}
