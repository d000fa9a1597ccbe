package resolution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

type fakeCatalog struct {
	coords *domain.SkyCoordinates
	err    error
	calls  []string
}

func (f *fakeCatalog) ResolveName(_ context.Context, name string) (*domain.SkyCoordinates, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.coords, nil
}

type fakeEphemeris struct {
	acceptType domain.ObjectIDType
	series     *domain.SampleSeries
	err        error
	tried      []domain.ObjectIDType
	gotSamples int
}

func (f *fakeEphemeris) FetchSeries(_ context.Context, object domain.ObjectID, _ domain.TimeWindow, maxSamples int) (*domain.SampleSeries, error) {
	f.tried = append(f.tried, object.Type)
	f.gotSamples = maxSamples
	if object.Type != f.acceptType {
		return nil, errs.ErrUnknownIDType
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

type fakeInterp struct {
	err   error
	calls int
}

func (f *fakeInterp) Resample(_ context.Context, _ []time.Time, values []float64, denseTimes []time.Time) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]float64, len(denseTimes))
	for i := range out {
		out[i] = values[0]
	}
	return out, nil
}

type fakeStore struct {
	err    error
	writes int
	name   string
	start  time.Time
	series *domain.SampleSeries
}

func (f *fakeStore) WriteSeries(_ context.Context, name string, start time.Time, series *domain.SampleSeries) (string, error) {
	f.writes++
	f.name, f.start, f.series = name, start, series
	if f.err != nil {
		return "", f.err
	}
	return name + "_" + start.Format(domain.TimeLayout) + ".txt", nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func testWindow(seconds int) domain.TimeWindow {
	start := time.Date(2021, 7, 14, 8, 40, 0, 0, time.UTC)
	return domain.TimeWindow{Start: start, Stop: start.Add(time.Duration(seconds) * time.Second)}
}

func sparseSeriesOver(w domain.TimeWindow) *domain.SampleSeries {
	series, err := domain.NewSeriesFromColumns(
		[]time.Time{w.Start, w.Stop},
		[]float64{181.5, 183.2},
		[]float64{45.0, 44.1},
	)
	if err != nil {
		panic(err)
	}
	return series
}

func newTestService(catalog *fakeCatalog, eph *fakeEphemeris, ip *fakeInterp, store *fakeStore) *ResolutionService {
	return NewResolutionService(catalog, eph, ip, store, 4000, noopLogger{})
}

func TestResolveCatalogObject(t *testing.T) {
	catalog := &fakeCatalog{coords: &domain.SkyCoordinates{RADeg: 279.23, DecDeg: 38.78}}
	eph := &fakeEphemeris{}
	store := &fakeStore{}
	svc := newTestService(catalog, eph, &fakeInterp{}, store)

	result, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name:   "Vega",
		Window: testWindow(1200),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultCoordinates, result.Kind)
	require.NotNil(t, result.Coordinates)
	assert.Equal(t, 279.23, result.Coordinates.RADeg)
	assert.Equal(t, 38.78, result.Coordinates.DecDeg)
	assert.Equal(t, []string{"Vega"}, catalog.calls)
	assert.Empty(t, eph.tried)
	assert.Zero(t, store.writes)
}

func TestResolveCatalogNotFound(t *testing.T) {
	catalog := &fakeCatalog{err: errs.ErrNameNotResolved}
	svc := newTestService(catalog, &fakeEphemeris{}, &fakeInterp{}, &fakeStore{})

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name:   "NoSuchThing",
		Window: testWindow(60),
	})
	assert.ErrorIs(t, err, errs.ErrNameNotResolved)
}

func TestResolveRejectsEmptyWindow(t *testing.T) {
	catalog := &fakeCatalog{coords: &domain.SkyCoordinates{}}
	eph := &fakeEphemeris{}
	svc := newTestService(catalog, eph, &fakeInterp{}, &fakeStore{})

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name:   "Vega",
		Window: testWindow(0),
	})
	assert.ErrorIs(t, err, errs.ErrWindowNotPositive)
	assert.Empty(t, catalog.calls)
	assert.Empty(t, eph.tried)
}

func TestResolveRejectsOversizedWindow(t *testing.T) {
	catalog := &fakeCatalog{coords: &domain.SkyCoordinates{}}
	eph := &fakeEphemeris{acceptType: domain.IDTypeMajorBody}
	store := &fakeStore{}
	svc := newTestService(catalog, eph, &fakeInterp{}, store)

	start := time.Date(2021, 7, 14, 8, 40, 0, 0, time.UTC)
	oversized := domain.TimeWindow{Start: start, Stop: start.AddDate(300, 0, 0)}

	// both paths must reject before building any grid or touching a provider
	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "Vega", Window: oversized,
	})
	assert.ErrorIs(t, err, errs.ErrWindowTooLong)

	_, err = svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: oversized, SolarSystem: true,
	})
	assert.ErrorIs(t, err, errs.ErrWindowTooLong)

	assert.Empty(t, catalog.calls)
	assert.Empty(t, eph.tried)
	assert.Zero(t, store.writes)
}

func TestResolveSolarSystemWalksIDLadder(t *testing.T) {
	w := testWindow(1200)
	eph := &fakeEphemeris{acceptType: domain.IDTypeDesignation, series: sparseSeriesOver(w)}
	ip := &fakeInterp{}
	store := &fakeStore{}
	svc := newTestService(&fakeCatalog{}, eph, ip, store)

	result, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name:        "2000 EW173",
		Window:      w,
		SolarSystem: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.ObjectIDType{
		domain.IDTypeMajorBody,
		domain.IDTypeSmallBody,
		domain.IDTypeDesignation,
	}, eph.tried)
	assert.Equal(t, domain.ResultOutfile, result.Kind)
	assert.Equal(t, "2000 EW173_2021-07-14 08:40:00.txt", result.OutFile)
	assert.Equal(t, 2, ip.calls)
	require.NotNil(t, store.series)
	assert.Equal(t, 1200, store.series.Len())
}

func TestResolveSolarSystemLadderExhausted(t *testing.T) {
	eph := &fakeEphemeris{acceptType: "nothing matches"}
	store := &fakeStore{}
	svc := newTestService(&fakeCatalog{}, eph, &fakeInterp{}, store)

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name:        "madeup",
		Window:      testWindow(60),
		SolarSystem: true,
	})
	assert.ErrorIs(t, err, errs.ErrNameNotResolved)
	assert.Len(t, eph.tried, len(domain.IDTypes))
	assert.Zero(t, store.writes)
}

func TestResolveSolarSystemSampleBudget(t *testing.T) {
	shortWindow := testWindow(1200)
	eph := &fakeEphemeris{acceptType: domain.IDTypeMajorBody, series: sparseSeriesOver(shortWindow)}
	svc := newTestService(&fakeCatalog{}, eph, &fakeInterp{}, &fakeStore{})

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: shortWindow, SolarSystem: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1200, eph.gotSamples, "short windows collapse to one sample per second")

	longWindow := testWindow(7200)
	eph = &fakeEphemeris{acceptType: domain.IDTypeMajorBody, series: sparseSeriesOver(longWindow)}
	svc = newTestService(&fakeCatalog{}, eph, &fakeInterp{}, &fakeStore{})

	_, err = svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: longWindow, SolarSystem: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4000, eph.gotSamples, "long windows hit the provider cap")
}

func TestResolveSolarSystemProviderFailure(t *testing.T) {
	providerDown := errors.New("gateway timeout")
	eph := &fakeEphemeris{acceptType: domain.IDTypeMajorBody, err: providerDown}
	store := &fakeStore{}
	svc := newTestService(&fakeCatalog{}, eph, &fakeInterp{}, store)

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: testWindow(60), SolarSystem: true,
	})
	assert.ErrorIs(t, err, providerDown)
	assert.Zero(t, store.writes)
}

func TestResolveSolarSystemSpanExceeded(t *testing.T) {
	w := testWindow(60)
	eph := &fakeEphemeris{acceptType: domain.IDTypeMajorBody, series: sparseSeriesOver(w)}
	store := &fakeStore{}
	svc := newTestService(&fakeCatalog{}, eph, &fakeInterp{err: errs.ErrSpanExceeded}, store)

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: w, SolarSystem: true,
	})
	assert.ErrorIs(t, err, errs.ErrSpanExceeded)
	assert.Zero(t, store.writes)
}

func TestResolveSolarSystemStoreFailure(t *testing.T) {
	w := testWindow(60)
	diskFull := errors.New("no space left on device")
	eph := &fakeEphemeris{acceptType: domain.IDTypeMajorBody, series: sparseSeriesOver(w)}
	svc := newTestService(&fakeCatalog{}, eph, &fakeInterp{}, &fakeStore{err: diskFull})

	_, err := svc.Resolve(context.Background(), domain.ResolveRequest{
		Name: "mars", Window: w, SolarSystem: true,
	})
	assert.ErrorIs(t, err, diskFull)
}
