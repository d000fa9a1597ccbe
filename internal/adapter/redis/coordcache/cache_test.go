package coordcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/global/logger"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

type fakeStore struct {
	data    map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.lastTTL = ttl
	return nil
}

type fakeResolver struct {
	coords *domain.SkyCoordinates
	err    error
	calls  int
}

func (r *fakeResolver) ResolveName(_ context.Context, _ string) (*domain.SkyCoordinates, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.coords, nil
}

func TestResolveNameCachesMiss(t *testing.T) {
	store := newFakeStore()
	inner := &fakeResolver{coords: &domain.SkyCoordinates{RADeg: 83.6287, DecDeg: 22.0147}}
	resolver := NewCachingResolver(inner, store, time.Hour, logger.Logger)

	coords, err := resolver.ResolveName(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 83.6287, coords.RADeg)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, time.Hour, store.lastTTL)
	assert.Contains(t, store.data, "coords:m1")
}

func TestResolveNameHitSkipsInner(t *testing.T) {
	store := newFakeStore()
	store.data["coords:m1"] = `{"ra_degrees":83.6287,"dec_degrees":22.0147}`
	inner := &fakeResolver{err: errors.New("inner must not be called")}
	resolver := NewCachingResolver(inner, store, time.Hour, logger.Logger)

	coords, err := resolver.ResolveName(context.Background(), "  M1 ")
	require.NoError(t, err)
	assert.Equal(t, 83.6287, coords.RADeg)
	assert.Equal(t, 22.0147, coords.DecDeg)
	assert.Equal(t, 0, inner.calls)
}

func TestResolveNameDoesNotCacheFailure(t *testing.T) {
	store := newFakeStore()
	inner := &fakeResolver{err: errs.ErrNameNotResolved}
	resolver := NewCachingResolver(inner, store, time.Hour, logger.Logger)

	_, err := resolver.ResolveName(context.Background(), "nonesuch")
	assert.ErrorIs(t, err, errs.ErrNameNotResolved)
	assert.Empty(t, store.data)
}

func TestResolveNameCorruptEntryFallsThrough(t *testing.T) {
	store := newFakeStore()
	store.data["coords:m1"] = "not json"
	inner := &fakeResolver{coords: &domain.SkyCoordinates{RADeg: 83.6287, DecDeg: 22.0147}}
	resolver := NewCachingResolver(inner, store, time.Hour, logger.Logger)

	coords, err := resolver.ResolveName(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 83.6287, coords.RADeg)
	assert.Equal(t, 1, inner.calls)
}

func TestResolveNameStoreErrorsAreNotFatal(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	inner := &fakeResolver{coords: &domain.SkyCoordinates{RADeg: 1, DecDeg: 2}}
	resolver := NewCachingResolver(inner, store, time.Hour, logger.Logger)

	coords, err := resolver.ResolveName(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, coords.RADeg)
	assert.Equal(t, 1, inner.calls)
}
