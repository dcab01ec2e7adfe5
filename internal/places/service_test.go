package places_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamplan/roamplan/internal/places"
)

type mockProvider struct {
	callCount int
	err       error
	results   []places.Place
}

func (m *mockProvider) Search(_ context.Context, _, _ string) ([]places.Place, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockProvider) Name() string { return "mock" }

func newTestService(provider *mockProvider) *places.Service {
	return places.NewService(places.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})
}

func TestService_Search(t *testing.T) {
	provider := &mockProvider{
		results: []places.Place{
			{ID: "p1", Name: "National Museum of Fine Arts", Lat: 14.587, Lon: 120.981, Rating: 4.7},
		},
	}
	service := newTestService(provider)

	results, err := service.Search(context.Background(), "museums", "Manila")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "National Museum of Fine Arts", results[0].Name)
	assert.Equal(t, 1, provider.callCount)
}

func TestService_Search_UsesCache(t *testing.T) {
	provider := &mockProvider{results: []places.Place{{ID: "p1", Name: "Louvre"}}}
	service := newTestService(provider)

	_, err := service.Search(context.Background(), "museums", "Paris")
	require.NoError(t, err)

	// Same query with different case hits the cache
	_, err = service.Search(context.Background(), "Museums", "paris")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callCount)
}

func TestService_Search_DifferentRegionsFetchSeparately(t *testing.T) {
	provider := &mockProvider{results: []places.Place{{ID: "p1", Name: "Museum"}}}
	service := newTestService(provider)

	_, err := service.Search(context.Background(), "museums", "Paris")
	require.NoError(t, err)

	_, err = service.Search(context.Background(), "museums", "Rome")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount)
}

func TestService_Search_EmptyQuery(t *testing.T) {
	provider := &mockProvider{}
	service := newTestService(provider)

	_, err := service.Search(context.Background(), "   ", "Manila")
	assert.ErrorIs(t, err, places.ErrEmptyQuery)
	assert.Equal(t, 0, provider.callCount)
}

func TestService_Search_ProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("quota exceeded")}
	service := newTestService(provider)

	_, err := service.Search(context.Background(), "museums", "Manila")
	assert.ErrorIs(t, err, places.ErrProviderUnavailable)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &mockProvider{results: []places.Place{{ID: "p1", Name: "Museum"}}}
	service := newTestService(provider)

	_, err := service.Search(context.Background(), "museums", "Manila")
	require.NoError(t, err)

	service.InvalidateCache()

	_, err = service.Search(context.Background(), "museums", "Manila")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount)
}
