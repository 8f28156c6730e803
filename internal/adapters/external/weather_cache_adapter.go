package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// LocationCacheAdapter stores location suggestions as JSON in a generic CacheProvider
type LocationCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewLocationCacheAdapter creates a location cache on top of a generic cache provider
func NewLocationCacheAdapter(cacheProvider ports.CacheProvider) *LocationCacheAdapter {
	return &LocationCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get returns cached suggestions; a miss is reported as a not-found error
func (a *LocationCacheAdapter) Get(ctx context.Context, key string) ([]ports.LocationSuggestionData, error) {
	data, err := a.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var locations []ports.LocationSuggestionData
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, errors.NewCacheError("failed to deserialize location suggestions", err)
	}
	if locations == nil {
		locations = []ports.LocationSuggestionData{}
	}

	return locations, nil
}

// Set stores suggestions. An empty result is cached too so repeated misses stay cheap.
func (a *LocationCacheAdapter) Set(ctx context.Context, key string, locations []ports.LocationSuggestionData, ttl time.Duration) error {
	if locations == nil {
		locations = []ports.LocationSuggestionData{}
	}

	data, err := json.Marshal(locations)
	if err != nil {
		return errors.NewCacheError("failed to serialize location suggestions", err)
	}

	return a.cacheProvider.Set(ctx, key, data, ttl)
}

var _ ports.LocationCache = (*LocationCacheAdapter)(nil)
