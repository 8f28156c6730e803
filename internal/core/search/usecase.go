package search

import (
	"context"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/validation"
)

const cacheName = "location_search"

type UseCase struct {
	searcher ports.LocationSearcher
	cache    ports.LocationCache
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

// UseCaseDependencies wires the search use case. Cache is optional.
type UseCaseDependencies struct {
	Searcher ports.LocationSearcher
	Cache    ports.LocationCache
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Searcher == nil {
		return nil, errors.NewValidationError("location searcher is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		searcher: deps.Searcher,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// Suggest returns matching cities for an autocomplete query. Queries shorter than
// the configured minimum return an empty list without reaching the provider.
func (uc *UseCase) Suggest(ctx context.Context, request SearchRequest) ([]Suggestion, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid search request: " + err.Error())
	}
	request.Normalize()

	cfg := uc.config.GetSearchConfig()
	if !validation.HasMinLength(request.Query, cfg.MinQueryLength) {
		return []Suggestion{}, nil
	}

	useCache := cfg.EnableCache && uc.cache != nil
	key := request.CacheKey()

	if useCache {
		cached, err := uc.cache.Get(ctx, key)
		switch {
		case err == nil && cached != nil:
			uc.metrics.RecordCacheHit(cacheName)
			uc.logger.Debug("Location suggestions served from cache", ports.F("query", request.Query))
			return toSuggestions(cached), nil
		case err != nil && !errors.IsNotFoundError(err):
			uc.logger.Warn("Failed to read location cache",
				ports.F("query", request.Query),
				ports.F("error", err))
		}
		uc.metrics.RecordCacheMiss(cacheName)
	}

	locations, err := uc.searcher.SearchLocations(ctx, request.Query)
	if err != nil {
		uc.logger.Error("Failed to search locations",
			ports.F("query", request.Query),
			ports.F("error", err))
		if errors.IsValidationError(err) {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("location search failed", err)
	}

	if useCache {
		if err := uc.cache.Set(ctx, key, locations, cfg.CacheTTL); err != nil {
			uc.logger.Warn("Failed to cache location suggestions",
				ports.F("query", request.Query),
				ports.F("error", err))
		}
	}

	uc.logger.Debug("Location suggestions fetched",
		ports.F("query", request.Query),
		ports.F("count", len(locations)))
	return toSuggestions(locations), nil
}

func toSuggestions(locations []ports.LocationSuggestionData) []Suggestion {
	suggestions := make([]Suggestion, 0, len(locations))
	for _, l := range locations {
		suggestions = append(suggestions, Suggestion{
			ID:      l.ID,
			Name:    l.Name,
			Region:  l.Region,
			Country: l.Country,
			Lat:     l.Lat,
			Lon:     l.Lon,
		})
	}
	return suggestions
}
