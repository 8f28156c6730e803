package search

import (
	"fmt"
	"strings"

	"weatherdash.app/pkg/validation"
)

// SearchRequest represents a city autocomplete query
type SearchRequest struct {
	Query string
}

// IsValid validates the query shape. Short queries are valid and simply yield no suggestions.
func (r *SearchRequest) IsValid() error {
	if strings.TrimSpace(r.Query) == "" {
		return nil
	}
	if !validation.IsValidQuery(r.Query) {
		return fmt.Errorf("query must be at most %d printable characters", validation.MaxQueryLength)
	}
	return nil
}

// Normalize trims the query
func (r *SearchRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)
}

// CacheKey returns the cache key for the query; matching is case-insensitive
func (r *SearchRequest) CacheKey() string {
	return "search:" + strings.ToLower(strings.TrimSpace(r.Query))
}

// Suggestion is one city the user can pick
type Suggestion struct {
	ID      int64
	Name    string
	Region  string
	Country string
	Lat     float64
	Lon     float64
}

// Label returns "Name, Region, Country" skipping empty parts
func (s Suggestion) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Name, s.Region, s.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Query returns the text a client submits as the dashboard city once this suggestion is picked
func (s Suggestion) Query() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Label()
}
