package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/core/search"
)

type searchQuery struct {
	Query string `form:"q"`
}

// SuggestionResponse is one autocomplete entry
type SuggestionResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Label   string  `json:"label"`
	Query   string  `json:"query"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// searchLocations handles GET /api/search requests
func (s *HTTPServerAdapter) searchLocations(c *gin.Context) {
	var query searchQuery
	if err := bindQuery(c, &query); err != nil {
		s.handleError(c, err)
		return
	}

	suggestions, err := s.searchUseCase.Suggest(c.Request.Context(), search.SearchRequest{Query: query.Query})
	if err != nil {
		slog.Error("Search use case error", "error", err, "query", query.Query)
		s.handleError(c, err)
		return
	}

	response := make([]SuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		response = append(response, SuggestionResponse{
			ID:      suggestion.ID,
			Name:    suggestion.Name,
			Region:  suggestion.Region,
			Country: suggestion.Country,
			Label:   suggestion.Label(),
			Query:   suggestion.Query(),
			Lat:     suggestion.Lat,
			Lon:     suggestion.Lon,
		})
	}

	c.JSON(http.StatusOK, response)
}
