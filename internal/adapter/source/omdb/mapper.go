package omdb

import (
	"strings"

	"github.com/mmcdole/popcorn/internal/domain"
)

// notAvailable is OMDb's placeholder for missing fields
const notAvailable = "N/A"

// MapSearchResults converts search rows to domain results, keeping provider order
func MapSearchResults(items []SearchItem) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		if it.ImdbID == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:        it.ImdbID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: clean(it.Poster),
		})
	}
	return results
}

// MapDetail converts a detail payload to a domain movie detail
func MapDetail(d DetailResponse) *domain.MovieDetail {
	return &domain.MovieDetail{
		ID:         d.ImdbID,
		Title:      d.Title,
		Year:       d.Year,
		Genre:      clean(d.Genre),
		Plot:       clean(d.Plot),
		PosterURL:  clean(d.Poster),
		Released:   clean(d.Released),
		Runtime:    clean(d.Runtime),
		IMDbRating: d.ImdbRating,
		Actors:     clean(d.Actors),
		Director:   clean(d.Director),
	}
}

// clean blanks out the "N/A" placeholder
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
