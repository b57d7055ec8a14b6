package session

import "github.com/mmcdole/popcorn/internal/domain"

// Summary is the aggregate shown above the watch-list.
// It is derived on every render and never stored.
type Summary struct {
	Count         int
	AvgIMDbRating float64
	AvgUserRating float64
	AvgRuntime    float64 // minutes
}

// Stats computes the summary for entries. An empty list yields zeros.
func Stats(entries []domain.WatchedEntry) Summary {
	imdb := make([]float64, len(entries))
	user := make([]float64, len(entries))
	runtime := make([]float64, len(entries))
	for i, e := range entries {
		imdb[i] = e.Rating()
		user[i] = float64(e.UserRating)
		runtime[i] = e.RuntimeMinutes()
	}
	return Summary{
		Count:         len(entries),
		AvgIMDbRating: mean(imdb),
		AvgUserRating: mean(user),
		AvgRuntime:    mean(runtime),
	}
}

// mean divides each term by N inside the sum, so an empty slice is 0.
func mean(xs []float64) float64 {
	var acc float64
	for _, x := range xs {
		acc += x / float64(len(xs))
	}
	return acc
}
